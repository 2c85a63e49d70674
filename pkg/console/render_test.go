package console

import (
	"bytes"
	"strings"
	"testing"

	"sparklebot/pkg/commands"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

func TestWelcomeMessageGolden(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, nil, false)
	golden.RequireEqual(t, []byte(r.WelcomeMessage("SparkleBot")))
}

func TestWelcomeMessage_ColorStripsToPlain(t *testing.T) {
	plain := NewRenderer(&bytes.Buffer{}, nil, false).WelcomeMessage("SparkleBot")
	colored := NewRenderer(&bytes.Buffer{}, nil, true).WelcomeMessage("SparkleBot")

	if got := ansi.Strip(colored); got != plain {
		t.Errorf("Stripped colored banner differs:\n got %q\nwant %q", got, plain)
	}
}

func TestRenderer_Result(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, false)

	r.Result(&commands.Result{
		Lines: []commands.Line{
			{Kind: commands.LineReply, Speaker: "SparkleBot", Text: "✨ hi ✨"},
			{Kind: commands.LineMeta, Text: "Response time: 1.00 sec"},
			{Kind: commands.LineInfo, Text: "Girly mode is now ON"},
			{Kind: commands.LineError, Speaker: "SparkleBot", Text: "Parsing failed - bad"},
		},
		Separator: true,
	})

	wantOut := "SparkleBot: ✨ hi ✨\nResponse time: 1.00 sec\nGirly mode is now ON\n------------------------\n"
	if out.String() != wantOut {
		t.Errorf("Unexpected stdout:\n got %q\nwant %q", out.String(), wantOut)
	}
	if errOut.String() != "SparkleBot: Parsing failed - bad\n" {
		t.Errorf("Unexpected stderr %q", errOut.String())
	}
}

func TestRenderer_ColoredLinesKeepText(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, nil, true)

	r.Line(commands.Line{Kind: commands.LineReply, Speaker: "Glitter", Text: "hello"})

	if got := ansi.Strip(out.String()); got != "Glitter: hello\n" {
		t.Errorf("Unexpected stripped output %q", got)
	}
}

func TestRenderer_ErrorsFallBackToOut(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, nil, false)

	r.Line(commands.Line{Kind: commands.LineError, Text: "boom"})

	if out.String() != "boom\n" {
		t.Errorf("Expected error on out when errOut is nil, got %q", out.String())
	}
}

func TestRenderer_NilResult(t *testing.T) {
	var out bytes.Buffer
	NewRenderer(&out, nil, false).Result(nil)
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestRenderer_NoticeAndGoodbye(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, false)

	r.Notice("Retrying... (1/3)")
	r.Goodbye(4)

	if errOut.String() != "Retrying... (1/3)\n" {
		t.Errorf("Unexpected notice %q", errOut.String())
	}
	if out.String() != "Bye bye! You chatted 4 times.\n" {
		t.Errorf("Unexpected goodbye %q", out.String())
	}
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	if !ColorEnabled("always", nil) {
		t.Error("Expected always to enable color")
	}
	if ColorEnabled("never", nil) {
		t.Error("Expected never to disable color")
	}
	if ColorEnabled("auto", nil) {
		t.Error("Expected auto without a terminal to disable color")
	}

	t.Setenv("NO_COLOR", "1")
	if ColorEnabled("AUTO", nil) {
		t.Error("Expected NO_COLOR to disable auto color")
	}
}

func TestPlainReader(t *testing.T) {
	var prompts bytes.Buffer
	r := NewPlainReader(strings.NewReader("hello\r\n\nlast"), &prompts)

	want := []string{"hello", "", "last"}
	for _, w := range want {
		got, err := r.ReadLine("You: ")
		if err != nil {
			t.Fatalf("ReadLine() error = %v", err)
		}
		if got != w {
			t.Errorf("Expected %q, got %q", w, got)
		}
	}

	if _, err := r.ReadLine("You: "); err == nil {
		t.Error("Expected EOF after the last line")
	}
	if prompts.String() != strings.Repeat("You: ", 4) {
		t.Errorf("Unexpected prompts %q", prompts.String())
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
