package commands

import (
	"context"
	"strings"
	"testing"

	"sparklebot/pkg/api"
	"sparklebot/pkg/session"
)

// countingCompleter records every request and answers with a fixed completion.
type countingCompleter struct {
	calls    [][]api.Message
	response api.Completion
}

func (c *countingCompleter) Complete(ctx context.Context, messages []api.Message) api.Completion {
	c.calls = append(c.calls, messages)
	return c.response
}

type fixedClock struct {
	text  string
	calls int
}

func (f *fixedClock) Fetch(ctx context.Context) string {
	f.calls++
	return f.text
}

func newTestContext(input string) (*Context, *countingCompleter, *fixedClock) {
	completer := &countingCompleter{response: api.Completion{Kind: api.KindSuccess, Reply: "ok", Attempts: 1}}
	clock := &fixedClock{text: "It's noon in Italy."}
	state := session.New("SparkleBot", "User", true)
	return NewContext(context.Background(), input, state, completer, clock), completer, clock
}

func TestNewDispatcher(t *testing.T) {
	d := NewDispatcher()

	if d == nil {
		t.Fatal("NewDispatcher() returned nil")
	}

	var names []string
	for _, h := range d.handlers {
		names = append(names, h.Name())
	}
	want := []string{"empty", "too_long", "exit", "show history", "toggle girly", "rename bot", "rename user", "time in Italy"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Unexpected handler order %q", names)
	}
	if d.fallback.Name() != "chat" {
		t.Errorf("Expected chat fallback, got %q", d.fallback.Name())
	}
}

func TestDispatcher_Resolve_Order(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "empty"},
		{strings.Repeat("x", 1001), "too_long"},
		{strings.Repeat("x", 1000), "chat"},
		{"exit", "exit"},
		{"exit now", "chat"},
		{"Exit", "chat"},
		{"show history", "show history"},
		{"show history please", "chat"},
		{"toggle girly", "toggle girly"},
		{"Your name is now Glitter", "rename bot"},
		{"Your name is now Glitter and my name is Alex", "rename bot"},
		{"my name is Alex", "rename user"},
		{"hey, my name is Alex, what time in Italy is it?", "rename user"},
		{"My name is Alex", "chat"},
		{"what's the time in Italy?", "time in Italy"},
		{"what's the time in italy?", "chat"},
		{"hello there", "chat"},
		{" ", "chat"},
	}

	d := NewDispatcher()
	for _, tt := range tests {
		ctx, _, _ := newTestContext(tt.input)
		got := d.Resolve(ctx).Name()
		if got != tt.want {
			t.Errorf("Resolve(%.40q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDispatcher_TooLongCountsCharacters(t *testing.T) {
	d := NewDispatcher()

	// 1000 multi-byte characters is within the limit.
	ctx, _, _ := newTestContext(strings.Repeat("é", 1000))
	if got := d.Resolve(ctx).Name(); got != "chat" {
		t.Errorf("Expected 1000 characters to be accepted, got %q", got)
	}

	ctx, _, _ = newTestContext(strings.Repeat("é", 1001))
	if got := d.Resolve(ctx).Name(); got != "too_long" {
		t.Errorf("Expected 1001 characters to be rejected, got %q", got)
	}
}

func TestDispatcher_CustomMaxInputLength(t *testing.T) {
	ctx, _, _ := newTestContext("abcdef")
	ctx.MaxInputLength = 5

	if got := NewDispatcher().Resolve(ctx).Name(); got != "too_long" {
		t.Errorf("Expected too_long with limit 5, got %q", got)
	}
}

func TestDispatcher_Register(t *testing.T) {
	d := NewDispatcher()
	d.Register(&stubHandler{name: "ping", input: "ping"})

	ctx, completer, _ := newTestContext("ping")
	result := d.Dispatch(ctx)

	if len(result.Lines) != 1 || result.Lines[0].Text != "pong" {
		t.Errorf("Expected registered handler to answer, got %+v", result.Lines)
	}
	if len(completer.calls) != 0 {
		t.Error("Registered handler input must not reach the API")
	}
}

type stubHandler struct {
	name  string
	input string
}

func (h *stubHandler) Name() string                 { return h.name }
func (h *stubHandler) Matches(ctx *Context) bool    { return ctx.Input == h.input }
func (h *stubHandler) Execute(ctx *Context) *Result { return info("pong") }
