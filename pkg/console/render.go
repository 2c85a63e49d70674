package console

import (
	"fmt"
	"io"

	"sparklebot/pkg/commands"

	"charm.land/lipgloss/v2"
)

const turnSeparator = "------------------------"

// Renderer writes handler output to the terminal. Error lines go to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	styles Styles
	color  bool
}

// NewRenderer creates a renderer. With color off every line is written as
// plain text.
func NewRenderer(out, errOut io.Writer, color bool) *Renderer {
	styles := PlainStyles()
	if color {
		styles = DefaultStyles()
	}
	if errOut == nil {
		errOut = out
	}
	return &Renderer{out: out, errOut: errOut, styles: styles, color: color}
}

func (r *Renderer) render(s lipgloss.Style, text string) string {
	if !r.color || text == "" {
		return text
	}
	return s.Render(text)
}

// WelcomeMessage returns the banner shown when the session starts.
func (r *Renderer) WelcomeMessage(botName string) string {
	title := r.render(r.styles.Title, "Welcome to "+botName+"'s Chatroom!")
	hint := r.render(r.styles.Hint, "Type 'exit' to leave, 'show history' to see the chat, or 'toggle girly' to switch mode.")
	return title + "\n" + hint + "\n"
}

// Welcome prints the banner.
func (r *Renderer) Welcome(botName string) {
	fmt.Fprint(r.out, r.WelcomeMessage(botName))
}

// Result prints every line of a handler result and the turn separator when
// the result asks for one.
func (r *Renderer) Result(res *commands.Result) {
	if res == nil {
		return
	}
	for _, line := range res.Lines {
		r.Line(line)
	}
	if res.Separator {
		fmt.Fprintln(r.out, r.render(r.styles.Separator, turnSeparator))
	}
}

// Line prints one line styled by its kind.
func (r *Renderer) Line(line commands.Line) {
	switch line.Kind {
	case commands.LineReply:
		fmt.Fprintln(r.out, r.speaker(line.Speaker)+r.render(r.styles.Reply, line.Text))
	case commands.LineError:
		fmt.Fprintln(r.errOut, r.speaker(line.Speaker)+r.render(r.styles.Error, line.Text))
	case commands.LineMeta:
		fmt.Fprintln(r.out, r.render(r.styles.Meta, line.Text))
	default:
		fmt.Fprintln(r.out, r.render(r.styles.Info, line.Text))
	}
}

func (r *Renderer) speaker(name string) string {
	if name == "" {
		return ""
	}
	return r.render(r.styles.Speaker, name) + ": "
}

// Notice prints a status message such as a retry notice to errOut.
func (r *Renderer) Notice(text string) {
	fmt.Fprintln(r.errOut, r.render(r.styles.Hint, text))
}

// Goodbye prints the closing line with the number of chat turns.
func (r *Renderer) Goodbye(turns int) {
	fmt.Fprintln(r.out, r.render(r.styles.Title, fmt.Sprintf("Bye bye! You chatted %d times.", turns)))
}
