package commands

import "log/slog"

// LineKind tells the renderer how to style a line.
type LineKind int

const (
	LineInfo LineKind = iota
	LineReply
	LineError
	LineMeta
)

// Line is one line of output. Speaker is set for lines said by the bot.
type Line struct {
	Kind    LineKind
	Speaker string
	Text    string
}

// Result represents the result of handling one input line
type Result struct {
	Lines     []Line
	Separator bool
	Exit      bool
}

func info(text string) *Result {
	return &Result{Lines: []Line{{Kind: LineInfo, Text: text}}}
}

// Handler is the interface for command handlers
type Handler interface {
	Name() string
	Matches(ctx *Context) bool
	Execute(ctx *Context) *Result
}

// Dispatcher routes input to the first handler that matches it. Input no
// handler claims goes to the fallback.
type Dispatcher struct {
	handlers []Handler
	fallback Handler
}

// NewDispatcher creates a dispatcher with the default handlers in priority order
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{fallback: &ChatHandler{}}

	d.Register(&EmptyInputHandler{})
	d.Register(&TooLongHandler{})
	d.Register(&ExitHandler{})
	d.Register(&HistoryHandler{})
	d.Register(&ToggleDecorationHandler{})
	d.Register(&RenameBotHandler{})
	d.Register(&RenameUserHandler{})
	d.Register(&TimeHandler{})

	return d
}

// Register appends a handler after the existing ones
func (d *Dispatcher) Register(h Handler) {
	d.handlers = append(d.handlers, h)
}

// Resolve returns the handler that will run for ctx.Input
func (d *Dispatcher) Resolve(ctx *Context) Handler {
	for _, h := range d.handlers {
		if h.Matches(ctx) {
			return h
		}
	}
	return d.fallback
}

// Dispatch executes the handler chosen for ctx.Input
func (d *Dispatcher) Dispatch(ctx *Context) *Result {
	h := d.Resolve(ctx)
	slog.Debug("input_dispatched", "session_id", ctx.State.ID, "handler", h.Name(), "length", len(ctx.Input))
	return h.Execute(ctx)
}
