package commands

import (
	"context"
	"time"

	"sparklebot/pkg/api"
	"sparklebot/pkg/session"
)

// DefaultMaxInputLength is the longest accepted input, in characters.
const DefaultMaxInputLength = 1000

// Completer runs one chat turn against the completion API.
type Completer interface {
	Complete(ctx context.Context, messages []api.Message) api.Completion
}

// TimeTeller answers the time lookup command.
type TimeTeller interface {
	Fetch(ctx context.Context) string
}

// Context contains everything a handler needs for one input line
type Context struct {
	Ctx            context.Context
	Input          string
	State          *session.State
	Completer      Completer
	Clock          TimeTeller
	IncludeHistory bool
	MaxInputLength int
	Now            func() time.Time
}

// NewContext creates a command context for one line of input
func NewContext(ctx context.Context, input string, state *session.State, completer Completer, clock TimeTeller) *Context {
	return &Context{
		Ctx:            ctx,
		Input:          input,
		State:          state,
		Completer:      completer,
		Clock:          clock,
		MaxInputLength: DefaultMaxInputLength,
		Now:            time.Now,
	}
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) maxInputLength() int {
	if c.MaxInputLength <= 0 {
		return DefaultMaxInputLength
	}
	return c.MaxInputLength
}
