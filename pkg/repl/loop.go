// Package repl runs the interactive chat session: read a line, dispatch it,
// render the result, repeat until the user leaves.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"sparklebot/pkg/commands"
	"sparklebot/pkg/console"
	"sparklebot/pkg/session"
)

// Prompt is shown before every input line.
const Prompt = "You: "

// Loop owns the session state for the lifetime of the chat.
type Loop struct {
	Reader     console.LineReader
	Renderer   *console.Renderer
	Dispatcher *commands.Dispatcher
	State      *session.State
	Completer  commands.Completer
	Clock      commands.TimeTeller

	IncludeHistory bool
	MaxInputLength int
	Now            func() time.Time
}

// New creates a loop with the default dispatcher.
func New(reader console.LineReader, renderer *console.Renderer, state *session.State, completer commands.Completer, clock commands.TimeTeller) *Loop {
	return &Loop{
		Reader:         reader,
		Renderer:       renderer,
		Dispatcher:     commands.NewDispatcher(),
		State:          state,
		Completer:      completer,
		Clock:          clock,
		MaxInputLength: commands.DefaultMaxInputLength,
		Now:            time.Now,
	}
}

// Run prints the banner and processes input until "exit", end of input or
// cancellation of ctx. Failed chat turns never end the loop; only a reader
// error other than io.EOF is returned.
func (l *Loop) Run(ctx context.Context) error {
	logger := slog.With("session_id", l.State.ID)
	logger.Info("session_started", "bot_name", l.State.BotName, "user_name", l.State.UserName)

	l.Renderer.Welcome(l.State.BotName)

	var runErr error
	for ctx.Err() == nil {
		input, err := l.Reader.ReadLine(Prompt)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				runErr = fmt.Errorf("read input: %w", err)
			}
			break
		}

		cmdCtx := commands.NewContext(ctx, input, l.State, l.Completer, l.Clock)
		cmdCtx.IncludeHistory = l.IncludeHistory
		cmdCtx.MaxInputLength = l.MaxInputLength
		if l.Now != nil {
			cmdCtx.Now = l.Now
		}

		result := l.Dispatcher.Dispatch(cmdCtx)
		l.Renderer.Result(result)
		if result != nil && result.Exit {
			break
		}
	}

	l.Renderer.Goodbye(l.State.Stats.Turns)
	logger.Info("session_ended",
		"turns", l.State.Stats.Turns,
		"messages", l.State.Conversation.Len(),
		"average_response", l.State.Stats.Average(),
		"error", runErr)
	return runErr
}
