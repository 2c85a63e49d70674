package commands

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// EmptyInputHandler rejects blank input
type EmptyInputHandler struct{}

func (h *EmptyInputHandler) Name() string { return "empty" }

func (h *EmptyInputHandler) Matches(ctx *Context) bool { return ctx.Input == "" }

func (h *EmptyInputHandler) Execute(ctx *Context) *Result {
	return info("Please type something.")
}

// TooLongHandler rejects input over the length limit
type TooLongHandler struct{}

func (h *TooLongHandler) Name() string { return "too_long" }

func (h *TooLongHandler) Matches(ctx *Context) bool {
	return utf8.RuneCountInString(ctx.Input) > ctx.maxInputLength()
}

func (h *TooLongHandler) Execute(ctx *Context) *Result {
	slog.Debug("input_rejected", "reason", "too_long", "length", utf8.RuneCountInString(ctx.Input))
	return info("Message is too long, try something shorter.")
}

// ExitHandler ends the session
type ExitHandler struct{}

func (h *ExitHandler) Name() string { return "exit" }

func (h *ExitHandler) Matches(ctx *Context) bool { return ctx.Input == "exit" }

func (h *ExitHandler) Execute(ctx *Context) *Result {
	return &Result{Exit: true}
}

// HistoryHandler prints the transcript
type HistoryHandler struct{}

func (h *HistoryHandler) Name() string { return "show history" }

func (h *HistoryHandler) Matches(ctx *Context) bool { return ctx.Input == "show history" }

func (h *HistoryHandler) Execute(ctx *Context) *Result {
	lines := []Line{{Kind: LineMeta, Text: ""}, {Kind: LineMeta, Text: "Conversation So Far:"}}
	for _, l := range ctx.State.Conversation.Lines() {
		lines = append(lines, Line{Kind: LineInfo, Text: l})
	}
	lines = append(lines, Line{Kind: LineMeta, Text: "--------------------------"})
	return &Result{Lines: lines}
}

// ToggleDecorationHandler flips girly mode
type ToggleDecorationHandler struct{}

func (h *ToggleDecorationHandler) Name() string { return "toggle girly" }

func (h *ToggleDecorationHandler) Matches(ctx *Context) bool { return ctx.Input == "toggle girly" }

func (h *ToggleDecorationHandler) Execute(ctx *Context) *Result {
	state := "OFF"
	if ctx.State.ToggleDecorate() {
		state = "ON"
	}
	return info("Girly mode is now " + state)
}

const (
	renameBotPhrase  = "Your name is now"
	renameUserPhrase = "my name is"
)

// RenameBotHandler changes the bot's display name
type RenameBotHandler struct{}

func (h *RenameBotHandler) Name() string { return "rename bot" }

func (h *RenameBotHandler) Matches(ctx *Context) bool {
	return strings.Contains(ctx.Input, renameBotPhrase)
}

func (h *RenameBotHandler) Execute(ctx *Context) *Result {
	name := nameAfter(ctx.Input, renameBotPhrase)
	if name == "" {
		return info(`Tell me the new name too, like "Your name is now Glitter".`)
	}
	slog.Info("bot_renamed", "session_id", ctx.State.ID, "from", ctx.State.BotName, "to", name)
	ctx.State.BotName = name
	return info("My name is now " + name + "!")
}

// RenameUserHandler changes the user's display name
type RenameUserHandler struct{}

func (h *RenameUserHandler) Name() string { return "rename user" }

func (h *RenameUserHandler) Matches(ctx *Context) bool {
	return strings.Contains(ctx.Input, renameUserPhrase)
}

func (h *RenameUserHandler) Execute(ctx *Context) *Result {
	name := nameAfter(ctx.Input, renameUserPhrase)
	if name == "" {
		return info(`Tell me your name too, like "my name is Alex".`)
	}
	slog.Info("user_renamed", "session_id", ctx.State.ID, "from", ctx.State.UserName, "to", name)
	ctx.State.UserName = name
	return &Result{Lines: []Line{{Kind: LineReply, Speaker: ctx.State.BotName, Text: "Hello, " + name + "!"}}}
}

// nameAfter returns the text following the first occurrence of phrase, with
// surrounding spaces and trailing sentence punctuation removed.
func nameAfter(input, phrase string) string {
	idx := strings.Index(input, phrase)
	if idx < 0 {
		return ""
	}
	name := strings.TrimSpace(input[idx+len(phrase):])
	return strings.TrimSpace(strings.TrimRight(name, ".!?"))
}

// TimeHandler reports the current time in Italy
type TimeHandler struct{}

func (h *TimeHandler) Name() string { return "time in Italy" }

func (h *TimeHandler) Matches(ctx *Context) bool {
	return strings.Contains(ctx.Input, "time in Italy")
}

func (h *TimeHandler) Execute(ctx *Context) *Result {
	text := "I can't check the time right now."
	if ctx.Clock != nil {
		text = ctx.Clock.Fetch(ctx.context())
	}
	return &Result{Lines: []Line{{Kind: LineReply, Speaker: ctx.State.BotName, Text: text}}}
}
