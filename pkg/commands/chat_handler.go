package commands

import (
	"fmt"
	"log/slog"

	"sparklebot/pkg/api"
)

const (
	emptyReplyText   = "Hmm? Something went wrong."
	maxRetriesText   = "Error: Max retries reached."
	canceledText     = "Request cancelled."
	secondsFormatter = "%.2f sec"
)

// ChatHandler forwards any input no other handler claimed to the completion
// API and reports the reply with timing statistics.
type ChatHandler struct{}

// Name returns the command name
func (h *ChatHandler) Name() string { return "chat" }

// Matches accepts every input; the dispatcher uses ChatHandler as its fallback.
func (h *ChatHandler) Matches(ctx *Context) bool { return true }

// Execute runs one chat turn
func (h *ChatHandler) Execute(ctx *Context) *Result {
	state := ctx.State
	state.Stats.Turns++
	state.AddUserMessage(ctx.Input)

	messages := []api.Message{{Role: api.RoleUser, Content: ctx.Input}}
	if ctx.IncludeHistory {
		messages = state.Conversation.APIMessages()
	}

	var completion api.Completion
	start := ctx.now()
	if ctx.Completer == nil {
		completion = api.Completion{Kind: api.KindTransportError, Reason: "no completion client configured"}
	} else {
		completion = ctx.Completer.Complete(ctx.context(), messages)
	}
	elapsed := ctx.now().Sub(start)
	state.Stats.Record(elapsed)

	slog.Info("chat_turn",
		"session_id", state.ID,
		"turn", state.Stats.Turns,
		"outcome", completion.Kind.String(),
		"attempts", completion.Attempts,
		"elapsed", elapsed)

	bot := state.BotName
	result := &Result{Separator: true}

	switch completion.Kind {
	case api.KindSuccess:
		reply := state.AddReply(completion.Reply)
		result.Lines = append(result.Lines,
			Line{Kind: LineReply, Speaker: bot, Text: reply.Text()},
			Line{Kind: LineMeta, Text: "Response time: " + fmt.Sprintf(secondsFormatter, elapsed.Seconds())},
			Line{Kind: LineMeta, Text: "Average time: " + fmt.Sprintf(secondsFormatter, state.Stats.Average().Seconds())},
		)
	case api.KindEmpty:
		result.Lines = append(result.Lines, Line{Kind: LineReply, Speaker: bot, Text: emptyReplyText})
	case api.KindParseError:
		result.Lines = append(result.Lines, Line{Kind: LineError, Speaker: bot, Text: "Parsing failed - " + completion.Reason})
	case api.KindCanceled:
		result.Lines = append(result.Lines, Line{Kind: LineInfo, Text: canceledText})
	default:
		result.Lines = append(result.Lines, Line{Kind: LineReply, Speaker: bot, Text: maxRetriesText})
	}

	return result
}
