package api

// Roles used in the chat transcript sent to the completion endpoint.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents a single message in the conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the per-turn request: a model and the messages to send.
type CompletionRequest struct {
	Model    string
	Messages []Message
}

// Kind classifies the outcome of one chat turn.
type Kind int

const (
	KindSuccess Kind = iota
	KindEmpty
	KindParseError
	KindTransportError
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindEmpty:
		return "empty"
	case KindParseError:
		return "parse_error"
	case KindTransportError:
		return "transport_error"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Completion is the parsed outcome of a chat turn.
type Completion struct {
	Kind Kind

	// Reply is the first choice's content, set for KindSuccess.
	Reply string

	// Reason explains ParseError, TransportError and Canceled outcomes. For
	// KindEmpty it carries the API error message when the body had one.
	Reason string

	// Attempts is the number of transport attempts used.
	Attempts int
}
