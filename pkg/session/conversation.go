package session

import "sparklebot/pkg/api"

// Role identifies who said a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. Speaker is the display name in effect
// when the message was added.
type Message struct {
	Role      Role
	Speaker   string
	Content   string
	Decorated bool
}

// Text returns the content as shown to the user.
func (m Message) Text() string {
	if m.Decorated {
		return Decorate(m.Content)
	}
	return m.Content
}

// Line formats the message for the transcript listing.
func (m Message) Line() string {
	return m.Speaker + ": " + m.Text()
}

// Decorate wraps a reply in sparkles.
func Decorate(s string) string {
	return "✨ " + s + " ✨"
}

// Conversation is an append-only transcript.
type Conversation struct {
	messages []Message
}

// Append adds m to the end of the transcript.
func (c *Conversation) Append(m Message) {
	c.messages = append(c.messages, m)
}

// Len returns the number of messages.
func (c *Conversation) Len() int { return len(c.messages) }

// Lines returns the transcript formatted one message per line.
func (c *Conversation) Lines() []string {
	lines := make([]string, 0, len(c.messages))
	for _, m := range c.messages {
		lines = append(lines, m.Line())
	}
	return lines
}

// APIMessages converts the transcript to request messages, undecorated.
func (c *Conversation) APIMessages() []api.Message {
	out := make([]api.Message, 0, len(c.messages))
	for _, m := range c.messages {
		out = append(out, api.Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}
