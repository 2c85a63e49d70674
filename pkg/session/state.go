// Package session holds the state of one interactive chat session: display
// names, the decoration flag, the transcript and response statistics.
package session

import (
	"github.com/google/uuid"
)

const (
	DefaultBotName  = "SparkleBot"
	DefaultUserName = "User"
)

// State is owned by the session loop and lives until the process exits.
type State struct {
	ID           string
	BotName      string
	UserName     string
	Decorate     bool
	Conversation Conversation
	Stats        Stats
}

// New creates a state with a fresh session ID. Empty names fall back to the
// defaults.
func New(botName, userName string, decorate bool) *State {
	if botName == "" {
		botName = DefaultBotName
	}
	if userName == "" {
		userName = DefaultUserName
	}
	return &State{
		ID:       uuid.NewString(),
		BotName:  botName,
		UserName: userName,
		Decorate: decorate,
	}
}

// ToggleDecorate flips the decoration flag and returns the new value.
func (s *State) ToggleDecorate() bool {
	s.Decorate = !s.Decorate
	return s.Decorate
}

// AddUserMessage appends what the user said under their current name.
func (s *State) AddUserMessage(content string) {
	s.Conversation.Append(Message{Role: RoleUser, Speaker: s.UserName, Content: content})
}

// AddReply appends the bot's reply under its current name and returns it.
func (s *State) AddReply(content string) Message {
	m := Message{Role: RoleAssistant, Speaker: s.BotName, Content: content, Decorated: s.Decorate}
	s.Conversation.Append(m)
	return m
}
