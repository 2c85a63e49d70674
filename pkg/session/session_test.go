package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNew_Defaults(t *testing.T) {
	s := New("", "", true)

	if s.BotName != "SparkleBot" || s.UserName != "User" {
		t.Errorf("Unexpected default names %q / %q", s.BotName, s.UserName)
	}
	if !s.Decorate {
		t.Error("Expected decorate flag to be kept")
	}
	if _, err := uuid.Parse(s.ID); err != nil {
		t.Errorf("Expected a UUID session id, got %q", s.ID)
	}
	if other := New("", "", true); other.ID == s.ID {
		t.Error("Expected distinct session ids")
	}
}

func TestToggleDecorate(t *testing.T) {
	s := New("Bot", "Me", true)

	if s.ToggleDecorate() {
		t.Error("Expected first toggle to turn decoration off")
	}
	if !s.ToggleDecorate() {
		t.Error("Expected second toggle to turn decoration on")
	}
}

func TestConversation_Transcript(t *testing.T) {
	s := New("SparkleBot", "User", true)

	s.AddUserMessage("hello")
	s.AddReply("hi!")
	s.UserName = "Alex"
	s.Decorate = false
	s.AddUserMessage("how are you?")
	s.AddReply("great")

	want := []string{
		"User: hello",
		"SparkleBot: ✨ hi! ✨",
		"Alex: how are you?",
		"SparkleBot: great",
	}
	got := s.Conversation.Lines()
	if len(got) != len(want) {
		t.Fatalf("Expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	apiMsgs := s.Conversation.APIMessages()
	if apiMsgs[1].Role != "assistant" || apiMsgs[1].Content != "hi!" {
		t.Errorf("Expected undecorated assistant content, got %+v", apiMsgs[1])
	}
	if apiMsgs[2].Role != "user" {
		t.Errorf("Expected user role, got %q", apiMsgs[2].Role)
	}
}

func TestConversation_APIMessagesIsCopy(t *testing.T) {
	var c Conversation
	c.Append(Message{Role: RoleUser, Speaker: "User", Content: "a"})

	msgs := c.APIMessages()
	msgs[0].Content = "changed"

	if c.APIMessages()[0].Content != "a" {
		t.Error("APIMessages() should not expose internal storage")
	}
	if c.Len() != 1 {
		t.Errorf("Expected length 1, got %d", c.Len())
	}
}

func TestStats_Average(t *testing.T) {
	var s Stats
	if s.Average() != 0 {
		t.Errorf("Expected zero average with no turns, got %v", s.Average())
	}

	s.Record(2 * time.Second)
	s.Record(4 * time.Second)

	if got := s.Average(); got != 3*time.Second {
		t.Errorf("Expected 3s average, got %v", got)
	}
	if got := s.Average().Seconds(); got != 3.0 {
		t.Errorf("Expected 3.0 seconds, got %v", got)
	}
}
