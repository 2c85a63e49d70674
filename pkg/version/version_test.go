package version

import (
	"strings"
	"testing"
)

func TestSummary_WithCommit(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version = "1.2.0"
	Commit = "0123456789abcdef"

	if got := Summary(); got != "1.2.0 (0123456)" {
		t.Errorf("Expected '1.2.0 (0123456)', got %q", got)
	}
}

func TestSummary_Defaults(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version = ""
	Commit = "none"

	if got := Summary(); got != "dev" {
		t.Errorf("Expected 'dev', got %q", got)
	}
}

func TestInfo(t *testing.T) {
	info := Info()

	for _, want := range []string{"sparklebot version", "commit:", "built:", "go:", "platform:"} {
		if !strings.Contains(info, want) {
			t.Errorf("Info should contain %q, got: %s", want, info)
		}
	}
}

func TestUserAgent(t *testing.T) {
	if ua := UserAgent(); !strings.HasPrefix(ua, "SparkleBot/") {
		t.Errorf("Expected SparkleBot/ prefix, got %q", ua)
	}
}
