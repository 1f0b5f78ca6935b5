package runner

import (
	"strings"
	"testing"
)

func TestSanitizeToken_SizeLimit(t *testing.T) {
	// Default Limit is 4096
	limit := 4096

	tests := []struct {
		name      string
		inputSize int
		wantLen   int
	}{
		{"Under Limit", limit - 1, limit - 1},
		{"Exact Limit", limit, limit},
		{"Over Limit", limit + 1, limit + len(truncated)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeToken(strings.Repeat("a", tt.inputSize))
			if len(got) != tt.wantLen {
				t.Errorf("SanitizeToken() length = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestSanitizeToken_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxTokenSize, "4")

	if got := SanitizeToken("ééé"); got != "éé"+truncated {
		t.Errorf("SanitizeToken() = %q, want cut on a rune boundary", got)
	}
}

func TestSanitizeToken_ControlChars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Clean", "--name=origin", "--name=origin"},
		{"ANSI Escape", "\x1b[31mred\x1b[0m", "[31mred[0m"},
		{"Null and Bell", "a\x00b\x07c", "abc"},
		{"Safe Whitespace", "a\tb\nc\r", "a\tb\nc\r"},
		{"Invalid UTF-8", "ok\xffok", "ok�ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeToken(tt.input); got != tt.want {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeArgv(t *testing.T) {
	if SanitizeArgv(nil) != nil {
		t.Error("SanitizeArgv(nil) should stay nil")
	}

	argv := []string{"deploy", "\x1b]0;title\x07"}
	got := SanitizeArgv(argv)
	if got[1] != "]0;title" {
		t.Errorf("unexpected sanitized token %q", got[1])
	}
	if argv[1] == got[1] {
		t.Error("SanitizeArgv must not modify its input")
	}
}
