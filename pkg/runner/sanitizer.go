package runner

import (
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxTokenSize is 4KB (conservative default)
	DefaultMaxTokenSize = 4096
	// EnvMaxTokenSize is the environment variable to override the default
	EnvMaxTokenSize = "ARGTREE_MAX_TOKEN_SIZE"
)

// truncated marks a token cut at the size limit.
const truncated = "…"

// SanitizeToken makes an argument token safe to print or persist.
// Invalid UTF-8 is replaced with U+FFFD, control characters other than newline, tab and
// carriage return are stripped, and tokens over the size limit are truncated.
// Matching always sees the raw token; only records and terminal output are sanitized.
func SanitizeToken(token string) string {
	if !utf8.ValidString(token) {
		token = strings.ToValidUTF8(token, "�")
	}

	// Fast path: if no control chars, only the size limit applies.
	clean := true
	for _, r := range token {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if !clean {
		// We remove ANSI codes (ESC), NULL, BEL, etc.
		// This prevents log poisoning and terminal corruption.
		var b strings.Builder
		b.Grow(len(token))
		for _, r := range token {
			if !unicode.IsControl(r) || isSafeControl(r) {
				b.WriteRune(r)
			}
		}
		token = b.String()
	}

	limit := getMaxTokenSize()
	if len(token) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(token[cut]) {
			cut--
		}
		token = token[:cut] + truncated
	}
	return token
}

// SanitizeArgv applies SanitizeToken to a copy of argv.
func SanitizeArgv(argv []string) []string {
	if argv == nil {
		return nil
	}
	out := make([]string, len(argv))
	for i, token := range argv {
		out[i] = SanitizeToken(token)
	}
	return out
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func getMaxTokenSize() int {
	if val := os.Getenv(EnvMaxTokenSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxTokenSize
}
