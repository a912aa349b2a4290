package gateway

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeSpeechTextStripsMarkdown(t *testing.T) {
	got := SanitizeSpeechText("**Bold** and `code` and # heading and _em_")
	for _, banned := range []string{"*", "#", "_", "`"} {
		if strings.Contains(got, banned) {
			t.Fatalf("sanitized text still contains %q: %q", banned, got)
		}
	}
	if !strings.Contains(got, "Bold") || !strings.Contains(got, "code") {
		t.Fatalf("content lost during sanitize: %q", got)
	}
}

func TestSanitizeSpeechTextTruncates(t *testing.T) {
	long := strings.Repeat("a", 1000)
	got := SanitizeSpeechText(long)
	if len(got) != speechMaxChars {
		t.Fatalf("expected %d chars, got %d", speechMaxChars, len(got))
	}
}

func TestSanitizeSpeechTextTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("ह", 140) // 3 bytes per rune, exceeds the bound
	got := SanitizeSpeechText(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated text is not valid UTF-8: %q", got[len(got)-4:])
	}
	if len(got) > speechMaxChars {
		t.Fatalf("expected at most %d bytes, got %d", speechMaxChars, len(got))
	}
	if !strings.HasSuffix(got, "ह") {
		t.Fatalf("expected truncation to end on a whole rune, got %q", got[len(got)-4:])
	}
}

func TestSanitizeSpeechTextTrimsSpace(t *testing.T) {
	if got := SanitizeSpeechText("  hello  "); got != "hello" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}
