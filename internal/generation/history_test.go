package generation

import (
	"strings"
	"testing"
)

func TestHistoryCodec(t *testing.T) {
	t.Parallel()

	t.Run("empty string decodes to nil", func(t *testing.T) {
		t.Parallel()

		turns, err := decodeHistory("")
		if err != nil {
			t.Fatalf("decodeHistory(\"\") returned error: %v", err)
		}
		if turns != nil {
			t.Errorf("decodeHistory(\"\") = %#v, want nil", turns)
		}
	})

	t.Run("nil encodes to empty string", func(t *testing.T) {
		t.Parallel()

		encoded, err := encodeHistory(nil)
		if err != nil {
			t.Fatalf("encodeHistory(nil) returned error: %v", err)
		}
		if encoded != "" {
			t.Errorf("encodeHistory(nil) = %q, want empty string", encoded)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		original := []turn{
			{Role: roleUser, Content: "hello"},
			{Role: roleAssistant, Content: "hi there"},
			{Role: roleUser, Content: "newlines\nand \"quotes\""},
		}

		encoded, err := encodeHistory(original)
		if err != nil {
			t.Fatalf("encodeHistory returned error: %v", err)
		}

		decoded, err := decodeHistory(encoded)
		if err != nil {
			t.Fatalf("decodeHistory returned error: %v", err)
		}
		if len(decoded) != len(original) {
			t.Fatalf("decoded %d turns, want %d", len(decoded), len(original))
		}
		for i := range original {
			if decoded[i] != original[i] {
				t.Errorf("turn %d = %#v, want %#v", i, decoded[i], original[i])
			}
		}
	})

	t.Run("corrupt transcript", func(t *testing.T) {
		t.Parallel()

		if _, err := decodeHistory("{not json"); err == nil {
			t.Error("decodeHistory of corrupt transcript succeeded, want error")
		}
	})
}

func TestFormatHistory(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		history string
		want    string
	}{
		{
			name:    "empty",
			history: "",
			want:    "",
		},
		{
			name:    "corrupt renders empty",
			history: "oops",
			want:    "",
		},
		{
			name:    "labeled turns",
			history: `[{"role":"user","content":"hello"},{"role":"assistant","content":"hi"}]`,
			want:    "You: hello\n\nBot: hi",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatHistory(tc.history); got != tc.want {
				t.Errorf("FormatHistory(%q) = %q, want %q", tc.history, got, tc.want)
			}
		})
	}
}

func TestBuildMessages(t *testing.T) {
	t.Parallel()

	t.Run("intro first and prompt last", func(t *testing.T) {
		t.Parallel()

		turns := []turn{
			{Role: roleUser, Content: "one"},
			{Role: roleAssistant, Content: "two"},
		}

		messages := buildMessages("You are terse.", turns, "three", 100)

		if len(messages) != 4 {
			t.Fatalf("got %d messages, want 4", len(messages))
		}
		if messages[0].Role != "system" || messages[0].Content != "You are terse." {
			t.Errorf("first message = %#v, want system intro", messages[0])
		}
		last := messages[len(messages)-1]
		if last.Role != roleUser || last.Content != "three" {
			t.Errorf("last message = %#v, want user prompt", last)
		}
	})

	t.Run("no intro", func(t *testing.T) {
		t.Parallel()

		messages := buildMessages("", nil, "hi", 100)

		if len(messages) != 1 {
			t.Fatalf("got %d messages, want 1", len(messages))
		}
		if messages[0].Role != roleUser {
			t.Errorf("message role = %q, want %q", messages[0].Role, roleUser)
		}
	})

	t.Run("oldest turns dropped first", func(t *testing.T) {
		t.Parallel()

		big := strings.Repeat("x", 30)
		turns := []turn{
			{Role: roleUser, Content: big},
			{Role: roleAssistant, Content: big},
			{Role: roleUser, Content: "recent question"},
			{Role: roleAssistant, Content: "recent answer"},
		}

		// Budget of 10 tokens (40 chars) fits only the two recent turns
		// next to the prompt.
		messages := buildMessages("", turns, "now", 10)

		if len(messages) != 3 {
			t.Fatalf("got %d messages, want 3", len(messages))
		}
		if messages[0].Content != "recent question" {
			t.Errorf("first kept turn = %q, want %q", messages[0].Content, "recent question")
		}
		if messages[1].Content != "recent answer" {
			t.Errorf("second kept turn = %q, want %q", messages[1].Content, "recent answer")
		}
	})
}
