package handlers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/genbot/internal/callback"
)

func TestCommandArgument(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "command with argument",
			text: "/chat tell me a story",
			want: "tell me a story",
		},
		{
			name: "bare command",
			text: "/chat",
			want: "",
		},
		{
			name: "command with trailing spaces only",
			text: "/chat   ",
			want: "",
		},
		{
			name: "command with bot mention",
			text: "/chat@genbot hello",
			want: "hello",
		},
		{
			name: "plain text passes through",
			text: "  just text  ",
			want: "just text",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := commandArgument(tc.text); got != tc.want {
				t.Errorf("commandArgument(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestChatKey(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		msg  models.Message
		want int64
	}{
		{
			name: "private chat uses sender id",
			msg: models.Message{
				From: &models.User{ID: 42},
				Chat: models.Chat{ID: 42, Type: models.ChatTypePrivate},
			},
			want: 42,
		},
		{
			name: "group chat uses chat id",
			msg: models.Message{
				From: &models.User{ID: 42},
				Chat: models.Chat{ID: -100123, Type: models.ChatTypeGroup},
			},
			want: -100123,
		},
		{
			name: "channel post has no sender",
			msg: models.Message{
				Chat: models.Chat{ID: -100456, Type: models.ChatTypeChannel},
			},
			want: -100456,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := chatKey(&tc.msg); got != tc.want {
				t.Errorf("chatKey() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSplitMessage(t *testing.T) {
	t.Parallel()

	t.Run("short text is one part", func(t *testing.T) {
		t.Parallel()

		parts := splitMessage("hello", 10)
		if len(parts) != 1 || parts[0] != "hello" {
			t.Errorf("splitMessage = %#v, want [hello]", parts)
		}
	})

	t.Run("splits at newline boundary", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("a", 8) + "\n" + strings.Repeat("b", 8)
		parts := splitMessage(text, 10)

		if len(parts) != 2 {
			t.Fatalf("got %d parts, want 2", len(parts))
		}
		if parts[0] != strings.Repeat("a", 8) {
			t.Errorf("first part = %q", parts[0])
		}
		if parts[1] != strings.Repeat("b", 8) {
			t.Errorf("second part = %q", parts[1])
		}
	})

	t.Run("no part exceeds the limit", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("word ", 1000)
		for _, part := range splitMessage(text, 100) {
			if n := utf8.RuneCountInString(part); n > 100 {
				t.Errorf("part length %d exceeds limit 100", n)
			}
		}
	})

	t.Run("unbroken text splits hard", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("x", 25)
		parts := splitMessage(text, 10)

		var total int
		for _, part := range parts {
			if n := utf8.RuneCountInString(part); n > 10 {
				t.Errorf("part length %d exceeds limit 10", n)
			}
			total += len(part)
		}
		if total != 25 {
			t.Errorf("parts cover %d characters, want 25", total)
		}
	})
}

func TestDeleteMarkupPayload(t *testing.T) {
	t.Parallel()

	msg := &models.Message{
		ID:   77,
		Chat: models.Chat{ID: 1234, Type: models.ChatTypePrivate},
	}

	markup, ok := deleteMarkup(msg).(models.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("deleteMarkup returned %T, want InlineKeyboardMarkup", deleteMarkup(msg))
	}
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 1 {
		t.Fatalf("unexpected keyboard shape: %#v", markup.InlineKeyboard)
	}

	action, err := callback.Parse(markup.InlineKeyboard[0][0].CallbackData)
	if err != nil {
		t.Fatalf("button payload does not parse: %v", err)
	}
	del, ok := action.(callback.Delete)
	if !ok {
		t.Fatalf("button payload parsed to %T, want callback.Delete", action)
	}
	if del.ChatID != 1234 || del.MessageID != 77 {
		t.Errorf("payload = %#v, want chat 1234 message 77", del)
	}
}

func TestPickerMarkup(t *testing.T) {
	t.Parallel()

	keys := []string{"alloy", "echo", "fable", "nova", "onyx"}
	markup, ok := pickerMarkup(keys, 2, func(key string) string {
		return callback.SetVoice{Key: key}.Encode()
	}).(models.InlineKeyboardMarkup)
	if !ok {
		t.Fatal("pickerMarkup did not return InlineKeyboardMarkup")
	}

	if len(markup.InlineKeyboard) != 3 {
		t.Fatalf("got %d rows, want 3", len(markup.InlineKeyboard))
	}
	if len(markup.InlineKeyboard[0]) != 2 || len(markup.InlineKeyboard[2]) != 1 {
		t.Errorf("unexpected row widths: %#v", markup.InlineKeyboard)
	}

	var seen []string
	for _, row := range markup.InlineKeyboard {
		for _, button := range row {
			action, err := callback.Parse(button.CallbackData)
			if err != nil {
				t.Fatalf("button %q payload does not parse: %v", button.Text, err)
			}
			voice, ok := action.(callback.SetVoice)
			if !ok {
				t.Fatalf("button payload parsed to %T, want callback.SetVoice", action)
			}
			if voice.Key != button.Text {
				t.Errorf("button text %q does not match payload key %q", button.Text, voice.Key)
			}
			seen = append(seen, voice.Key)
		}
	}
	if len(seen) != len(keys) {
		t.Errorf("keyboard has %d buttons, want %d", len(seen), len(keys))
	}
}
