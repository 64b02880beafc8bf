package callback_test

import (
	"errors"
	"testing"

	"github.com/edgard/genbot/internal/callback"
)

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		action callback.Action
	}{
		{
			name:   "delete",
			action: callback.Delete{ChatID: 12345, MessageID: 678},
		},
		{
			name:   "delete negative chat id",
			action: callback.Delete{ChatID: -1001234567890, MessageID: 42},
		},
		{
			name:   "regenerate",
			action: callback.Regenerate{Token: "a1b2c3d4-e5f6-7890-abcd-ef0123456789"},
		},
		{
			name:   "set voice",
			action: callback.SetVoice{Key: "nova"},
		},
		{
			name:   "set provider",
			action: callback.SetProvider{Key: "openai"},
		},
		{
			name:   "set intro",
			action: callback.SetIntro{Key: "travel-guide"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			parsed, err := callback.Parse(tc.action.Encode())
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.action.Encode(), err)
			}
			if parsed != tc.action {
				t.Errorf("Parse(%q) = %#v, want %#v", tc.action.Encode(), parsed, tc.action)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "empty payload",
			data:    "",
			wantErr: callback.ErrUnknownAction,
		},
		{
			name:    "unknown tag",
			data:    "bogus:123",
			wantErr: callback.ErrUnknownAction,
		},
		{
			name:    "no separator",
			data:    "delete",
			wantErr: callback.ErrMalformedPayload,
		},
		{
			name:    "delete with non-numeric chat id",
			data:    "delete:abc,5",
			wantErr: callback.ErrMalformedPayload,
		},
		{
			name:    "delete missing message id",
			data:    "delete:123",
			wantErr: callback.ErrMalformedPayload,
		},
		{
			name:    "regenerate with empty token",
			data:    "media:",
			wantErr: callback.ErrMalformedPayload,
		},
		{
			name:    "voice with empty key",
			data:    "voice:",
			wantErr: callback.ErrMalformedPayload,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := callback.Parse(tc.data)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tc.data)
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tc.data, err, tc.wantErr)
			}
		})
	}
}
