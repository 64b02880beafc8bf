package logger

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string untouched",
			input:  "hello",
			maxLen: 50,
			want:   "hello",
		},
		{
			name:   "exact length untouched",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "long ascii string capped",
			input:  "hello world",
			maxLen: 5,
			want:   "hello...",
		},
		{
			name:   "multi-byte runes cut on rune boundary",
			input:  "héllo wörld",
			maxLen: 6,
			want:   "héllo ...",
		},
		{
			name:   "cjk text cut on rune boundary",
			input:  "こんにちは世界",
			maxLen: 3,
			want:   "こんに...",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := truncate(tc.input, tc.maxLen)
			if got != tc.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tc.input, tc.maxLen, got)
			}
		})
	}
}
