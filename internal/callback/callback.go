// Package callback defines the inline-keyboard payload scheme. Payloads are
// colon-delimited, tag first, and parse into a closed set of action types so
// the dispatch site can match exhaustively. Telegram caps callback data at
// 64 bytes, which is why regeneration goes through a stored token instead of
// inlining the prompt.
package callback

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Payload tags. The tag is always the first colon-delimited field.
const (
	tagDelete   = "delete"
	tagMedia    = "media"
	tagVoice    = "voice"
	tagProvider = "provider"
	tagAwesome  = "awesome"
)

var (
	// ErrUnknownAction is returned for payloads whose tag is not in the
	// closed action set.
	ErrUnknownAction = errors.New("unknown callback action")

	// ErrMalformedPayload is returned when a known tag carries the wrong
	// number or shape of fields.
	ErrMalformedPayload = errors.New("malformed callback payload")
)

// Action is one parsed callback payload. Implementations are the closed set
// of types below; Encode is the inverse of Parse.
type Action interface {
	Encode() string
}

// Delete removes the button's message and the message that triggered it.
type Delete struct {
	ChatID    int64
	MessageID int
}

// Regenerate re-runs a media generation recorded under a pending-action token.
type Regenerate struct {
	Token string
}

// SetVoice selects a speech voice from the picker keyboard.
type SetVoice struct {
	Key string
}

// SetProvider selects a generation provider from the picker keyboard.
type SetProvider struct {
	Key string
}

// SetIntro selects a named awesome prompt as the chat intro.
type SetIntro struct {
	Key string
}

func (a Delete) Encode() string {
	return fmt.Sprintf("%s:%d:%d", tagDelete, a.ChatID, a.MessageID)
}

func (a Regenerate) Encode() string {
	return tagMedia + ":" + a.Token
}

func (a SetVoice) Encode() string {
	return tagVoice + ":" + a.Key
}

func (a SetProvider) Encode() string {
	return tagProvider + ":" + a.Key
}

func (a SetIntro) Encode() string {
	return tagAwesome + ":" + a.Key
}

// Parse decodes a callback payload into its action. Unknown tags yield
// ErrUnknownAction; known tags with bad fields yield ErrMalformedPayload.
func Parse(data string) (Action, error) {
	tag, rest, _ := strings.Cut(data, ":")

	switch tag {
	case tagDelete:
		chatField, msgField, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPayload, data)
		}
		chatID, err := strconv.ParseInt(chatField, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad chat id in %q", ErrMalformedPayload, data)
		}
		messageID, err := strconv.Atoi(msgField)
		if err != nil {
			return nil, fmt.Errorf("%w: bad message id in %q", ErrMalformedPayload, data)
		}
		return Delete{ChatID: chatID, MessageID: messageID}, nil

	case tagMedia:
		if rest == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPayload, data)
		}
		return Regenerate{Token: rest}, nil

	case tagVoice:
		if rest == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPayload, data)
		}
		return SetVoice{Key: rest}, nil

	case tagProvider:
		if rest == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPayload, data)
		}
		return SetProvider{Key: rest}, nil

	case tagAwesome:
		if rest == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPayload, data)
		}
		return SetIntro{Key: rest}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, data)
	}
}
