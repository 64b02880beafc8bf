package telegram_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/genbot/internal/bot/handlers"
	"github.com/edgard/genbot/internal/config"
	"github.com/edgard/genbot/internal/database"
	"github.com/edgard/genbot/internal/generation"
	"github.com/edgard/genbot/internal/telegram"
)

// recordingStore tracks which store operations dispatched handlers invoke.
type recordingStore struct {
	database.Store

	deletedChats []int64
	countCalls   int
	voiceUpdates map[int64]string
}

func (r *recordingStore) GetOrCreateChat(_ context.Context, chatID int64) (*database.Chat, error) {
	return &database.Chat{ID: chatID, IsActive: true, Provider: "openai", Voice: "alloy"}, nil
}

func (r *recordingStore) DeleteChat(_ context.Context, chatID int64) error {
	r.deletedChats = append(r.deletedChats, chatID)
	return nil
}

func (r *recordingStore) CountChats(_ context.Context) (int64, error) {
	r.countCalls++
	return 0, nil
}

func (r *recordingStore) UpdateChatVoice(_ context.Context, chatID int64, voice string) error {
	if r.voiceUpdates == nil {
		r.voiceUpdates = make(map[int64]string)
	}
	r.voiceUpdates[chatID] = voice
	return nil
}

// stubGenerator satisfies the generation client without any backend.
type stubGenerator struct{}

func (stubGenerator) GenerateText(context.Context, string, string, string, string) (string, string, error) {
	return "", "", nil
}

func (stubGenerator) GenerateImage(context.Context, string, string) (string, []byte, error) {
	return "", nil, nil
}

func (stubGenerator) GenerateSpeech(context.Context, string, string) ([]byte, error) {
	return nil, nil
}

func (stubGenerator) Providers() []string { return []string{"openai"} }
func (stubGenerator) Voices() []string    { return []string{"alloy", "nova"} }

func (stubGenerator) ValidateProvider(key string) error {
	if key != "openai" {
		return generation.ErrInvalidProvider
	}
	return nil
}

func (stubGenerator) ValidateVoice(name string) error {
	if name != "alloy" && name != "nova" {
		return generation.ErrInvalidVoice
	}
	return nil
}

// newDispatchBot builds a bot against a stub API server with all command and
// callback handlers registered, processing updates synchronously.
func newDispatchBot(t *testing.T, store database.Store) *tgbot.Bot {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		method := r.URL.Path[strings.LastIndexByte(r.URL.Path, '/')+1:]
		if method == "sendMessage" {
			fmt.Fprint(w, `{"ok":true,"result":{"message_id":1,"date":1,"chat":{"id":1,"type":"private"}}}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	}))
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps := handlers.HandlerDeps{
		Logger: log,
		Config: &config.Config{
			Telegram: config.TelegramConfig{
				AdminIDs: []int64{999},
				Messages: config.DefaultMessages,
			},
		},
		Store:     store,
		Generator: stubGenerator{},
		ChatLocks: handlers.NewChatLocker(),
	}

	b, err := telegram.NewTelegramBot("123456:test-token", log,
		tgbot.WithServerURL(srv.URL),
		tgbot.WithSkipGetMe(),
		tgbot.WithNotAsyncHandlers(),
	)
	if err != nil {
		t.Fatalf("failed to create bot: %v", err)
	}

	if err := telegram.RegisterHandlers(b, log, handlers.RegisterAllCommands(deps)); err != nil {
		t.Fatalf("failed to register handlers: %v", err)
	}

	return b
}

// commandUpdate shapes a private-chat update the way Telegram delivers slash
// commands, with a bot_command entity at offset zero.
func commandUpdate(userID int64, text string) *models.Update {
	command := text
	if idx := strings.IndexByte(text, ' '); idx != -1 {
		command = text[:idx]
	}

	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   1,
			Text: text,
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: userID, Type: models.ChatTypePrivate},
			Entities: []models.MessageEntity{
				{Type: models.MessageEntityTypeBotCommand, Offset: 0, Length: len(command)},
			},
		},
	}
}

func TestDispatchReachesCommandHandlers(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	b := newDispatchBot(t, store)

	b.ProcessUpdate(context.Background(), commandUpdate(42, "/reset"))

	if len(store.deletedChats) != 1 || store.deletedChats[0] != 42 {
		t.Errorf("deleted chats = %v, want [42]; /reset did not reach its handler", store.deletedChats)
	}
}

func TestDispatchAppliesAdminGate(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	b := newDispatchBot(t, store)

	b.ProcessUpdate(context.Background(), commandUpdate(42, "/total"))
	if store.countCalls != 0 {
		t.Errorf("non-admin /total reached the handler (count calls = %d)", store.countCalls)
	}

	b.ProcessUpdate(context.Background(), commandUpdate(999, "/total"))
	if store.countCalls != 1 {
		t.Errorf("admin /total did not reach the handler (count calls = %d)", store.countCalls)
	}
}

func TestDispatchReachesCallbackHandler(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	b := newDispatchBot(t, store)

	b.ProcessUpdate(context.Background(), &models.Update{
		ID: 2,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb1",
			Data: "voice:nova",
			From: models.User{ID: 42},
			Message: models.MaybeInaccessibleMessage{
				Message: &models.Message{
					ID:   5,
					Chat: models.Chat{ID: 42, Type: models.ChatTypePrivate},
				},
			},
		},
	})

	if got := store.voiceUpdates[42]; got != "nova" {
		t.Errorf("voice update for chat 42 = %q, want nova; callback did not reach the dispatcher", got)
	}
}
