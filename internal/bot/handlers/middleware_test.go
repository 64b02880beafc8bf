package handlers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/genbot/internal/config"
	"github.com/edgard/genbot/internal/database"
)

// fakeStore serves canned chat rows for middleware tests.
type fakeStore struct {
	database.Store

	chats map[int64]*database.Chat
}

func (f *fakeStore) GetOrCreateChat(_ context.Context, chatID int64) (*database.Chat, error) {
	if chat, ok := f.chats[chatID]; ok {
		return chat, nil
	}
	chat := &database.Chat{ID: chatID, IsActive: true}
	return chat, nil
}

func testDeps(store database.Store) HandlerDeps {
	return HandlerDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &config.Config{
			Telegram: config.TelegramConfig{
				AdminIDs: []int64{999},
				Messages: config.Messages{GeneralError: "oops"},
			},
		},
		Store:     store,
		ChatLocks: NewChatLocker(),
	}
}

func privateMessageUpdate(userID int64, text string) *models.Update {
	return &models.Update{
		Message: &models.Message{
			ID:   1,
			Text: text,
			From: &models.User{ID: userID},
			Chat: models.Chat{ID: userID, Type: models.ChatTypePrivate},
		},
	}
}

func TestActiveOnly(t *testing.T) {
	t.Parallel()

	store := &fakeStore{chats: map[int64]*database.Chat{
		10: {ID: 10, IsActive: true},
		20: {ID: 20, IsActive: false},
	}}
	deps := testDeps(store)

	testCases := []struct {
		name     string
		update   *models.Update
		wantNext bool
	}{
		{
			name:     "active chat passes through",
			update:   privateMessageUpdate(10, "hello"),
			wantNext: true,
		},
		{
			name:     "suspended chat is dropped",
			update:   privateMessageUpdate(20, "hello"),
			wantNext: false,
		},
		{
			name: "non-message update passes through",
			update: &models.Update{
				CallbackQuery: &models.CallbackQuery{ID: "cb", From: models.User{ID: 20}},
			},
			wantNext: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var called bool
			next := func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
				called = true
			}

			ActiveOnly(deps)(next)(context.Background(), nil, tc.update)

			if called != tc.wantNext {
				t.Errorf("next called = %v, want %v", called, tc.wantNext)
			}
		})
	}
}

func TestAdminOnlyPassesAdmins(t *testing.T) {
	t.Parallel()

	deps := testDeps(&fakeStore{})

	var called bool
	next := func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		called = true
	}

	AdminOnly(deps)(next)(context.Background(), nil, privateMessageUpdate(999, "/clear"))

	if !called {
		t.Error("admin update did not reach the handler")
	}
}

func TestRequireArgumentPassesCommandsWithText(t *testing.T) {
	t.Parallel()

	deps := testDeps(&fakeStore{})

	var called bool
	next := func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
		called = true
	}

	RequireArgument(deps)(next)(context.Background(), nil, privateMessageUpdate(10, "/chat hello"))

	if !called {
		t.Error("command with argument did not reach the handler")
	}
}

func TestWrapRecoversPanics(t *testing.T) {
	t.Parallel()

	deps := testDeps(&fakeStore{})

	panicky := func(ctx context.Context, b *tgbot.Bot, update *models.Update) error {
		panic("boom")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		// An update with no reachable message means no error reply is
		// attempted against the nil bot.
		Wrap(deps, "panicky", panicky)(context.Background(), nil, &models.Update{})
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wrapped handler did not return")
	}
}
