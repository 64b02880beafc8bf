// Package handlers contains Telegram bot command, callback, and inline-query
// handlers, along with their registration logic and middleware.
package handlers

import (
	"log/slog"

	"github.com/edgard/genbot/internal/config"
	"github.com/edgard/genbot/internal/database"
	"github.com/edgard/genbot/internal/generation"
)

// HandlerDeps provides dependencies for Telegram handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Store     database.Store
	Generator generation.Client

	// ChatLocks serializes read-modify-write cycles on a single chat's
	// record. Handlers for different chats run concurrently.
	ChatLocks *ChatLocker
}
