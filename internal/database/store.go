package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ChatDefaults are the values written into a chat row created on first
// contact. They come from the generation section of the configuration.
type ChatDefaults struct {
	Intro    string
	Provider string
	Voice    string
}

// Store defines the interface for database operations. Methods accept a
// context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetOrCreateChat fetches a chat row by ID, inserting one with the
	// configured defaults if absent. It is idempotent under repeated calls.
	GetOrCreateChat(ctx context.Context, chatID int64) (*Chat, error)

	// UpdateChatIntro sets the intro prompt for a chat.
	UpdateChatIntro(ctx context.Context, chatID int64, intro string) error

	// UpdateChatProvider sets the generation provider key for a chat.
	UpdateChatProvider(ctx context.Context, chatID int64, provider string) error

	// UpdateChatVoice sets the speech-synthesis voice for a chat.
	UpdateChatVoice(ctx context.Context, chatID int64, voice string) error

	// UpdateChatHistory overwrites the opaque conversation transcript.
	UpdateChatHistory(ctx context.Context, chatID int64, history string) error

	// SetChatActive toggles the suspended state of a chat.
	SetChatActive(ctx context.Context, chatID int64, active bool) error

	// DeleteChat removes the chat row entirely. A fresh row with defaults is
	// recreated on the chat's next contact.
	DeleteChat(ctx context.Context, chatID int64) error

	// CountChats returns the number of stored chat rows.
	CountChats(ctx context.Context) (int64, error)

	// ListChats returns all stored chat rows.
	ListChats(ctx context.Context) ([]Chat, error)

	// ExecRaw executes an arbitrary SQL statement and returns the rows
	// rendered as JSON. It exists for the admin /sql command only and must
	// never be reachable without the admin middleware.
	ExecRaw(ctx context.Context, stmt string) (string, error)

	// CreatePendingAction persists a new pending action and returns a fresh
	// unique token to embed in a callback payload.
	CreatePendingAction(ctx context.Context, provider, prompt string) (string, error)

	// ResolvePendingAction looks up a pending action by token, deleting it on
	// success. Returns nil, nil when the token is unknown or already consumed.
	ResolvePendingAction(ctx context.Context, token string) (*PendingAction, error)

	// DeletePendingActionsBefore removes pending actions created before the
	// cutoff and returns the number of rows deleted.
	DeletePendingActionsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// ClearAll deletes all chats and pending actions in a single transaction.
	ClearAll(ctx context.Context) error

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db       *sqlx.DB
	logger   *slog.Logger
	defaults ChatDefaults
}

// NewStore creates a new Store implementation backed by sqlx. It requires a
// connected sqlx.DB instance, a logger, and the defaults for new chat rows.
func NewStore(db *sqlx.DB, logger *slog.Logger, defaults ChatDefaults) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:       db,
		logger:   logger.With("component", "store"),
		defaults: defaults,
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// GetOrCreateChat fetches a chat row by primary key, inserting a row with the
// configured defaults if none exists.
func (s *sqlxStore) GetOrCreateChat(ctx context.Context, chatID int64) (*Chat, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var chat Chat
	query := `SELECT id, intro, provider, voice, history, is_active, created_at, updated_at
	          FROM chats WHERE id = ?`

	err := s.db.GetContext(ctx, &chat, query, chatID)

	switch {
	case err == nil:
		s.logger.DebugContext(ctx, "Chat row found", "chat_id", chatID)
		return &chat, nil

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching chat",
			"chat_id", chatID, "error", err)
		return nil, err

	case !errors.Is(err, sql.ErrNoRows):
		s.logger.ErrorContext(ctx, "Error fetching chat", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get chat %d: %w", chatID, err)
	}

	now := time.Now().UTC()
	chat = Chat{
		ID:        chatID,
		Intro:     s.defaults.Intro,
		Provider:  s.defaults.Provider,
		Voice:     s.defaults.Voice,
		History:   "",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	insert := `INSERT INTO chats (id, intro, provider, voice, history, is_active, created_at, updated_at)
	           VALUES (:id, :intro, :provider, :voice, :history, :is_active, :created_at, :updated_at)`

	if _, err := s.db.NamedExecContext(ctx, insert, &chat); err != nil {
		// A concurrent first contact may have inserted the row between our
		// read and write. Re-read instead of failing.
		var existing Chat
		if getErr := s.db.GetContext(ctx, &existing, query, chatID); getErr == nil {
			s.logger.DebugContext(ctx, "Chat row created concurrently, using existing", "chat_id", chatID)
			return &existing, nil
		}
		s.logger.ErrorContext(ctx, "Error inserting chat", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to create chat %d: %w", chatID, err)
	}

	s.logger.InfoContext(ctx, "Chat row created with defaults", "chat_id", chatID, "provider", chat.Provider)
	return &chat, nil
}

// updateChatColumn performs a single-column update against an allowlisted
// column name. Callers go through the exported typed wrappers.
func (s *sqlxStore) updateChatColumn(ctx context.Context, chatID int64, column string, value any) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}

	switch column {
	case "intro", "provider", "voice", "history", "is_active":
	default:
		return fmt.Errorf("column %q is not updatable", column)
	}

	query := fmt.Sprintf(`UPDATE chats SET %s = ?, updated_at = ? WHERE id = ?`, column)
	result, err := s.db.ExecContext(ctx, query, value, time.Now().UTC(), chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error updating chat column",
			"chat_id", chatID, "column", column, "error", err)
		return fmt.Errorf("failed to update %s for chat %d: %w", column, chatID, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		s.logger.WarnContext(ctx, "Chat column update affected no rows",
			"chat_id", chatID, "column", column)
		return fmt.Errorf("chat %d not found", chatID)
	}

	s.logger.DebugContext(ctx, "Chat column updated", "chat_id", chatID, "column", column)
	return nil
}

func (s *sqlxStore) UpdateChatIntro(ctx context.Context, chatID int64, intro string) error {
	return s.updateChatColumn(ctx, chatID, "intro", intro)
}

func (s *sqlxStore) UpdateChatProvider(ctx context.Context, chatID int64, provider string) error {
	return s.updateChatColumn(ctx, chatID, "provider", provider)
}

func (s *sqlxStore) UpdateChatVoice(ctx context.Context, chatID int64, voice string) error {
	return s.updateChatColumn(ctx, chatID, "voice", voice)
}

func (s *sqlxStore) UpdateChatHistory(ctx context.Context, chatID int64, history string) error {
	return s.updateChatColumn(ctx, chatID, "history", history)
}

func (s *sqlxStore) SetChatActive(ctx context.Context, chatID int64, active bool) error {
	return s.updateChatColumn(ctx, chatID, "is_active", active)
}

// DeleteChat removes the chat row entirely.
func (s *sqlxStore) DeleteChat(ctx context.Context, chatID int64) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, chatID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting chat", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to delete chat %d: %w", chatID, err)
	}

	count, _ := result.RowsAffected()
	s.logger.InfoContext(ctx, "Chat deleted", "chat_id", chatID, "rows", count)
	return nil
}

// CountChats returns the number of stored chat rows.
func (s *sqlxStore) CountChats(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM chats`); err != nil {
		s.logger.ErrorContext(ctx, "Error counting chats", "error", err)
		return 0, fmt.Errorf("failed to count chats: %w", err)
	}
	return count, nil
}

// ListChats returns all stored chat rows.
func (s *sqlxStore) ListChats(ctx context.Context) ([]Chat, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var chats []Chat
	query := `SELECT id, intro, provider, voice, history, is_active, created_at, updated_at
	          FROM chats ORDER BY id`

	if err := s.db.SelectContext(ctx, &chats, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing chats", "error", err)
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	s.logger.DebugContext(ctx, "Listed chats", "count", len(chats))
	return chats, nil
}

// ExecRaw executes an arbitrary SQL statement supplied by a trusted admin and
// renders the resulting rows as indented JSON.
func (s *sqlxStore) ExecRaw(ctx context.Context, stmt string) (string, error) {
	if stmt == "" {
		return "", fmt.Errorf("statement cannot be empty")
	}

	s.logger.WarnContext(ctx, "Executing raw SQL statement", "statement", stmt)

	rows, err := s.db.QueryxContext(ctx, stmt)
	if err != nil {
		return "", fmt.Errorf("raw statement failed: %w", err)
	}
	defer rows.Close()

	results := make(map[int]string)
	for i := 0; rows.Next(); i++ {
		row, err := rows.SliceScan()
		if err != nil {
			return "", fmt.Errorf("failed to scan row %d: %w", i, err)
		}
		results[i] = fmt.Sprintf("%v", row)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("row iteration failed: %w", err)
	}

	rendered, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render result: %w", err)
	}

	return string(rendered), nil
}

// CreatePendingAction persists a new pending action keyed by a fresh UUID.
func (s *sqlxStore) CreatePendingAction(ctx context.Context, provider, prompt string) (string, error) {
	if provider == "" || prompt == "" {
		return "", fmt.Errorf("provider and prompt are required")
	}

	action := PendingAction{
		Token:     uuid.NewString(),
		Provider:  provider,
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO pending_actions (token, provider, prompt, created_at)
	          VALUES (:token, :provider, :prompt, :created_at)`

	if _, err := s.db.NamedExecContext(ctx, query, &action); err != nil {
		s.logger.ErrorContext(ctx, "Error creating pending action", "provider", provider, "error", err)
		return "", fmt.Errorf("failed to create pending action: %w", err)
	}

	s.logger.DebugContext(ctx, "Pending action created", "token", action.Token, "provider", provider)
	return action.Token, nil
}

// ResolvePendingAction looks up a pending action by token and deletes it so a
// token can be consumed at most once. Returns nil, nil for unknown tokens.
func (s *sqlxStore) ResolvePendingAction(ctx context.Context, token string) (*PendingAction, error) {
	if token == "" {
		return nil, fmt.Errorf("token cannot be empty")
	}

	var action PendingAction
	err := s.db.GetContext(ctx, &action,
		`SELECT token, provider, prompt, created_at FROM pending_actions WHERE token = ?`, token)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "Pending action not found", "token", token)
		return nil, nil

	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while resolving pending action",
			"token", token, "error", err)
		return nil, err

	case err != nil:
		s.logger.ErrorContext(ctx, "Error resolving pending action", "token", token, "error", err)
		return nil, fmt.Errorf("failed to resolve pending action %s: %w", token, err)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM pending_actions WHERE token = ?`, token); err != nil {
		// The action was read successfully; a failed delete only risks a
		// second resolve, so log and continue.
		s.logger.WarnContext(ctx, "Failed to delete resolved pending action", "token", token, "error", err)
	}

	s.logger.DebugContext(ctx, "Pending action resolved", "token", token, "provider", action.Provider)
	return &action, nil
}

// DeletePendingActionsBefore removes pending actions older than the cutoff.
func (s *sqlxStore) DeletePendingActionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_actions WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting expired pending actions", "error", err)
		return 0, fmt.Errorf("failed to delete expired pending actions: %w", err)
	}

	count, _ := result.RowsAffected()
	if count > 0 {
		s.logger.InfoContext(ctx, "Expired pending actions deleted", "count", count, "cutoff", cutoff)
	}
	return count, nil
}

// ClearAll deletes all chats and pending actions in a single transaction so
// either all data is removed or none is.
func (s *sqlxStore) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction for clear", "error", err)
		return fmt.Errorf("failed to begin transaction for clear: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				if !errors.Is(rollbackErr, sql.ErrTxDone) {
					s.logger.WarnContext(ctx, "Error rolling back transaction", "error", rollbackErr)
				}
			}
		}
	}()

	chatsResult, err := tx.ExecContext(ctx, `DELETE FROM chats`)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting chats during clear", "error", err)
		return fmt.Errorf("failed to delete chats during clear: %w", err)
	}
	chatsCount, _ := chatsResult.RowsAffected()

	pendingResult, err := tx.ExecContext(ctx, `DELETE FROM pending_actions`)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting pending actions during clear", "error", err)
		return fmt.Errorf("failed to delete pending actions during clear: %w", err)
	}
	pendingCount, _ := pendingResult.RowsAffected()

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit clear transaction", "error", err)
		return fmt.Errorf("failed to commit clear transaction: %w", err)
	}
	tx = nil

	s.logger.InfoContext(ctx, "Cleared all data",
		"chats_deleted", chatsCount,
		"pending_actions_deleted", pendingCount)
	return nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite.
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)

	default:
		s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	}

	return nil
}
