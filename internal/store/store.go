// Package store reads journal chat messages from the hosted Postgres
// backend. The analysis pipeline is read-only here: messages are created
// by the chat subsystem and profiles are never persisted.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Waseeq28/recalibration-app/internal/conversation"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// TurnsForDay returns a user's chat turns for one journal day, oldest
// first. AI-generated messages map to the assistant role.
func (s *Store) TurnsForDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]conversation.Turn, error) {
	query := `
		SELECT id, is_ai_generated, content, created_at
		FROM messages
		WHERE user_id = $1 AND day = $2::date
		ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, userID, day)
	if err != nil {
		return nil, fmt.Errorf("query turns for day: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

// TurnsForConversation returns the turns of one conversation, oldest
// first.
func (s *Store) TurnsForConversation(ctx context.Context, conversationID uuid.UUID) ([]conversation.Turn, error) {
	query := `
		SELECT id, is_ai_generated, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC`

	rows, err := s.pool.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("query turns for conversation: %w", err)
	}
	defer rows.Close()

	return scanTurns(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTurns(rows pgxRows) ([]conversation.Turn, error) {
	var turns []conversation.Turn
	for rows.Next() {
		var (
			id            uuid.UUID
			isAIGenerated bool
			content       string
			createdAt     time.Time
		)
		if err := rows.Scan(&id, &isAIGenerated, &content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		role := conversation.RoleUser
		if isAIGenerated {
			role = conversation.RoleAssistant
		}
		turns = append(turns, conversation.Turn{
			ID:        id.String(),
			Role:      role,
			Content:   content,
			CreatedAt: createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate message rows: %w", err)
	}
	return turns, nil
}
