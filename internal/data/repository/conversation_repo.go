package repository

import (
	"context"
	"fmt"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ConversationRepository interface {
	Create(ctx context.Context, conv *entity.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error)
	FindBetween(ctx context.Context, userA, userB uuid.UUID, jobID *uuid.UUID) (*entity.Conversation, error)
	UpdateLastMessage(ctx context.Context, convID, messageID uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	IsParticipant(ctx context.Context, convID, userID uuid.UUID) (bool, error)
}

type conversationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewConversationRepository(db database.PgxIface, log *zap.Logger) ConversationRepository {
	return &conversationRepository{
		db:  db,
		log: log.With(zap.String("repository", "conversation")),
	}
}

func (r *conversationRepository) Create(ctx context.Context, conv *entity.Conversation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO conversations (id, related_job_id, related_application_id, last_message_id,
		                  last_message_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, query,
		conv.ID, conv.RelatedJobID, conv.RelatedApplication, conv.LastMessageID,
		conv.LastMessageAt, conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create conversation", zap.Error(err))
		return fmt.Errorf("create conversation: %w", err)
	}

	for _, participant := range conv.Participants {
		_, err = tx.Exec(ctx,
			`INSERT INTO conversation_participants (conversation_id, user_id) VALUES ($1, $2)`,
			conv.ID, participant,
		)
		if err != nil {
			return fmt.Errorf("add participant %s: %w", participant.String(), err)
		}
	}

	return tx.Commit(ctx)
}

func (r *conversationRepository) scanWithParticipants(ctx context.Context, row pgx.Row) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := row.Scan(
		&conv.ID,
		&conv.RelatedJobID,
		&conv.RelatedApplication,
		&conv.LastMessageID,
		&conv.LastMessageAt,
		&conv.CreatedAt,
		&conv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM conversation_participants WHERE conversation_id = $1`, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		conv.Participants = append(conv.Participants, userID)
	}

	return &conv, rows.Err()
}

const conversationColumns = `id, related_job_id, related_application_id, last_message_id, last_message_at, created_at, updated_at`

func (r *conversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	conv, err := r.scanWithParticipants(ctx, r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find conversation %s: %w", id.String(), err)
	}

	return conv, nil
}

func (r *conversationRepository) FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Conversation, error) {
	query := `
		SELECT c.` + "id" + `
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		WHERE cp.user_id = $1
		ORDER BY c.last_message_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list conversations", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find conversations for %s: %w", userID.String(), err)
	}

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan conversation id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversation rows: %w", err)
	}

	var convs []*entity.Conversation
	for _, id := range ids {
		conv, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if conv != nil {
			convs = append(convs, conv)
		}
	}

	return convs, nil
}

// FindBetween locates an existing conversation shared by exactly these two
// users, optionally scoped to a job.
func (r *conversationRepository) FindBetween(ctx context.Context, userA, userB uuid.UUID, jobID *uuid.UUID) (*entity.Conversation, error) {
	query := `
		SELECT c.id
		FROM conversations c
		JOIN conversation_participants pa ON pa.conversation_id = c.id AND pa.user_id = $1
		JOIN conversation_participants pb ON pb.conversation_id = c.id AND pb.user_id = $2
	`
	args := []any{userA, userB}

	if jobID != nil {
		query += ` WHERE c.related_job_id = $3`
		args = append(args, *jobID)
	}

	query += ` ORDER BY c.last_message_at DESC LIMIT 1`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find conversation between %s and %s: %w", userA.String(), userB.String(), err)
	}

	return r.FindByID(ctx, id)
}

func (r *conversationRepository) UpdateLastMessage(ctx context.Context, convID, messageID uuid.UUID, at time.Time) error {
	query := `UPDATE conversations SET last_message_id = $2, last_message_at = $3, updated_at = NOW() WHERE id = $1`

	_, err := r.db.Exec(ctx, query, convID, messageID, at)
	if err != nil {
		return fmt.Errorf("update last message for %s: %w", convID.String(), err)
	}

	return nil
}

func (r *conversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE conversation_id = $1`, id); err != nil {
		return fmt.Errorf("delete messages for %s: %w", id.String(), err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM conversation_participants WHERE conversation_id = $1`, id); err != nil {
		return fmt.Errorf("delete participants for %s: %w", id.String(), err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM conversations WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete conversation %s: %w", id.String(), err)
	}

	return tx.Commit(ctx)
}

func (r *conversationRepository) IsParticipant(ctx context.Context, convID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, convID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check participant: %w", err)
	}

	return exists, nil
}
