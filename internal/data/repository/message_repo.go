package repository

import (
	"context"
	"fmt"

	"job-portal/internal/data/entity"
	"job-portal/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error)
	FindByConversation(ctx context.Context, convID uuid.UUID, limit, offset int) ([]*entity.Message, error)
	CountByConversation(ctx context.Context, convID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, convID, readerID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, convID, readerID uuid.UUID) (int64, error)
	CountUnreadTotal(ctx context.Context, readerID uuid.UUID) (int64, error)
}

type messageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMessageRepository(db database.PgxIface, log *zap.Logger) MessageRepository {
	return &messageRepository{
		db:  db,
		log: log.With(zap.String("repository", "message")),
	}
}

const messageColumns = `id, conversation_id, sender_id, content, is_read, read_at, created_at`

func scanMessage(row pgx.Row) (*entity.Message, error) {
	var msg entity.Message
	err := row.Scan(
		&msg.ID,
		&msg.ConversationID,
		&msg.SenderID,
		&msg.Content,
		&msg.IsRead,
		&msg.ReadAt,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) Create(ctx context.Context, msg *entity.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content, is_read, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		msg.ID, msg.ConversationID, msg.SenderID, msg.Content,
		msg.IsRead, msg.ReadAt, msg.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create message",
			zap.Error(err),
			zap.String("conversation_id", msg.ConversationID.String()),
		)
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

func (r *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	msg, err := scanMessage(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find message %s: %w", id.String(), err)
	}

	return msg, nil
}

func (r *messageRepository) FindByConversation(ctx context.Context, convID uuid.UUID, limit, offset int) ([]*entity.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE conversation_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, convID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list messages", zap.Error(err), zap.String("conversation_id", convID.String()))
		return nil, fmt.Errorf("find messages for %s: %w", convID.String(), err)
	}
	defer rows.Close()

	var msgs []*entity.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		msgs = append(msgs, msg)
	}

	return msgs, rows.Err()
}

func (r *messageRepository) CountByConversation(ctx context.Context, convID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE conversation_id = $1`, convID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count messages for %s: %w", convID.String(), err)
	}
	return count, nil
}

// MarkRead flags every message the reader did not send as read.
func (r *messageRepository) MarkRead(ctx context.Context, convID, readerID uuid.UUID) (int64, error) {
	query := `
		UPDATE messages
		SET is_read = TRUE, read_at = NOW()
		WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = FALSE
	`

	result, err := r.db.Exec(ctx, query, convID, readerID)
	if err != nil {
		return 0, fmt.Errorf("mark messages read in %s: %w", convID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *messageRepository) CountUnread(ctx context.Context, convID, readerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM messages WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = FALSE`

	var count int64
	if err := r.db.QueryRow(ctx, query, convID, readerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread messages in %s: %w", convID.String(), err)
	}

	return count, nil
}

// CountUnreadTotal counts unread messages across every thread the reader
// participates in.
func (r *messageRepository) CountUnreadTotal(ctx context.Context, readerID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversation_participants cp ON cp.conversation_id = m.conversation_id
		WHERE cp.user_id = $1 AND m.sender_id <> $1 AND m.is_read = FALSE
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, readerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread messages for %s: %w", readerID.String(), err)
	}

	return count, nil
}
