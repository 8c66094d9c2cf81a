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

type NotificationRepository interface {
	Create(ctx context.Context, notif *entity.Notification) error
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	CountByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (int64, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id, recipientID uuid.UUID) (bool, error)
}

type notificationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNotificationRepository(db database.PgxIface, log *zap.Logger) NotificationRepository {
	return &notificationRepository{
		db:  db,
		log: log.With(zap.String("repository", "notification")),
	}
}

const notificationColumns = `id, recipient_id, sender_id, type, title, message,
	       related_job_id, related_application_id, is_read, link, created_at, updated_at`

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	err := row.Scan(
		&n.ID,
		&n.RecipientID,
		&n.SenderID,
		&n.Type,
		&n.Title,
		&n.Message,
		&n.RelatedJobID,
		&n.RelatedApplication,
		&n.IsRead,
		&n.Link,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) Create(ctx context.Context, notif *entity.Notification) error {
	query := `
		INSERT INTO notifications (id, recipient_id, sender_id, type, title, message,
		                  related_job_id, related_application_id, is_read, link,
		                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		notif.ID, notif.RecipientID, notif.SenderID, notif.Type, notif.Title,
		notif.Message, notif.RelatedJobID, notif.RelatedApplication,
		notif.IsRead, notif.Link, notif.CreatedAt, notif.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create notification",
			zap.Error(err),
			zap.String("recipient_id", notif.RecipientID.String()),
			zap.String("type", string(notif.Type)),
		)
		return fmt.Errorf("create notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, recipientID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list notifications", zap.Error(err), zap.String("recipient_id", recipientID.String()))
		return nil, fmt.Errorf("find notifications for %s: %w", recipientID.String(), err)
	}
	defer rows.Close()

	var notifs []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		notifs = append(notifs, n)
	}

	return notifs, rows.Err()
}

func (r *notificationRepository) CountByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (int64, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count notifications for %s: %w", recipientID.String(), err)
	}

	return count, nil
}

// MarkRead is scoped to the recipient so one user cannot touch another's
// rows. The bool reports whether a row matched, so callers can tell a
// missing notification from a storage failure.
func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	query := `UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE id = $1 AND recipient_id = $2`

	result, err := r.db.Exec(ctx, query, id, recipientID)
	if err != nil {
		return false, fmt.Errorf("mark notification %s read: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE recipient_id = $1 AND is_read = FALSE`

	result, err := r.db.Exec(ctx, query, recipientID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read for %s: %w", recipientID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (r *notificationRepository) Delete(ctx context.Context, id, recipientID uuid.UUID) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return false, fmt.Errorf("delete notification %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}
