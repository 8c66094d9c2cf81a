package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"job-portal/internal/data/entity"
	"job-portal/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, userID *uuid.UUID, action string, limit, offset int) ([]*entity.AuditLog, error)
	CountAll(ctx context.Context, userID *uuid.UUID, action string) (int64, error)
}

type auditRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditRepository(db database.PgxIface, log *zap.Logger) AuditRepository {
	return &auditRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit")),
	}
}

func (r *auditRepository) Create(ctx context.Context, entry *entity.AuditLog) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	query := `INSERT INTO audit_logs (id, user_id, action, metadata, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.Exec(ctx, query, entry.ID, entry.UserID, entry.Action, metadata, entry.CreatedAt)
	if err != nil {
		r.log.Error("Failed to write audit log",
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.String("user_id", entry.UserID.String()),
		)
		return fmt.Errorf("create audit log %s: %w", entry.Action, err)
	}

	return nil
}

func buildAuditFilter(userID *uuid.UUID, action string) (string, []any) {
	clause := ""
	args := []any{}
	idx := 1

	if userID != nil {
		clause += fmt.Sprintf(" AND user_id = $%d", idx)
		args = append(args, *userID)
		idx++
	}
	if action != "" {
		clause += fmt.Sprintf(" AND action = $%d", idx)
		args = append(args, action)
	}

	return clause, args
}

func (r *auditRepository) FindAll(ctx context.Context, userID *uuid.UUID, action string, limit, offset int) ([]*entity.AuditLog, error) {
	clause, args := buildAuditFilter(userID, action)
	query := `SELECT id, user_id, action, metadata, created_at FROM audit_logs WHERE TRUE` + clause
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list audit logs", zap.Error(err))
		return nil, fmt.Errorf("find audit logs: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditLog
	for rows.Next() {
		var entry entity.AuditLog
		var metadata []byte
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &metadata, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata: %w", err)
			}
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

func (r *auditRepository) CountAll(ctx context.Context, userID *uuid.UUID, action string) (int64, error) {
	clause, args := buildAuditFilter(userID, action)
	query := `SELECT COUNT(*) FROM audit_logs WHERE TRUE` + clause

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count audit logs: %w", err)
	}

	return count, nil
}
