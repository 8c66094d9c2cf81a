package usecase

import (
	"context"

	"job-portal/internal/data/repository"
	"job-portal/internal/dto/request"
	"job-portal/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, notificationID, userID uuid.UUID) error
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{repo: repo, log: log}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, page request.PaginatedRequest) (*response.PaginatedResponse[response.NotificationResponse], error) {
	notifs, err := s.repo.Notification.FindByRecipient(ctx, userID, unreadOnly, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Notification.CountByRecipient(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	items := make([]response.NotificationResponse, 0, len(notifs))
	for _, n := range notifs {
		items = append(items, response.NotificationToResponse(n))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.Notification.CountByRecipient(ctx, userID, true)
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	found, err := s.repo.Notification.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.Notification.MarkAllRead(ctx, userID)
}

func (s *notificationService) Delete(ctx context.Context, notificationID, userID uuid.UUID) error {
	found, err := s.repo.Notification.Delete(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
