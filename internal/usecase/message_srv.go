package usecase

import (
	"context"
	"time"

	"job-portal/internal/data/entity"
	"job-portal/internal/data/repository"
	"job-portal/internal/dto/request"
	"job-portal/internal/dto/response"
	"job-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MessageService interface {
	StartConversation(ctx context.Context, senderID uuid.UUID, req *request.StartConversationRequest) (*response.ConversationResponse, error)
	ListConversations(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) ([]response.ConversationResponse, error)
	Send(ctx context.Context, conversationID, senderID uuid.UUID, req *request.SendMessageRequest) (*response.MessageResponse, error)
	ListMessages(ctx context.Context, conversationID, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.MessageResponse], error)
	MarkRead(ctx context.Context, conversationID, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteConversation(ctx context.Context, conversationID, userID uuid.UUID) error
}

type messageService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMessageService(repo *repository.Repository, log *zap.Logger) MessageService {
	return &messageService{repo: repo, log: log}
}

// StartConversation reuses an existing thread between the two users when
// one exists for the same job, otherwise creates one, then sends the
// opening message.
func (s *messageService) StartConversation(ctx context.Context, senderID uuid.UUID, req *request.StartConversationRequest) (*response.ConversationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	recipientID, err := utils.ParseUUID(req.RecipientID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"recipient_id": "Must be a valid UUID"}}
	}
	if recipientID == senderID {
		return nil, &ValidationError{Fields: map[string]string{"recipient_id": "Cannot message yourself"}}
	}

	recipient, err := s.repo.User.FindByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, ErrNotFound
	}

	var jobID *uuid.UUID
	if req.RelatedJobID != nil {
		id, err := utils.ParseUUID(*req.RelatedJobID)
		if err != nil {
			return nil, &ValidationError{Fields: map[string]string{"related_job_id": "Must be a valid UUID"}}
		}
		jobID = &id
	}

	conv, err := s.repo.Conversation.FindBetween(ctx, senderID, recipientID, jobID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if conv == nil {
		conv = &entity.Conversation{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Participants:  []uuid.UUID{senderID, recipientID},
			RelatedJobID:  jobID,
			LastMessageAt: now,
		}
		if req.ApplicationID != nil {
			id, err := utils.ParseUUID(*req.ApplicationID)
			if err != nil {
				return nil, &ValidationError{Fields: map[string]string{"application_id": "Must be a valid UUID"}}
			}
			conv.RelatedApplication = &id
		}
		if err := s.repo.Conversation.Create(ctx, conv); err != nil {
			return nil, err
		}
	}

	msg, err := s.appendMessage(ctx, conv.ID, senderID, req.Content)
	if err != nil {
		return nil, err
	}

	resp := response.ConversationToResponse(conv, 0, msg)
	return &resp, nil
}

func (s *messageService) appendMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string) (*entity.Message, error) {
	now := time.Now()
	msg := &entity.Message{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
		},
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}

	if err := s.repo.Message.Create(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.repo.Conversation.UpdateLastMessage(ctx, conversationID, msg.ID, now); err != nil {
		s.log.Warn("Failed to bump conversation", zap.Error(err), zap.String("conversation_id", conversationID.String()))
	}

	return msg, nil
}

func (s *messageService) ListConversations(ctx context.Context, userID uuid.UUID, page request.PaginatedRequest) ([]response.ConversationResponse, error) {
	convs, err := s.repo.Conversation.FindByParticipant(ctx, userID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]response.ConversationResponse, 0, len(convs))
	for _, conv := range convs {
		unread, err := s.repo.Message.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			s.log.Warn("Failed to count unread messages", zap.Error(err))
		}

		var last *entity.Message
		if conv.LastMessageID != nil {
			last, err = s.repo.Message.FindByID(ctx, *conv.LastMessageID)
			if err != nil {
				s.log.Warn("Failed to load last message", zap.Error(err))
			}
		}

		items = append(items, response.ConversationToResponse(conv, unread, last))
	}

	return items, nil
}

// participantConversation loads the thread and checks membership
func (s *messageService) participantConversation(ctx context.Context, conversationID, userID uuid.UUID) (*entity.Conversation, error) {
	conv, err := s.repo.Conversation.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, ErrNotFound
	}

	member, err := s.repo.Conversation.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrForbidden
	}

	return conv, nil
}

func (s *messageService) Send(ctx context.Context, conversationID, senderID uuid.UUID, req *request.SendMessageRequest) (*response.MessageResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if _, err := s.participantConversation(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	msg, err := s.appendMessage(ctx, conversationID, senderID, req.Content)
	if err != nil {
		return nil, err
	}

	resp := response.MessageToResponse(msg)
	return &resp, nil
}

func (s *messageService) ListMessages(ctx context.Context, conversationID, userID uuid.UUID, page request.PaginatedRequest) (*response.PaginatedResponse[response.MessageResponse], error) {
	if _, err := s.participantConversation(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	msgs, err := s.repo.Message.FindByConversation(ctx, conversationID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Message.CountByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	items := make([]response.MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		items = append(items, response.MessageToResponse(msg))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *messageService) MarkRead(ctx context.Context, conversationID, userID uuid.UUID) error {
	if _, err := s.participantConversation(ctx, conversationID, userID); err != nil {
		return err
	}

	_, err := s.repo.Message.MarkRead(ctx, conversationID, userID)
	return err
}

func (s *messageService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.Message.CountUnreadTotal(ctx, userID)
}

// DeleteConversation removes the thread and its messages for both sides
func (s *messageService) DeleteConversation(ctx context.Context, conversationID, userID uuid.UUID) error {
	if _, err := s.participantConversation(ctx, conversationID, userID); err != nil {
		return err
	}

	if err := s.repo.Conversation.Delete(ctx, conversationID); err != nil {
		return err
	}

	s.log.Info("Conversation deleted",
		zap.String("conversation_id", conversationID.String()),
		zap.String("user_id", userID.String()))
	return nil
}
