package notification

import (
	"context"
	"strings"
	"time"

	notificationerrors "go-hris-leave/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const listLimit = 100

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Notify(ctx context.Context, cmd NotifyCommand) error
	ListMine(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, recipientID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Notify(ctx context.Context, cmd NotifyCommand) error {
	recipientID, err := uuid.Parse(cmd.RecipientID)
	if err != nil {
		return notificationerrors.ErrInvalidRecipientID
	}
	if strings.TrimSpace(cmd.Title) == "" {
		return notificationerrors.ErrTitleRequired
	}

	category := cmd.Category
	if category == "" {
		category = CategoryLeave
	}

	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Title:       cmd.Title,
		Body:        cmd.Body,
		Category:    category,
		CreatedAt:   time.Now().UTC(),
	}
	if ref, err := uuid.Parse(cmd.RefID); err == nil {
		n.RefID = &ref
	}
	if cmd.SourceEventID != "" {
		src := cmd.SourceEventID
		n.SourceEventID = &src
	}

	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("persist notification failed",
			zap.String("recipient_id", cmd.RecipientID),
			zap.String("category", category),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("notification stored", zap.String("recipient_id", cmd.RecipientID), zap.String("title", cmd.Title))
	return nil
}

func (s *service) ListMine(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationResponse, error) {
	if _, err := uuid.Parse(recipientID); err != nil {
		return nil, notificationerrors.ErrInvalidRecipientID
	}
	rows, err := s.repo.FindByRecipient(ctx, recipientID, unreadOnly, listLimit)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, recipientID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrNotificationNotFound
	}
	updated, err := s.repo.MarkRead(ctx, recipientID, id, time.Now().UTC())
	if err != nil {
		return err
	}
	if !updated {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Title:     n.Title,
		Body:      n.Body,
		Category:  n.Category,
		Read:      n.ReadAt != nil,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.RefID != nil {
		v := n.RefID.String()
		resp.RefID = &v
	}
	return resp
}
