package service

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

// NotificationService records notifications and optionally emails them.
type NotificationService struct {
	repo   ports.NotificationRepository
	email  ports.EmailSender // nil disables email delivery
	logger zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, email ports.EmailSender, logger zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, email: email, logger: logger}
}

// Notify persists the notification, then attempts email delivery when a
// recipient address is known. Email failures are logged, not returned: the
// persisted record is the source of truth.
func (s *NotificationService) Notify(ctx context.Context, input ports.NotifyInput) (*domain.Notification, error) {
	n := &domain.Notification{
		ID:          ulid.Make().String(),
		RecipientID: input.RecipientID,
		Kind:        input.Kind,
		Title:       input.Title,
		Body:        input.Body,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, err
	}

	if s.email != nil && input.Email != "" {
		if err := s.email.Send(ctx, input.Email, input.Title, input.Body); err != nil {
			s.logger.Warn().Err(err).Str("recipient_id", input.RecipientID).Msg("email delivery failed")
		}
	}

	return created, nil
}

func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID string) ([]*domain.Notification, error) {
	return s.repo.ListByRecipient(ctx, recipientID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID string) error {
	return s.repo.MarkRead(ctx, id, recipientID)
}
