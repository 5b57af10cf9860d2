package ports

import (
	"context"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

// EmailSender delivers a notification by email. Implementations are
// fire-and-forget from the caller's perspective; delivery failures are
// logged, never propagated to the triggering request.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NotifyInput describes a notification to record and optionally email.
type NotifyInput struct {
	RecipientID string
	Email       string // empty disables email delivery
	Kind        domain.NotificationKind
	Title       string
	Body        string
}

// NotificationService records notifications and fans them out.
type NotificationService interface {
	Notify(ctx context.Context, input NotifyInput) (*domain.Notification, error)
	ListForRecipient(ctx context.Context, recipientID string) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}
