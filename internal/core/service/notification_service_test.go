package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

type stubNotificationRepo struct {
	notifications map[string]*domain.Notification
	createErr     error
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{notifications: make(map[string]*domain.Notification)}
}

func (r *stubNotificationRepo) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *n
	r.notifications[n.ID] = &clone
	return &clone, nil
}

func (r *stubNotificationRepo) ListByRecipient(_ context.Context, recipientID string) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, id, recipientID string) error {
	n, ok := r.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return domain.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

type recordingSender struct {
	to      []string
	sendErr error
}

func (s *recordingSender) Send(_ context.Context, to, subject, body string) error {
	s.to = append(s.to, to)
	return s.sendErr
}

func TestNotificationService_Notify_PersistsAndEmails(t *testing.T) {
	repo := newStubNotificationRepo()
	sender := &recordingSender{}
	svc := NewNotificationService(repo, sender, zerolog.Nop())

	created, err := svc.Notify(context.Background(), ports.NotifyInput{
		RecipientID: "u1",
		Email:       "sam@example.com",
		Kind:        domain.NotifyReservationConfirmed,
		Title:       "Reservation confirmed",
		Body:        "See you Tuesday.",
	})
	if err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if created.ID == "" || created.Read {
		t.Fatalf("unexpected notification: %+v", created)
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("notification not persisted")
	}
	if len(sender.to) != 1 || sender.to[0] != "sam@example.com" {
		t.Fatalf("expected one email to subject, got %v", sender.to)
	}
}

func TestNotificationService_Notify_NoEmailAddressSkipsDelivery(t *testing.T) {
	repo := newStubNotificationRepo()
	sender := &recordingSender{}
	svc := NewNotificationService(repo, sender, zerolog.Nop())

	if _, err := svc.Notify(context.Background(), ports.NotifyInput{
		RecipientID: "u1",
		Kind:        domain.NotifyServiceCompleted,
		Title:       "Service completed",
	}); err != nil {
		t.Fatalf("Notify returned error: %v", err)
	}
	if len(sender.to) != 0 {
		t.Fatalf("no email expected, got %v", sender.to)
	}
}

func TestNotificationService_Notify_EmailFailureDoesNotPropagate(t *testing.T) {
	repo := newStubNotificationRepo()
	sender := &recordingSender{sendErr: errors.New("smtp down")}
	svc := NewNotificationService(repo, sender, zerolog.Nop())

	if _, err := svc.Notify(context.Background(), ports.NotifyInput{
		RecipientID: "u1",
		Email:       "sam@example.com",
		Kind:        domain.NotifyServiceCompleted,
		Title:       "Service completed",
	}); err != nil {
		t.Fatalf("delivery failure must not fail the notification: %v", err)
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("notification must still be persisted")
	}
}

func TestNotificationService_Notify_PersistFailurePropagates(t *testing.T) {
	repo := newStubNotificationRepo()
	repo.createErr = errors.New("mongo down")
	svc := NewNotificationService(repo, &recordingSender{}, zerolog.Nop())

	if _, err := svc.Notify(context.Background(), ports.NotifyInput{RecipientID: "u1"}); err == nil {
		t.Fatalf("expected persistence error")
	}
}

func TestNotificationService_MarkRead_WrongRecipient(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := NewNotificationService(repo, nil, zerolog.Nop())

	created, err := svc.Notify(context.Background(), ports.NotifyInput{RecipientID: "u1", Title: "x"})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}

	if err := svc.MarkRead(context.Background(), created.ID, "u2"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
	if err := svc.MarkRead(context.Background(), created.ID, "u1"); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
}
