package ports

import (
	"context"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

// ReservationRepository defines the interface for reservation persistence.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Reservation, error)
	List(ctx context.Context) ([]*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
}

// CreateReservationInput carries the data needed to request an appointment.
type CreateReservationInput struct {
	UserID      string
	CompanyID   string
	ServiceType domain.ServiceType
	RequestedAt string // RFC 3339; parsed by the service
	VehicleInfo string
	Notes       string
}

// CompleteReservationInput carries the data the company supplies when
// closing out an appointment. A service record is written as part of
// completion; for installations a device serial may be registered too.
type CompleteReservationInput struct {
	ReservationID string
	CompanyID     string
	Description   string
	PerformedBy   string
	Cost          int64
	DeviceSerial  string
}

// ReservationService implements appointment scheduling.
type ReservationService interface {
	Create(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	Get(ctx context.Context, id string) (*domain.Reservation, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Reservation, error)
	ListForCompany(ctx context.Context, companyID string) ([]*domain.Reservation, error)
	ListAll(ctx context.Context) ([]*domain.Reservation, error)
	Confirm(ctx context.Context, id, companyID string) (*domain.Reservation, error)
	Reject(ctx context.Context, id, companyID, reason string) (*domain.Reservation, error)
	Cancel(ctx context.Context, id, userID, reason string) (*domain.Reservation, error)
	Complete(ctx context.Context, input CompleteReservationInput) (*domain.Reservation, error)
}
