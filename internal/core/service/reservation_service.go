package service

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

// ReservationService implements appointment scheduling. Completion writes a
// service record and, for installations, registers and assigns the device.
type ReservationService struct {
	repo     ports.ReservationRepository
	records  ports.RecordRepository
	devices  ports.DeviceService
	accounts ports.AuthRepository
	notify   ports.NotificationService
	logger   zerolog.Logger
}

func NewReservationService(
	repo ports.ReservationRepository,
	records ports.RecordRepository,
	devices ports.DeviceService,
	accounts ports.AuthRepository,
	notify ports.NotificationService,
	logger zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		repo:     repo,
		records:  records,
		devices:  devices,
		accounts: accounts,
		notify:   notify,
		logger:   logger,
	}
}

func (s *ReservationService) Create(ctx context.Context, input ports.CreateReservationInput) (*domain.Reservation, error) {
	if !domain.ValidServiceType(input.ServiceType) {
		return nil, fmt.Errorf("unknown service type %q", input.ServiceType)
	}

	requestedAt, err := time.Parse(time.RFC3339, input.RequestedAt)
	if err != nil {
		return nil, fmt.Errorf("parse requested_at: %w", err)
	}

	now := time.Now().UTC()
	reservation := &domain.Reservation{
		ID:          ulid.Make().String(),
		UserID:      input.UserID,
		CompanyID:   input.CompanyID,
		ServiceType: input.ServiceType,
		Status:      domain.ReservationPending,
		RequestedAt: requestedAt.UTC(),
		VehicleInfo: input.VehicleInfo,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, reservation)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("reservation_id", created.ID).
		Str("user_id", created.UserID).
		Str("service_type", string(created.ServiceType)).
		Msg("reservation created")
	return created, nil
}

func (s *ReservationService) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ReservationService) ListForUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ReservationService) ListForCompany(ctx context.Context, companyID string) ([]*domain.Reservation, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *ReservationService) ListAll(ctx context.Context) ([]*domain.Reservation, error) {
	return s.repo.List(ctx)
}

// Confirm moves a pending reservation to confirmed. Only the target company
// may confirm.
func (s *ReservationService) Confirm(ctx context.Context, id, companyID string) (*domain.Reservation, error) {
	reservation, err := s.ownedByCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.CanTransitionTo(domain.ReservationConfirmed) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	reservation.Status = domain.ReservationConfirmed
	reservation.ConfirmedAt = now
	reservation.UpdatedAt = now

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.notifyUser(ctx, reservation, domain.NotifyReservationConfirmed,
		"Reservation confirmed",
		fmt.Sprintf("Your %s appointment has been confirmed.", reservation.ServiceType))
	return reservation, nil
}

func (s *ReservationService) Reject(ctx context.Context, id, companyID, reason string) (*domain.Reservation, error) {
	reservation, err := s.ownedByCompany(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.CanTransitionTo(domain.ReservationRejected) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	reservation.Status = domain.ReservationRejected
	reservation.RejectReason = reason
	reservation.RejectedAt = now
	reservation.UpdatedAt = now

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.notifyUser(ctx, reservation, domain.NotifyReservationRejected,
		"Reservation rejected",
		fmt.Sprintf("Your %s appointment was rejected: %s", reservation.ServiceType, reason))
	return reservation, nil
}

// Cancel lets the owning subject withdraw a pending or confirmed reservation.
func (s *ReservationService) Cancel(ctx context.Context, id, userID, reason string) (*domain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if !reservation.Status.CanTransitionTo(domain.ReservationCancelled) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	reservation.Status = domain.ReservationCancelled
	reservation.CancelReason = reason
	reservation.CancelledAt = now
	reservation.UpdatedAt = now

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, err
	}
	return reservation, nil
}

// Complete closes out a confirmed reservation: the status moves to
// completed, a service record is written, and for installations with a
// device serial the device is registered and assigned to the subject.
func (s *ReservationService) Complete(ctx context.Context, input ports.CompleteReservationInput) (*domain.Reservation, error) {
	reservation, err := s.ownedByCompany(ctx, input.ReservationID, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.CanTransitionTo(domain.ReservationCompleted) {
		return nil, domain.ErrInvalidTransition
	}

	subjectName := ""
	if user, err := s.accounts.FindByID(ctx, reservation.UserID); err == nil {
		subjectName = user.Name
	}

	now := time.Now().UTC()
	record := &domain.ServiceRecord{
		ID:          ulid.Make().String(),
		Type:        reservation.ServiceType,
		SubjectID:   reservation.UserID,
		SubjectName: subjectName,
		CompanyID:   input.CompanyID,
		Description: input.Description,
		PerformedAt: now,
		PerformedBy: input.PerformedBy,
		Cost:        input.Cost,
		CreatedAt:   now,
	}

	if input.DeviceSerial != "" && reservation.ServiceType == domain.ServiceInstallation {
		device, err := s.devices.Register(ctx, ports.RegisterDeviceInput{
			SerialNumber: input.DeviceSerial,
			ModelName:    "",
			CompanyID:    input.CompanyID,
		})
		if err != nil {
			return nil, fmt.Errorf("register device: %w", err)
		}
		if device, err = s.devices.Assign(ctx, device.ID, reservation.UserID); err != nil {
			return nil, fmt.Errorf("assign device: %w", err)
		}
		record.DeviceID = device.ID
		record.DeviceSerialNumber = device.SerialNumber
	}

	if _, err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create service record: %w", err)
	}

	reservation.Status = domain.ReservationCompleted
	reservation.CompletedAt = now
	reservation.UpdatedAt = now

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.notifyUser(ctx, reservation, domain.NotifyServiceCompleted,
		"Service completed",
		fmt.Sprintf("Your %s appointment has been completed.", reservation.ServiceType))

	s.logger.Info().
		Str("reservation_id", reservation.ID).
		Str("record_id", record.ID).
		Msg("reservation completed")
	return reservation, nil
}

func (s *ReservationService) ownedByCompany(ctx context.Context, id, companyID string) (*domain.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return reservation, nil
}

// notifyUser records a notification for the reservation's subject. Failures
// are logged only; notification delivery never fails the state change.
func (s *ReservationService) notifyUser(ctx context.Context, r *domain.Reservation, kind domain.NotificationKind, title, body string) {
	if s.notify == nil {
		return
	}

	email := ""
	if user, err := s.accounts.FindByID(ctx, r.UserID); err == nil {
		email = user.Email
	}

	if _, err := s.notify.Notify(ctx, ports.NotifyInput{
		RecipientID: r.UserID,
		Email:       email,
		Kind:        kind,
		Title:       title,
		Body:        body,
	}); err != nil {
		s.logger.Warn().Err(err).Str("reservation_id", r.ID).Msg("notification failed")
	}
}
