package service

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

// DeviceService implements device inventory and assignment.
type DeviceService struct {
	repo   ports.DeviceRepository
	logger zerolog.Logger
}

func NewDeviceService(repo ports.DeviceRepository, logger zerolog.Logger) *DeviceService {
	return &DeviceService{repo: repo, logger: logger}
}

func (s *DeviceService) Register(ctx context.Context, input ports.RegisterDeviceInput) (*domain.Device, error) {
	if existing, err := s.repo.FindBySerial(ctx, input.SerialNumber); err == nil && existing != nil {
		return nil, domain.ErrDeviceExists
	}

	now := time.Now().UTC()
	device := &domain.Device{
		ID:           ulid.Make().String(),
		SerialNumber: input.SerialNumber,
		ModelName:    input.ModelName,
		CompanyID:    input.CompanyID,
		Status:       domain.DeviceAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, device)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("serial_number", created.SerialNumber).Str("company_id", created.CompanyID).Msg("device registered")
	return created, nil
}

func (s *DeviceService) Get(ctx context.Context, id string) (*domain.Device, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DeviceService) GetForUser(ctx context.Context, userID string) (*domain.Device, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *DeviceService) List(ctx context.Context) ([]*domain.Device, error) {
	return s.repo.List(ctx)
}

func (s *DeviceService) ListForCompany(ctx context.Context, companyID string) ([]*domain.Device, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

// Assign installs a device on a subject's vehicle.
func (s *DeviceService) Assign(ctx context.Context, deviceID, userID string) (*domain.Device, error) {
	device, err := s.repo.FindByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !device.Status.CanTransitionTo(domain.DeviceInstalled) {
		return nil, domain.ErrInvalidTransition
	}

	device.Status = domain.DeviceInstalled
	device.UserID = userID
	device.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, device); err != nil {
		return nil, err
	}
	s.logger.Info().Str("device_id", device.ID).Str("user_id", userID).Msg("device assigned")
	return device, nil
}

func (s *DeviceService) ChangeStatus(ctx context.Context, deviceID string, next domain.DeviceStatus) (*domain.Device, error) {
	device, err := s.repo.FindByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !device.Status.CanTransitionTo(next) {
		return nil, domain.ErrInvalidTransition
	}

	device.Status = next
	if next != domain.DeviceInstalled {
		device.UserID = ""
	}
	device.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}
