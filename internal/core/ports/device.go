package ports

import (
	"context"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

// DeviceRepository defines the interface for device persistence.
type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) (*domain.Device, error)
	FindByID(ctx context.Context, id string) (*domain.Device, error)
	FindBySerial(ctx context.Context, serial string) (*domain.Device, error)
	FindByUser(ctx context.Context, userID string) (*domain.Device, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.Device, error)
	List(ctx context.Context) ([]*domain.Device, error)
	Update(ctx context.Context, device *domain.Device) error
}

// RegisterDeviceInput carries the data needed to register a device.
type RegisterDeviceInput struct {
	SerialNumber string
	ModelName    string
	CompanyID    string
}

// DeviceService implements device inventory and assignment.
type DeviceService interface {
	Register(ctx context.Context, input RegisterDeviceInput) (*domain.Device, error)
	Get(ctx context.Context, id string) (*domain.Device, error)
	GetForUser(ctx context.Context, userID string) (*domain.Device, error)
	List(ctx context.Context) ([]*domain.Device, error)
	ListForCompany(ctx context.Context, companyID string) ([]*domain.Device, error)
	Assign(ctx context.Context, deviceID, userID string) (*domain.Device, error)
	ChangeStatus(ctx context.Context, deviceID string, next domain.DeviceStatus) (*domain.Device, error)
}
