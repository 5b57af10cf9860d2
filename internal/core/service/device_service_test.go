package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

type stubDeviceRepo struct {
	devices map[string]*domain.Device // keyed by ID
}

func newStubDeviceRepo() *stubDeviceRepo {
	return &stubDeviceRepo{devices: make(map[string]*domain.Device)}
}

func cloneDevice(d *domain.Device) *domain.Device {
	if d == nil {
		return nil
	}
	clone := *d
	return &clone
}

func (r *stubDeviceRepo) Create(_ context.Context, d *domain.Device) (*domain.Device, error) {
	r.devices[d.ID] = cloneDevice(d)
	return cloneDevice(d), nil
}

func (r *stubDeviceRepo) FindByID(_ context.Context, id string) (*domain.Device, error) {
	d, ok := r.devices[id]
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	return cloneDevice(d), nil
}

func (r *stubDeviceRepo) FindBySerial(_ context.Context, serial string) (*domain.Device, error) {
	for _, d := range r.devices {
		if d.SerialNumber == serial {
			return cloneDevice(d), nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}

func (r *stubDeviceRepo) FindByUser(_ context.Context, userID string) (*domain.Device, error) {
	for _, d := range r.devices {
		if d.UserID == userID {
			return cloneDevice(d), nil
		}
	}
	return nil, domain.ErrDeviceNotFound
}

func (r *stubDeviceRepo) ListByCompany(_ context.Context, companyID string) ([]*domain.Device, error) {
	var out []*domain.Device
	for _, d := range r.devices {
		if d.CompanyID == companyID {
			out = append(out, cloneDevice(d))
		}
	}
	return out, nil
}

func (r *stubDeviceRepo) List(_ context.Context) ([]*domain.Device, error) {
	var out []*domain.Device
	for _, d := range r.devices {
		out = append(out, cloneDevice(d))
	}
	return out, nil
}

func (r *stubDeviceRepo) Update(_ context.Context, d *domain.Device) error {
	if _, ok := r.devices[d.ID]; !ok {
		return domain.ErrDeviceNotFound
	}
	r.devices[d.ID] = cloneDevice(d)
	return nil
}

func TestDeviceService_Register_NewDevice(t *testing.T) {
	repo := newStubDeviceRepo()
	svc := NewDeviceService(repo, zerolog.Nop())

	device, err := svc.Register(context.Background(), ports.RegisterDeviceInput{
		SerialNumber: "IID-0001",
		ModelName:    "BreathGuard 3",
		CompanyID:    "c1",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if device.Status != domain.DeviceAvailable {
		t.Fatalf("new device must start available, got %s", device.Status)
	}
	if device.ID == "" {
		t.Fatalf("expected generated ID")
	}
}

func TestDeviceService_Register_DuplicateSerial(t *testing.T) {
	repo := newStubDeviceRepo()
	svc := NewDeviceService(repo, zerolog.Nop())

	input := ports.RegisterDeviceInput{SerialNumber: "IID-0001", ModelName: "BreathGuard 3"}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); err != domain.ErrDeviceExists {
		t.Fatalf("expected ErrDeviceExists, got %v", err)
	}
}

func TestDeviceService_Assign_InstallsOnUser(t *testing.T) {
	repo := newStubDeviceRepo()
	svc := NewDeviceService(repo, zerolog.Nop())

	device, err := svc.Register(context.Background(), ports.RegisterDeviceInput{SerialNumber: "IID-0002", ModelName: "BreathGuard 3"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	assigned, err := svc.Assign(context.Background(), device.ID, "u1")
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if assigned.Status != domain.DeviceInstalled || assigned.UserID != "u1" {
		t.Fatalf("unexpected device state: %+v", assigned)
	}
}

func TestDeviceService_Assign_DeactivatedDeviceRejected(t *testing.T) {
	repo := newStubDeviceRepo()
	svc := NewDeviceService(repo, zerolog.Nop())

	device, err := svc.Register(context.Background(), ports.RegisterDeviceInput{SerialNumber: "IID-0003", ModelName: "BreathGuard 3"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.ChangeStatus(context.Background(), device.ID, domain.DeviceDeactivated); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := svc.Assign(context.Background(), device.ID, "u1"); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestDeviceService_ChangeStatus_ClearsUserWhenUninstalled(t *testing.T) {
	repo := newStubDeviceRepo()
	svc := NewDeviceService(repo, zerolog.Nop())

	device, err := svc.Register(context.Background(), ports.RegisterDeviceInput{SerialNumber: "IID-0004", ModelName: "BreathGuard 3"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Assign(context.Background(), device.ID, "u1"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	updated, err := svc.ChangeStatus(context.Background(), device.ID, domain.DeviceUnderMaintenance)
	if err != nil {
		t.Fatalf("ChangeStatus returned error: %v", err)
	}
	if updated.Status != domain.DeviceUnderMaintenance {
		t.Fatalf("unexpected status: %s", updated.Status)
	}
	if updated.UserID != "" {
		t.Fatalf("uninstalling must clear the assignment, got %q", updated.UserID)
	}
}

func TestDeviceService_ChangeStatus_InvalidTransition(t *testing.T) {
	repo := newStubDeviceRepo()
	svc := NewDeviceService(repo, zerolog.Nop())

	device, err := svc.Register(context.Background(), ports.RegisterDeviceInput{SerialNumber: "IID-0005", ModelName: "BreathGuard 3"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.ChangeStatus(context.Background(), device.ID, domain.DeviceDeactivated); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	// Deactivated is terminal.
	if _, err := svc.ChangeStatus(context.Background(), device.ID, domain.DeviceAvailable); err != domain.ErrInvalidTransition {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
