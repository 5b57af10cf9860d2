package ports

import (
	"context"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

// DrivingLogRepository defines the interface for driving-log persistence.
type DrivingLogRepository interface {
	Create(ctx context.Context, l *domain.DrivingLog) (*domain.DrivingLog, error)
	FindByID(ctx context.Context, id string) (*domain.DrivingLog, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.DrivingLog, error)
	ListByDevice(ctx context.Context, deviceID string) ([]*domain.DrivingLog, error)
	List(ctx context.Context) ([]*domain.DrivingLog, error)
	ListByStatus(ctx context.Context, statuses ...domain.LogStatus) ([]*domain.DrivingLog, error)
	Update(ctx context.Context, l *domain.DrivingLog) error
}

// LogScheduleRepository persists one submission schedule per subject.
type LogScheduleRepository interface {
	Save(ctx context.Context, s *domain.LogSchedule) error
	FindByUser(ctx context.Context, userID string) (*domain.LogSchedule, error)
	List(ctx context.Context) ([]*domain.LogSchedule, error)
}

// SubmitLogInput carries one driving-log submission. Period dates are
// "2006-01-02" strings parsed by the service.
type SubmitLogInput struct {
	UserID      string
	DeviceID    string
	PeriodStart string
	PeriodEnd   string
	Notes       string
	Statistics  domain.LogStatistics
}

// ReviewLogInput carries an admin's verdict on a submitted log.
type ReviewLogInput struct {
	LogID       string
	ReviewerID  string
	Status      domain.LogStatus // approved or rejected
	ReviewNotes string
}

// DrivingLogService implements log submission, anomaly screening, review,
// and submission scheduling.
type DrivingLogService interface {
	Submit(ctx context.Context, input SubmitLogInput) (*domain.DrivingLog, error)
	Get(ctx context.Context, id string) (*domain.DrivingLog, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.DrivingLog, error)
	ListAll(ctx context.Context) ([]*domain.DrivingLog, error)
	ListFlagged(ctx context.Context) ([]*domain.DrivingLog, error)
	ListPendingReview(ctx context.Context) ([]*domain.DrivingLog, error)
	Review(ctx context.Context, input ReviewLogInput) (*domain.DrivingLog, error)

	SetSchedule(ctx context.Context, userID, deviceID string, frequency domain.SubmissionFrequency) (*domain.LogSchedule, error)
	GetSchedule(ctx context.Context, userID string) (*domain.LogSchedule, error)
	ListSchedules(ctx context.Context) ([]*domain.LogSchedule, error)
	DaysUntilDue(ctx context.Context, userID string) (int, error)
}
