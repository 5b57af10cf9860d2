package ports

import (
	"context"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

// RecordRepository defines the interface for service-record persistence.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.ServiceRecord) (*domain.ServiceRecord, error)
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.ServiceRecord, error)
	ListByCompany(ctx context.Context, companyID string) ([]*domain.ServiceRecord, error)
	List(ctx context.Context) ([]*domain.ServiceRecord, error)
}
