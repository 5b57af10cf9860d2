package ports

import (
	"context"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

// CompanyRepository defines the interface for company persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) (*domain.Company, error)
	FindByID(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context, status domain.CompanyStatus) ([]*domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
}

// CreateCompanyInput carries the data needed to register a service company.
type CreateCompanyInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// CompanyService implements service-company management.
type CompanyService interface {
	Create(ctx context.Context, input CreateCompanyInput) (*domain.Company, error)
	Get(ctx context.Context, id string) (*domain.Company, error)
	List(ctx context.Context, status domain.CompanyStatus) ([]*domain.Company, error)
	SetStatus(ctx context.Context, id string, status domain.CompanyStatus) (*domain.Company, error)
}
