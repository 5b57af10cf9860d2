package service

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/ddp/interlock-portal/internal/core/domain"
	"github.com/ddp/interlock-portal/internal/core/ports"
)

// CompanyService implements service-company management.
type CompanyService struct {
	repo   ports.CompanyRepository
	logger zerolog.Logger
}

func NewCompanyService(repo ports.CompanyRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{repo: repo, logger: logger}
}

func (s *CompanyService) Create(ctx context.Context, input ports.CreateCompanyInput) (*domain.Company, error) {
	now := time.Now().UTC()
	company := &domain.Company{
		ID:        ulid.Make().String(),
		Name:      input.Name,
		Status:    domain.CompanyPending,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, company)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("company_id", created.ID).Str("name", created.Name).Msg("company created")
	return created, nil
}

func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns companies, optionally filtered by status (empty = all).
func (s *CompanyService) List(ctx context.Context, status domain.CompanyStatus) ([]*domain.Company, error) {
	return s.repo.List(ctx, status)
}

func (s *CompanyService) SetStatus(ctx context.Context, id string, status domain.CompanyStatus) (*domain.Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	company.Status = status
	company.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	s.logger.Info().Str("company_id", id).Str("status", string(status)).Msg("company status changed")
	return company, nil
}
