package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vaudoise/clients-contracts/internal/model"
	"github.com/vaudoise/clients-contracts/internal/repository"
)

type ClientService struct {
	clients   *repository.ClientRepository
	contracts *repository.ContractRepository
	now       func() time.Time
}

func NewClientService(clients *repository.ClientRepository, contracts *repository.ContractRepository) *ClientService {
	return &ClientService{
		clients:   clients,
		contracts: contracts,
		now:       time.Now,
	}
}

type CreateClientInput struct {
	Type              model.ClientType
	Name              string
	Phone             string
	Email             string
	BirthDate         *time.Time
	CompanyIdentifier string
}

type UpdateClientInput struct {
	Name  string
	Phone string
	Email string
}

func (s *ClientService) Create(ctx context.Context, input CreateClientInput) (*model.Client, error) {
	client := &model.Client{
		ID:         uuid.New(),
		ClientType: input.Type,
		Name:       input.Name,
		Phone:      input.Phone,
		Email:      input.Email,
	}

	switch input.Type {
	case model.ClientTypePerson:
		if input.BirthDate != nil {
			birth := dateOnly(*input.BirthDate)
			client.BirthDate = &birth
		}
	case model.ClientTypeCompany:
		identifier := strings.TrimSpace(input.CompanyIdentifier)
		if identifier == "" {
			return nil, fmt.Errorf("%w: companyIdentifier is required for COMPANY", ErrInvalidInput)
		}
		client.CompanyIdentifier = &identifier
	default:
		return nil, fmt.Errorf("%w: unknown client type %q", ErrInvalidInput, input.Type)
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Get returns nil without error when the client does not exist.
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return client, nil
}

// Update applies name, phone and email onto an existing client. The
// variant fields are not touched here.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*model.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	client.Name = input.Name
	client.Phone = input.Phone
	client.Email = input.Email

	if err := s.clients.Save(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete end-dates the client's open contracts, persists them, then
// removes the client row. Contracts are never deleted, only closed.
// The two steps are not one transaction: a failed client delete leaves
// the contracts end-dated.
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) ([]model.Contract, error) {
	now := s.now()
	today := dateOnly(now)

	contracts, err := s.contracts.ListOpenByClient(ctx, id, today)
	if err != nil {
		return nil, err
	}

	for i := range contracts {
		end := today
		contracts[i].EndDate = &end
		contracts[i].UpdateDate = now
	}
	if err := s.contracts.SaveAll(ctx, contracts); err != nil {
		return nil, err
	}

	affected, err := s.clients.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return contracts, nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
