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

type ExcelGenerator interface {
	Generate(statement model.ContractStatement) ([]byte, error)
}

type PDFGenerator interface {
	Generate(statement model.ContractStatement) ([]byte, error)
}

type ContractService struct {
	contracts *repository.ContractRepository
	clients   *repository.ClientRepository
	excel     ExcelGenerator
	pdf       PDFGenerator
	now       func() time.Time
}

func NewContractService(
	contracts *repository.ContractRepository,
	clients *repository.ClientRepository,
	excel ExcelGenerator,
	pdf PDFGenerator,
) *ContractService {
	return &ContractService{
		contracts: contracts,
		clients:   clients,
		excel:     excel,
		pdf:       pdf,
		now:       time.Now,
	}
}

type CreateContractInput struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CostAmount float64
}

type StatementResult struct {
	FileName string
	Content  []byte
}

// Create attaches a new contract to an existing client. A missing
// start date defaults to today.
func (s *ContractService) Create(ctx context.Context, clientID uuid.UUID, input CreateContractInput) (*model.Contract, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	now := s.now()
	contract := &model.Contract{
		ID:         uuid.New(),
		ClientID:   clientID,
		StartDate:  dateOnly(now),
		CostAmount: input.CostAmount,
		UpdateDate: now,
	}
	if input.StartDate != nil && !input.StartDate.IsZero() {
		contract.StartDate = dateOnly(*input.StartDate)
	}
	if input.EndDate != nil && !input.EndDate.IsZero() {
		end := dateOnly(*input.EndDate)
		contract.EndDate = &end
	}

	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// UpdateCost sets a new cost amount and advances the audit timestamp.
func (s *ContractService) UpdateCost(ctx context.Context, contractID uuid.UUID, newCost float64) (*model.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	contract.CostAmount = newCost
	contract.UpdateDate = s.now()

	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// ActiveContracts returns the client's contracts whose end date is
// missing or strictly after today. Activity is computed from dates at
// query time, never stored.
func (s *ContractService) ActiveContracts(ctx context.Context, clientID uuid.UUID) ([]model.Contract, error) {
	return s.contracts.ListOpenByClient(ctx, clientID, dateOnly(s.now()))
}

// ActiveContractsUpdatedAfter filters on the audit timestamp only.
// Despite the sibling method's name it does not look at end dates;
// this mirrors the reference behavior and is kept as-is.
func (s *ContractService) ActiveContractsUpdatedAfter(ctx context.Context, clientID uuid.UUID, since time.Time) ([]model.Contract, error) {
	return s.contracts.ListUpdatedAfter(ctx, clientID, dateOnly(since))
}

// ActiveContractsTotal sums cost over contracts whose audit timestamp
// is after the start of the current day, i.e. contracts touched today
// or later. Same recency filter as ActiveContractsUpdatedAfter with
// today's date; end dates are ignored here too (reference behavior).
func (s *ContractService) ActiveContractsTotal(ctx context.Context, clientID uuid.UUID) (float64, error) {
	contracts, err := s.contracts.ListUpdatedAfter(ctx, clientID, dateOnly(s.now()))
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, contract := range contracts {
		total += contract.CostAmount
	}
	return total, nil
}

func (s *ContractService) ExportStatement(ctx context.Context, clientID uuid.UUID) (*StatementResult, error) {
	statement, err := s.buildStatement(ctx, clientID)
	if err != nil {
		return nil, err
	}

	content, err := s.excel.Generate(*statement)
	if err != nil {
		return nil, err
	}
	return &StatementResult{
		FileName: s.buildFileName(*statement, "xlsx"),
		Content:  content,
	}, nil
}

func (s *ContractService) ExportStatementPDF(ctx context.Context, clientID uuid.UUID) (*StatementResult, error) {
	statement, err := s.buildStatement(ctx, clientID)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(*statement)
	if err != nil {
		return nil, err
	}
	return &StatementResult{
		FileName: s.buildFileName(*statement, "pdf"),
		Content:  content,
	}, nil
}

func (s *ContractService) buildStatement(ctx context.Context, clientID uuid.UUID) (*model.ContractStatement, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	now := s.now()
	contracts, err := s.contracts.ListOpenByClient(ctx, clientID, dateOnly(now))
	if err != nil {
		return nil, err
	}

	total := 0.0
	for _, contract := range contracts {
		total += contract.CostAmount
	}

	return &model.ContractStatement{
		Client:      *client,
		Contracts:   contracts,
		TotalCost:   total,
		GeneratedAt: now,
	}, nil
}

func (s *ContractService) buildFileName(statement model.ContractStatement, extension string) string {
	name := sanitizeFileName(statement.Client.Name)
	if name == "" {
		name = statement.Client.ID.String()
	}
	return fmt.Sprintf("contracts-%s-%s.%s", name, statement.GeneratedAt.Format("20060102"), extension)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
