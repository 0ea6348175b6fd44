package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vaudoise/clients-contracts/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepository) Create(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

func (r *ContractRepository) Save(ctx context.Context, contract *model.Contract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

func (r *ContractRepository) SaveAll(ctx context.Context, contracts []model.Contract) error {
	if len(contracts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&contracts).Error
}

// ListOpenByClient returns the client's contracts that are open as of
// the given date: end_date missing or strictly after it.
func (r *ContractRepository) ListOpenByClient(ctx context.Context, clientID uuid.UUID, asOf time.Time) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND (end_date IS NULL OR end_date > ?)", clientID, asOf).
		Order("start_date ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ListUpdatedAfter returns the client's contracts whose audit timestamp
// is strictly after the given instant, regardless of end date.
func (r *ContractRepository) ListUpdatedAfter(ctx context.Context, clientID uuid.UUID, after time.Time) ([]model.Contract, error) {
	var contracts []model.Contract
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND update_date > ?", clientID, after).
		Order("update_date ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}
