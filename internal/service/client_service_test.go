package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vaudoise/clients-contracts/internal/excel"
	"github.com/vaudoise/clients-contracts/internal/model"
	"github.com/vaudoise/clients-contracts/internal/pdf"
	"github.com/vaudoise/clients-contracts/internal/repository"
)

var fixedNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	clients      *ClientService
	contracts    *ContractService
	clientRepo   *repository.ClientRepository
	contractRepo *repository.ContractRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.Client{}, &model.Contract{}))

	clientRepo := repository.NewClientRepository(db)
	contractRepo := repository.NewContractRepository(db)

	clients := NewClientService(clientRepo, contractRepo)
	clients.now = func() time.Time { return fixedNow }

	contracts := NewContractService(contractRepo, clientRepo, excel.NewGenerator(), pdf.NewGenerator())
	contracts.now = func() time.Time { return fixedNow }

	return &testEnv{
		clients:      clients,
		contracts:    contracts,
		clientRepo:   clientRepo,
		contractRepo: contractRepo,
	}
}

func TestCreatePersonRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	birth := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	created, err := env.clients.Create(ctx, CreateClientInput{
		Type:      model.ClientTypePerson,
		Name:      "A",
		Phone:     "1",
		Email:     "a@x.com",
		BirthDate: &birth,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	fetched, err := env.clients.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	require.Equal(t, "A", fetched.Name)
	require.Equal(t, "1", fetched.Phone)
	require.Equal(t, "a@x.com", fetched.Email)
	require.Equal(t, model.ClientTypePerson, fetched.ClientType)
	require.NotNil(t, fetched.BirthDate)
	require.Nil(t, fetched.CompanyIdentifier)
}

func TestCreateCompanyRequiresIdentifier(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clients.Create(context.Background(), CreateClientInput{
		Type:  model.ClientTypeCompany,
		Name:  "Acme",
		Email: "acme@x.com",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	created, err := env.clients.Create(context.Background(), CreateClientInput{
		Type:              model.ClientTypeCompany,
		Name:              "Acme",
		CompanyIdentifier: "CHE-123",
	})
	require.NoError(t, err)
	require.NotNil(t, created.CompanyIdentifier)
	require.Equal(t, "CHE-123", *created.CompanyIdentifier)
}

func TestCreateUnknownVariantRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clients.Create(context.Background(), CreateClientInput{
		Type: model.ClientType("ALIEN"),
		Name: "A",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMissingClientIsNotAnError(t *testing.T) {
	env := newTestEnv(t)

	client, err := env.clients.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, client)
}

func TestUpdateClientTouchesSharedFieldsOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	birth := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	created, err := env.clients.Create(ctx, CreateClientInput{
		Type:      model.ClientTypePerson,
		Name:      "A",
		Phone:     "1",
		Email:     "a@x.com",
		BirthDate: &birth,
	})
	require.NoError(t, err)

	updated, err := env.clients.Update(ctx, created.ID, UpdateClientInput{
		Name:  "B",
		Phone: "2",
		Email: "b@x.com",
	})
	require.NoError(t, err)
	require.Equal(t, "B", updated.Name)
	require.Equal(t, "2", updated.Phone)
	require.Equal(t, "b@x.com", updated.Email)
	require.NotNil(t, updated.BirthDate)
	require.Equal(t, model.ClientTypePerson, updated.ClientType)
}

func TestUpdateMissingClient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clients.Update(context.Background(), uuid.New(), UpdateClientInput{Name: "X"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClientEndDatesOpenContracts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	client, err := env.clients.Create(ctx, CreateClientInput{Type: model.ClientTypePerson, Name: "A"})
	require.NoError(t, err)

	_, err = env.contracts.Create(ctx, client.ID, CreateContractInput{CostAmount: 100})
	require.NoError(t, err)
	_, err = env.contracts.Create(ctx, client.ID, CreateContractInput{CostAmount: 50})
	require.NoError(t, err)

	// already closed, must not be touched by the cascade
	past := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	closed := model.Contract{
		ID:         uuid.New(),
		ClientID:   client.ID,
		StartDate:  past,
		EndDate:    &past,
		CostAmount: 10,
		UpdateDate: past,
	}
	require.NoError(t, env.contractRepo.Create(ctx, &closed))

	updated, err := env.clients.Delete(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, updated, 2)

	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	for _, contract := range updated {
		require.NotNil(t, contract.EndDate)
		require.True(t, contract.EndDate.Equal(today))
	}

	remaining, err := env.contractRepo.ListOpenByClient(ctx, client.ID, today)
	require.NoError(t, err)
	require.Empty(t, remaining)

	gone, err := env.clients.Get(ctx, client.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestDeleteMissingClient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clients.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}
