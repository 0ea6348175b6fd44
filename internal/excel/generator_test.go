package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vaudoise/clients-contracts/internal/model"
)

func TestGenerateStatement(t *testing.T) {
	end := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	statement := model.ContractStatement{
		Client: model.Client{
			ID:         uuid.New(),
			ClientType: model.ClientTypePerson,
			Name:       "A",
			Phone:      "1",
			Email:      "a@x.com",
		},
		Contracts: []model.Contract{
			{
				ID:         uuid.New(),
				StartDate:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				CostAmount: 100,
				UpdateDate: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			},
			{
				ID:         uuid.New(),
				StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
				EndDate:    &end,
				CostAmount: 50.5,
				UpdateDate: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			},
		},
		TotalCost:   150.5,
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	content, err := NewGenerator().Generate(statement)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	name, err := file.GetCellValue("Statement", "B1")
	require.NoError(t, err)
	require.Equal(t, "A", name)

	total, err := file.GetCellValue("Statement", "B7")
	require.NoError(t, err)
	require.Equal(t, "150.50", total)

	firstStart, err := file.GetCellValue("Statement", "B10")
	require.NoError(t, err)
	require.Equal(t, "2026-02-01", firstStart)

	secondEnd, err := file.GetCellValue("Statement", "C11")
	require.NoError(t, err)
	require.Equal(t, "2027-01-01", secondEnd)
}

func TestGenerateStatementNoContracts(t *testing.T) {
	statement := model.ContractStatement{
		Client:      model.Client{ID: uuid.New(), ClientType: model.ClientTypeCompany, Name: "Acme"},
		GeneratedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}

	content, err := NewGenerator().Generate(statement)
	require.NoError(t, err)
	require.NotEmpty(t, content)
}
