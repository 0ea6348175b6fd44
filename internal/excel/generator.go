package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vaudoise/clients-contracts/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(statement model.ContractStatement) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Statement"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Client")
	set("B1", statement.Client.Name)
	set("A2", "Type")
	set("B2", string(statement.Client.ClientType))
	set("A3", "Email")
	set("B3", statement.Client.Email)
	set("A4", "Phone")
	set("B4", statement.Client.Phone)
	set("A5", "Generated")
	set("B5", formatDateTime(statement.GeneratedAt))
	set("A6", "Active contracts")
	set("B6", len(statement.Contracts))
	set("A7", "Total cost")
	set("B7", formatAmount(statement.TotalCost))

	tableRow := 9
	headers := []string{"Contract ID", "Start date", "End date", "Cost", "Last update"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, contract := range statement.Contracts {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), contract.ID.String())
		set(fmt.Sprintf("B%d", row), formatDate(contract.StartDate))
		set(fmt.Sprintf("C%d", row), formatDatePtr(contract.EndDate))
		set(fmt.Sprintf("D%d", row), formatAmount(contract.CostAmount))
		set(fmt.Sprintf("E%d", row), formatDateTime(contract.UpdateDate))
	}

	_ = file.SetColWidth(sheet, "A", "A", 38)
	_ = file.SetColWidth(sheet, "B", "C", 14)
	_ = file.SetColWidth(sheet, "D", "D", 14)
	_ = file.SetColWidth(sheet, "E", "E", 20)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
