package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/vaudoise/clients-contracts/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

func (g *Generator) Generate(statement model.ContractStatement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Contract statement", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated on %s", formatDateTime(statement.GeneratedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	addClientBlock(pdf, g.fontName, statement.Client)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Active contracts", "", 1, "L", false, 0, "")

	headers := []string{"Contract", "Start date", "End date", "Cost", "Last update"}
	colWidths := []float64{58, 28, 28, 28, 38}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	for _, contract := range statement.Contracts {
		row := []string{
			shortID(contract.ID.String()),
			formatDate(contract.StartDate),
			formatDatePtr(contract.EndDate),
			formatAmount(contract.CostAmount),
			formatDateTime(contract.UpdateDate),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total cost of active contracts: %s", formatAmount(statement.TotalCost)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addClientBlock(pdf *gofpdf.Fpdf, fontName string, client model.Client) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(0, 6, "Client", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		safeValue(client.Name),
		fmt.Sprintf("Type: %s", client.ClientType),
		fmt.Sprintf("Email: %s", safeValue(client.Email)),
		fmt.Sprintf("Phone: %s", safeValue(client.Phone)),
	}
	if client.CompanyIdentifier != nil {
		lines = append(lines, fmt.Sprintf("Company identifier: %s", *client.CompanyIdentifier))
	}
	if client.BirthDate != nil {
		lines = append(lines, fmt.Sprintf("Birth date: %s", formatDate(*client.BirthDate)))
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == 3 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func shortID(id string) string {
	if len(id) > 13 {
		return id[:13]
	}
	return id
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}
