package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/adilet/gigpay-ledger/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the best-clients report as a single-sheet workbook.
func (g *Generator) Generate(report model.ClientsReport) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Best Clients"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Period start")
	set("B1", report.PeriodStart.Format("2006-01-02"))
	set("A2", "Period end")
	set("B2", report.PeriodEnd.Format("2006-01-02"))
	set("A3", "Clients")
	set("B3", len(report.Clients))

	tableRow := 5
	set(fmt.Sprintf("A%d", tableRow), "Client")
	set(fmt.Sprintf("B%d", tableRow), "Profile ID")
	set(fmt.Sprintf("C%d", tableRow), "Total paid")

	for i, client := range report.Clients {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), client.FullName)
		set(fmt.Sprintf("B%d", row), client.ID.String())
		paid, _ := client.Paid.Float64()
		set(fmt.Sprintf("C%d", row), paid)
	}

	_ = file.SetColWidth(sheet, "A", "A", 30)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "C", 14)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
