package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"kimoncrm-survey/internal/aggregator"
)

// LedgerHeader 台账导出表头
var LedgerHeader = []string{
	"Item ID",
	"Kind",
	"Name",
	"Category",
	"Quantity",
	"Unit Price",
	"Margin %",
	"Total Price",
}

// SkippedHeader 跳过引用报告表头
var SkippedHeader = []string{
	"Item ID",
	"Kind",
	"Reason",
}

// GenerateLedgerWorkbook 把聚合台账渲染为 xlsx 工作簿。
// 第一个工作表是台账，skipped 非空时附一张报告表。
// 文档的最终排版由外部渲染器负责，这里只做结构化导出。
func GenerateLedgerWorkbook(title string, result aggregator.Result) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	index, err := f.NewSheet(title)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeHeader(f, title, LedgerHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	columnWidths := []float64{25, 10, 30, 20, 10, 12, 10, 14}
	for i := range LedgerHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(title, col, col, columnWidths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for rowIdx, item := range result.LineItems {
		row := rowIdx + 2 // 第1行是表头
		values := []any{
			item.SourceID,
			string(item.Kind),
			item.Name,
			item.Category,
			item.Quantity,
			item.UnitPrice,
			item.Margin,
			item.TotalPrice,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(title, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if len(result.Skipped) > 0 {
		sheetName := "Skipped"
		if _, err := f.NewSheet(sheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create skipped sheet: %w", err)
		}
		if err := writeHeader(f, sheetName, SkippedHeader, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
		for rowIdx, sk := range result.Skipped {
			row := rowIdx + 2
			values := []any{sk.SourceID, string(sk.Kind), sk.Reason}
			for col, value := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					f.Close()
					return nil, fmt.Errorf("failed to convert coordinates: %w", err)
				}
				if err := f.SetCellValue(sheetName, cell, value); err != nil {
					f.Close()
					return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File, sheetName string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}
	return nil
}
