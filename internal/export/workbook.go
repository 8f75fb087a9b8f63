package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single worksheet in an exported workbook.
const SheetName = "Cash Flow Analysis"

const (
	numFmtThousands = 3 // #,##0
	descWidth       = 40
	valueWidth      = 15
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// workbook tracks the write position and caches styles while a Table is written.
type workbook struct {
	f      *excelize.File
	row    int
	last   string
	styles map[string]int
}

// WriteWorkbook renders t as an xlsx workbook to w.
func WriteWorkbook(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	last, err := excelize.ColumnNumberToName(t.Columns())
	if err != nil {
		return fmt.Errorf("failed to resolve last column: %w", err)
	}

	wb := &workbook{f: f, row: 1, last: last, styles: make(map[string]int)}
	if err := wb.write(t); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (wb *workbook) write(t Table) error {
	if err := wb.banner(t.Title, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F77B4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return err
	}
	if err := wb.banner(t.Info, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: "666666"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return err
	}
	if err := wb.banner(t.Generated, &excelize.Style{
		Font:      &excelize.Font{Size: 10, Color: "999999"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return err
	}
	wb.row++

	headerStyle, err := wb.style("header", &excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"ECF0F1"}},
		Border: thinBorder,
	})
	if err != nil {
		return err
	}
	for i, h := range t.Header {
		if err := wb.set(i+1, h, headerStyle); err != nil {
			return err
		}
	}
	wb.row++

	for _, s := range t.Sections {
		if err := wb.section(s); err != nil {
			return err
		}
	}

	return wb.widths(t.Columns())
}

// banner writes text into a row merged across the full table width.
func (wb *workbook) banner(text string, style *excelize.Style) error {
	first := fmt.Sprintf("A%d", wb.row)
	if err := wb.f.MergeCell(SheetName, first, fmt.Sprintf("%s%d", wb.last, wb.row)); err != nil {
		return fmt.Errorf("failed to merge row %d: %w", wb.row, err)
	}
	id, err := wb.f.NewStyle(style)
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := wb.set(1, text, id); err != nil {
		return err
	}
	wb.row++
	return nil
}

func (wb *workbook) section(s Section) error {
	if err := wb.banner(s.Title, &excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.Fill}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return err
	}

	for _, r := range s.Rows {
		labelStyle, err := wb.cellStyle(r.Bold, false, false)
		if err != nil {
			return err
		}
		if err := wb.set(1, r.Label, labelStyle); err != nil {
			return err
		}

		for i, c := range r.Cells {
			style, err := wb.cellStyle(r.Bold, c.Kind == CellNumber, r.Precise)
			if err != nil {
				return err
			}
			var v any
			switch c.Kind {
			case CellNumber:
				v = c.Number
			case CellText:
				v = c.Text
			default:
				v = ""
			}
			if err := wb.set(i+2, v, style); err != nil {
				return err
			}
		}
		wb.row++
	}

	wb.row++
	return nil
}

// cellStyle returns the bordered body style for a combination of flags.
func (wb *workbook) cellStyle(bold, number, precise bool) (int, error) {
	key := fmt.Sprintf("cell-%t-%t-%t", bold, number, precise)
	style := &excelize.Style{Border: thinBorder}
	if bold {
		style.Font = &excelize.Font{Bold: true}
	}
	if number {
		if precise {
			format := "0.0000"
			style.CustomNumFmt = &format
		} else {
			style.NumFmt = numFmtThousands
		}
	}
	return wb.style(key, style)
}

func (wb *workbook) style(key string, style *excelize.Style) (int, error) {
	if id, ok := wb.styles[key]; ok {
		return id, nil
	}
	id, err := wb.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("failed to create style %s: %w", key, err)
	}
	wb.styles[key] = id
	return id, nil
}

func (wb *workbook) set(col int, value any, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, wb.row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := wb.f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", cell, err)
	}
	if err := wb.f.SetCellStyle(SheetName, cell, cell, style); err != nil {
		return fmt.Errorf("failed to style %s: %w", cell, err)
	}
	return nil
}

func (wb *workbook) widths(columns int) error {
	if err := wb.f.SetColWidth(SheetName, "A", "A", descWidth); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if columns < 2 {
		return nil
	}
	if err := wb.f.SetColWidth(SheetName, "B", wb.last, valueWidth); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}
