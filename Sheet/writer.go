package Sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

var headers = []string{"Name", "Hours Tracked", "Tracked All Time"}

// Writer writes the compliance report to a single xlsx sheet. Clear starts
// a fresh workbook, so each run fully replaces the previous report.
type Writer struct {
	path      string
	sheetName string
	file      *excelize.File
	nextRow   int
}

// NewWriter creates a writer bound to the given file path and sheet name.
func NewWriter(path, sheetName string) *Writer {
	return &Writer{path: path, sheetName: sheetName}
}

// Clear discards any previous report contents and prepares an empty sheet
// with a styled header row.
func (w *Writer) Clear() error {
	if w.file != nil {
		w.file.Close()
	}

	f := excelize.NewFile()

	index, err := f.NewSheet(w.sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(w.sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(w.sheetName, 1, 1, headerStyle)
	}

	for i := range headers {
		col := string('A' + rune(i))
		f.SetColWidth(w.sheetName, col, col, 20)
	}

	if f.GetSheetName(0) != w.sheetName {
		f.DeleteSheet("Sheet1")
	}

	w.file = f
	w.nextRow = 2
	return nil
}

// AppendRow adds one result row: display name, tracked hours, status.
func (w *Writer) AppendRow(displayName string, hours float64, status string) error {
	if w.file == nil {
		if err := w.Clear(); err != nil {
			return err
		}
	}

	values := []interface{}{displayName, hours, status}
	for i, value := range values {
		cell := fmt.Sprintf("%c%d", 'A'+i, w.nextRow)
		if err := w.file.SetCellValue(w.sheetName, cell, value); err != nil {
			return fmt.Errorf("error setting cell %s: %v", cell, err)
		}
	}

	w.nextRow++
	return nil
}

// Save writes the workbook to disk.
func (w *Writer) Save() error {
	if w.file == nil {
		return fmt.Errorf("nothing to save: sheet was never cleared")
	}
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("error writing report file: %v", err)
	}
	return nil
}
