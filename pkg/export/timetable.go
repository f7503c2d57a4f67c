package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Timetable is a render-ready lesson table produced by the schedule read
// pipeline. Rows are expected pre-sorted by (date, slot number).
type Timetable struct {
	Title string
	Rows  []TimetableRow
}

// TimetableRow is one lesson line of an exported timetable.
type TimetableRow struct {
	Date     string
	Weekday  string
	Slot     string
	Time     string
	Subject  string
	Teacher  string
	Room     string
	Subgroup string
}

var timetableColumns = []string{"Date", "Day", "Lesson", "Time", "Subject", "Teacher", "Room", "Subgroup"}

func (r TimetableRow) values() []string {
	return []string{r.Date, r.Weekday, r.Slot, r.Time, r.Subject, r.Teacher, r.Room, r.Subgroup}
}

// CSV renders the timetable as CSV bytes.
func CSV(t Timetable) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(timetableColumns); err != nil {
		return nil, fmt.Errorf("write timetable headers: %w", err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row.values()); err != nil {
			return nil, fmt.Errorf("write timetable row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush timetable csv: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders the timetable as a printable A4 landscape table.
func PDF(t Timetable) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if t.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, t.Title, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	widths := []float64{28, 24, 18, 32, 52, 52, 22, 49}

	pdf.SetFont("Arial", "B", 10)
	for i, col := range timetableColumns {
		pdf.CellFormat(widths[i], 8, col, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range t.Rows {
		for i, value := range row.values() {
			pdf.CellFormat(widths[i], 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render timetable pdf: %w", err)
	}
	return buf.Bytes(), nil
}
