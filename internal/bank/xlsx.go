package bank

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxHeader is the first row of an exported sheet; import skips it.
var xlsxHeader = []any{"Text", "Answer", "Subjects", "Difficulty", "Year"}

// subjectSeparator joins multiple subjects inside one cell.
const subjectSeparator = ";"

// ReadXLSX parses questions from the first sheet of a workbook.
// The first row is treated as a header. Rows that cannot be parsed or fail
// validation are returned as *RowError and skipped.
func ReadXLSX(path string) ([]Question, []*RowError, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}

	var (
		questions []Question
		rowErrs   []*RowError
	)
	for i, row := range rows {
		if i == 0 || blankRow(row) {
			continue
		}
		q, err := parseRow(row)
		if err == nil {
			q = q.Normalize()
			err = q.Validate()
		}
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Row: i + 1, Err: err})
			continue
		}
		questions = append(questions, q)
	}
	return questions, rowErrs, nil
}

func parseRow(row []string) (Question, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	diff, ok := ParseDifficulty(cell(3))
	if !ok {
		return Question{}, &ValidationError{Field: "difficulty", Message: fmt.Sprintf("unknown difficulty %q", cell(3))}
	}
	year, err := strconv.Atoi(cell(4))
	if err != nil {
		return Question{}, &ValidationError{Field: "year", Message: fmt.Sprintf("not a number: %q", cell(4))}
	}

	return Question{
		Text:       cell(0),
		Answer:     cell(1),
		Subjects:   strings.Split(cell(2), subjectSeparator),
		Difficulty: diff,
		Year:       year,
	}, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ExportXLSX writes questions to a new workbook at path, one row each.
func ExportXLSX(path string, questions []Question) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, q := range questions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{q.Text, q.Answer, strings.Join(q.Subjects, subjectSeparator), string(q.Difficulty), q.Year}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// ImportXLSX reads a workbook and adds every valid row to the bank.
// Returns the number of questions added and the rows that were skipped.
func (s *Store) ImportXLSX(path string) (int, []*RowError, error) {
	questions, rowErrs, err := ReadXLSX(path)
	if err != nil {
		return 0, nil, err
	}
	added := 0
	for _, q := range questions {
		if err := s.Add(q); err != nil {
			return added, rowErrs, fmt.Errorf("add imported question: %w", err)
		}
		added++
	}
	return added, rowErrs, nil
}
