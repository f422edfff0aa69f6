package contacts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrFileNotFound = errors.New("contact file not found")
	ErrParse        = errors.New("contact file parse failed")
)

// Contact is one spreadsheet row. Name and Phone are derived with a fixed
// fallback precedence; every original column is kept in Fields for display.
type Contact struct {
	ID     int               `json:"id"`
	Name   string            `json:"name"`
	Phone  string            `json:"phone"`
	Fields map[string]string `json:"fields"`
}

var (
	nameColumns  = []string{"Name", "name"}
	phoneColumns = []string{"Phone", "phone", "Mobile", "mobile"}
)

// Load parses a server-local contact file into an ordered contact list.
// XLSX files are read from sheet index 0; anything else is treated as
// header-driven CSV. Row order is preserved and ids are 1-based row numbers.
func Load(path string) ([]Contact, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	if isSpreadsheet(path, f) {
		return loadXLSX(f)
	}
	return loadCSV(f)
}

// isSpreadsheet sniffs the zip magic bytes so mislabeled uploads still parse;
// the extension is only a fallback for empty files.
func isSpreadsheet(path string, f *os.File) bool {
	var magic [4]byte
	n, _ := f.ReadAt(magic[:], 0)
	if n == 4 && magic[0] == 'P' && magic[1] == 'K' {
		return true
	}
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func loadCSV(r io.Reader) ([]Contact, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []Contact{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	for i := range headers {
		headers[i] = strings.TrimPrefix(strings.TrimSpace(headers[i]), "\ufeff")
	}

	var out []Contact
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		out = append(out, fromRow(headers, rec, len(out)+1))
	}
	return out, nil
}

func loadXLSX(r io.Reader) ([]Contact, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrParse)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(rows) == 0 {
		return []Contact{}, nil
	}

	headers := rows[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	var out []Contact
	for _, rec := range rows[1:] {
		out = append(out, fromRow(headers, rec, len(out)+1))
	}
	return out, nil
}

func fromRow(headers, rec []string, id int) Contact {
	fields := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}
		if i < len(rec) {
			fields[h] = strings.TrimSpace(rec[i])
		} else {
			fields[h] = ""
		}
	}
	return Contact{
		ID:     id,
		Name:   firstNonEmpty(fields, nameColumns),
		Phone:  firstNonEmpty(fields, phoneColumns),
		Fields: fields,
	}
}

func firstNonEmpty(fields map[string]string, keys []string) string {
	for _, k := range keys {
		if v := fields[k]; v != "" {
			return v
		}
	}
	return ""
}
