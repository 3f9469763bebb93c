package leadcsv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xavierca1/leadmail/internal/entity"
)

const (
	columnName    = "name"
	columnCompany = "company name"
	columnProduct = "product description"
)

var ErrNoDataRows = errors.New("CSV file must contain a header row and at least one data row")

// MissingColumnError names a required header that was not found.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("CSV must contain a %q column", e.Column)
}

// HeaderIndex holds the positions of the lead columns. Product is -1 when absent.
type HeaderIndex struct {
	Name    int
	Company int
	Product int
}

func (h HeaderIndex) minCells() int {
	return max(h.Name, h.Company) + 1
}

// ValidateHeader matches header cells case-insensitively after trimming.
func ValidateHeader(header []string) (HeaderIndex, error) {
	idx := HeaderIndex{Name: -1, Company: -1, Product: -1}
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case columnName:
			if idx.Name == -1 {
				idx.Name = i
			}
		case columnCompany:
			if idx.Company == -1 {
				idx.Company = i
			}
		case columnProduct:
			if idx.Product == -1 {
				idx.Product = i
			}
		}
	}

	if idx.Name == -1 {
		return idx, &MissingColumnError{Column: "Name"}
	}
	if idx.Company == -1 {
		return idx, &MissingColumnError{Column: "Company Name"}
	}
	return idx, nil
}

// ValidateTable checks the structure the upload step requires: a header with
// the lead columns and at least one data row.
func ValidateTable(t Table) error {
	if len(t) < 2 {
		return ErrNoDataRows
	}
	_, err := ValidateHeader(t.Header())
	return err
}

// MapLeads turns data rows into leads. Rows too short to hold both the name
// and company cells are dropped without error. Values keep their source case.
func MapLeads(t Table) ([]entity.Lead, error) {
	if len(t) == 0 {
		return nil, ErrNoDataRows
	}
	idx, err := ValidateHeader(t.Header())
	if err != nil {
		return nil, err
	}

	leads := make([]entity.Lead, 0, len(t)-1)
	for _, row := range t.Rows() {
		if len(row) < idx.minCells() {
			continue
		}
		lead := entity.Lead{
			Name:    row[idx.Name],
			Company: row[idx.Company],
		}
		if idx.Product != -1 && idx.Product < len(row) {
			lead.Product = row[idx.Product]
		}
		leads = append(leads, lead)
	}
	return leads, nil
}
