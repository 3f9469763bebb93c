package usecase

import "github.com/xavierca1/leadmail/internal/infra/leadcsv"

// PreviewRows is how many data rows ParseLeads returns for the preview table.
const PreviewRows = 5

// ParseLeads parses uploaded CSV text, checks its columns and maps every
// usable row to a lead.
func ParseLeads(input ParseLeadsInput) (*ParseLeadsOutput, error) {
	table, err := leadcsv.ParseString(input.CSV)
	if err != nil {
		return nil, invalidCSV(err)
	}
	if err := leadcsv.ValidateTable(table); err != nil {
		return nil, invalidCSV(err)
	}

	leads, err := leadcsv.MapLeads(table)
	if err != nil {
		return nil, invalidCSV(err)
	}

	return &ParseLeadsOutput{
		Headers:   table.Header(),
		Preview:   table.Preview(PreviewRows),
		Leads:     leads,
		TotalRows: len(table.Rows()),
	}, nil
}

func invalidCSV(err error) *DomainError {
	return &DomainError{Code: CodeInvalidCSV, Message: err.Error(), Err: err}
}
