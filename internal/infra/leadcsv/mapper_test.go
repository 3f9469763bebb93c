package leadcsv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadmail/internal/entity"
)

func TestMapLeads(t *testing.T) {
	table, err := ParseString(" Product Description ,COMPANY NAME,name\n" +
		"Cloud,Acme Co,Sarah Williams\n" +
		"short,row\n" +
		",XYZ Corp,Jane Smith\n")
	require.NoError(t, err)

	leads, err := MapLeads(table)
	require.NoError(t, err)

	assert.Equal(t, []entity.Lead{
		{Name: "Sarah Williams", Company: "Acme Co", Product: "Cloud"},
		{Name: "Jane Smith", Company: "XYZ Corp"},
	}, leads)
}

func TestMapLeadsWithoutProductColumn(t *testing.T) {
	table := Table{{"Name", "Company Name"}, {"jane", "xyz"}}

	leads, err := MapLeads(table)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "jane", leads[0].Name)
	assert.False(t, leads[0].HasProduct())
}

func TestMapLeadsKeepsRowOrderAndSkipsShortRows(t *testing.T) {
	table := Table{
		{"Email", "Name", "Company Name"},
		{"a@x.io", "A", "Alpha"},
		{"b@x.io", "B"},
		{"c@x.io", "C", "Gamma"},
		{"d@x.io"},
		{"e@x.io", "E", "Epsilon", "extra"},
	}

	leads, err := MapLeads(table)
	require.NoError(t, err)

	var names []string
	for _, l := range leads {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"A", "C", "E"}, names)
}

func TestMapLeadsProductCellBeyondRowIsEmpty(t *testing.T) {
	table := Table{{"Name", "Company Name", "Product Description"}, {"A", "Alpha"}}

	leads, err := MapLeads(table)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Empty(t, leads[0].Product)
}

func TestMapLeadsMissingColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		column string
	}{
		{"no name", []string{"Full Name", "Company Name"}, "Name"},
		{"no company", []string{"Name", "Company"}, "Company Name"},
		{"neither", []string{"foo"}, "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MapLeads(Table{tt.header, {"x", "y"}})

			var missing *MissingColumnError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.column, missing.Column)
			assert.Contains(t, err.Error(), tt.column)
		})
	}
}

func TestValidateTable(t *testing.T) {
	assert.ErrorIs(t, ValidateTable(nil), ErrNoDataRows)
	assert.ErrorIs(t, ValidateTable(Table{{"Name", "Company Name"}}), ErrNoDataRows)
	assert.NoError(t, ValidateTable(Table{{"Name", "Company Name"}, {"a", "b"}}))

	err := ValidateTable(Table{{"Name"}, {"a"}})
	assert.EqualError(t, err, `CSV must contain a "Company Name" column`)
}
