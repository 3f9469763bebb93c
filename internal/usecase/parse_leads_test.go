package usecase

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadmail/internal/entity"
	"github.com/xavierca1/leadmail/internal/infra/leadcsv"
)

func TestParseLeads(t *testing.T) {
	csv := "Name,Company Name,Product Description\n" +
		"Jane Smith,XYZ Corp,Software Development\n" +
		"\n" +
		"Michael Johnson,\"ABC, Inc\",\n" +
		"a,b\n" +
		"c,d\n" +
		"e,f\n" +
		"g,h\n"

	out, err := ParseLeads(ParseLeadsInput{CSV: csv})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Company Name", "Product Description"}, out.Headers)
	assert.Equal(t, 6, out.TotalRows)
	assert.Len(t, out.Preview, 1+PreviewRows)

	want := []entity.Lead{
		{Name: "Jane Smith", Company: "XYZ Corp", Product: "Software Development"},
		{Name: "Michael Johnson", Company: "ABC, Inc"},
		{Name: "a", Company: "b"},
		{Name: "c", Company: "d"},
		{Name: "e", Company: "f"},
		{Name: "g", Company: "h"},
	}
	if diff := cmp.Diff(want, out.Leads); diff != "" {
		t.Errorf("leads mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLeadsErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		is   func(error) bool
	}{
		{"header only", "Name,Company Name\n", func(err error) bool { return errors.Is(err, leadcsv.ErrNoDataRows) }},
		{"empty", "", func(err error) bool { return errors.Is(err, leadcsv.ErrNoDataRows) }},
		{"missing company", "Name,Email\nJane,j@x.io", func(err error) bool {
			var mc *leadcsv.MissingColumnError
			return errors.As(err, &mc) && mc.Column == "Company Name"
		}},
		{"unterminated quote", "Name,Company Name\n\"Jane,XYZ\n", func(err error) bool {
			var pe *leadcsv.ParseError
			return errors.As(err, &pe)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLeads(ParseLeadsInput{CSV: tt.csv})
			require.Error(t, err)
			assert.Equal(t, CodeInvalidCSV, ErrorCode(err))
			assert.True(t, tt.is(err), err.Error())
		})
	}
}
