package leadcsv

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Table
	}{
		{
			name:  "quoted comma and doubled quote",
			input: `"a,b","c""d",e`,
			want:  Table{{"a,b", `c"d`, "e"}},
		},
		{
			name:  "crlf line endings",
			input: "Name,Company Name\r\nJane,XYZ\r\n",
			want:  Table{{"Name", "Company Name"}, {"Jane", "XYZ"}},
		},
		{
			name:  "blank and whitespace lines are skipped",
			input: "Name,Company Name\n\n   \nJane,XYZ\n\n",
			want:  Table{{"Name", "Company Name"}, {"Jane", "XYZ"}},
		},
		{
			name:  "line break inside quotes",
			input: "Subject,Body\n\"Hi\",\"line one\nline two\"\n",
			want:  Table{{"Subject", "Body"}, {"Hi", "line one\nline two"}},
		},
		{
			name:  "rows may be shorter than the header",
			input: "a,b,c\n1\n1,2,3,4",
			want:  Table{{"a", "b", "c"}, {"1"}, {"1", "2", "3", "4"}},
		},
		{
			name:  "empty cells are kept",
			input: ",,",
			want:  Table{{"", "", ""}},
		},
		{
			name:  "utf-8 byte order mark is dropped",
			input: "\xef\xbb\xbfName,Company Name\nJane,XYZ",
			want:  Table{{"Name", "Company Name"}, {"Jane", "XYZ"}},
		},
		{
			name:  "crlf inside quotes is kept",
			input: "Subject,Body\r\n\"Hi\",\"line one\r\nline two\"\r\n",
			want:  Table{{"Subject", "Body"}, {"Hi", "line one\r\nline two"}},
		},
		{
			name:  "quotes inside an unquoted cell toggle quoting",
			input: "Name,Company Name\nJane \"JJ\" Doe,Acme\nBob,Beta\n",
			want:  Table{{"Name", "Company Name"}, {"Jane JJ Doe", "Acme"}, {"Bob", "Beta"}},
		},
		{
			name:  "text after a closing quote joins the cell",
			input: "Name,Company Name\n\"Jane\" Doe,Acme\n",
			want:  Table{{"Name", "Company Name"}, {"Jane Doe", "Acme"}},
		},
		{
			name:  "quoted section hides a comma mid-cell",
			input: `Smith "and, sons",Acme`,
			want:  Table{{"Smith and, sons", "Acme"}},
		},
		{
			name:  "empty quoted cells",
			input: `"",x,""`,
			want:  Table{{"", "x", ""}},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseUnterminatedQuoteFails(t *testing.T) {
	_, err := ParseString("Name,Company Name\n\"Jane,XYZ\nBob,ABC\n")
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseUnterminatedQuoteReportsOpeningLine(t *testing.T) {
	_, err := ParseString("Name,Company Name\nJane,XYZ\nBob \"B,ABC\nAl,DEF\n")

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
}

func TestTablePreview(t *testing.T) {
	table := Table{{"h"}, {"1"}, {"2"}, {"3"}}

	assert.Equal(t, Table{{"h"}, {"1"}, {"2"}}, table.Preview(2))
	assert.Equal(t, table, table.Preview(10))
	assert.Equal(t, Table{}, Table(nil).Preview(5))
}
