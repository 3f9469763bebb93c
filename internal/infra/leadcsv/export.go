package leadcsv

import (
	"bytes"
	"io"
	"strings"

	"github.com/xavierca1/leadmail/internal/entity"
)

var exportHeader = []string{"Recipient Name", "Recipient Company", "Subject", "Body"}

var sampleHeader = []string{"Name", "Company Name", "Product Description"}

var sampleRows = [][]string{
	{"Jane Smith", "XYZ Corp", "Software Development"},
	{"Michael Johnson", "ABC Inc", "Digital Marketing"},
	{"Sarah Williams", "Acme Co", "Cloud Solutions"},
}

// WriteEmails writes the review export. The header is bare, every value is
// quoted with inner quotes doubled, and rows are separated by a single \n.
func WriteEmails(w io.Writer, emails []entity.GeneratedEmail) error {
	rows := make([][]string, 0, len(emails))
	for _, e := range emails {
		rows = append(rows, []string{e.RecipientName, e.RecipientCompany, e.Subject, e.Body})
	}
	_, err := io.WriteString(w, format(exportHeader, rows))
	return err
}

// FormatEmails is WriteEmails into a byte slice.
func FormatEmails(emails []entity.GeneratedEmail) []byte {
	var buf bytes.Buffer
	_ = WriteEmails(&buf, emails)
	return buf.Bytes()
}

// SampleCSV is the template offered for download on the upload step.
func SampleCSV() []byte {
	return []byte(format(sampleHeader, sampleRows))
}

func format(header []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = quote(cell)
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
