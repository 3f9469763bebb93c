package leadcsv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/leadmail/internal/entity"
)

func TestFormatEmails(t *testing.T) {
	out := FormatEmails([]entity.GeneratedEmail{
		{RecipientName: "Jane", RecipientCompany: "XYZ", Subject: `Say "hi"`, Body: "Hello"},
	})

	assert.Equal(t,
		"Recipient Name,Recipient Company,Subject,Body\n"+`"Jane","XYZ","Say ""hi""","Hello"`,
		string(out))
}

func TestExportRoundTrip(t *testing.T) {
	emails := []entity.GeneratedEmail{
		{
			ID:               1,
			RecipientName:    "Smith, Jane",
			RecipientCompany: `The "Best" Co`,
			Subject:          "Growth, faster",
			Body:             "Dear Jane,\n\nWe \"really\" think so.\n\nBest,\nBob",
			CreatedAt:        time.Now(),
		},
		{
			ID:               2,
			RecipientName:    "Michael",
			RecipientCompany: "ABC Inc",
			Subject:          "",
			Body:             "one line",
		},
		{
			ID:               3,
			RecipientName:    "Sam",
			RecipientCompany: "Windows Shop",
			Subject:          `"Quoted" subject`,
			Body:             "Hi Sam,\r\n\r\nSee you soon.\r\n",
		},
	}

	table, err := Parse(FormatEmails(emails))
	require.NoError(t, err)
	require.Len(t, table, len(emails)+1)
	assert.Equal(t, exportHeader, table.Header())

	for i, e := range emails {
		assert.Equal(t, []string{e.RecipientName, e.RecipientCompany, e.Subject, e.Body}, table[i+1])
	}
}

func TestSampleCSVMapsToLeads(t *testing.T) {
	table, err := Parse(SampleCSV())
	require.NoError(t, err)

	leads, err := MapLeads(table)
	require.NoError(t, err)
	require.Len(t, leads, 3)
	assert.Equal(t, entity.Lead{Name: "Jane Smith", Company: "XYZ Corp", Product: "Software Development"}, leads[0])
}
