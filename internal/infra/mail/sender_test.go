package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent  []*gomail.Message
	err   error
	block chan struct{}
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if f.block != nil {
		<-f.block
	}
	f.sent = append(f.sent, m...)
	return f.err
}

func TestBuildExportMessage(t *testing.T) {
	s := NewEmailSender("smtp.example.com", 587, "user", "pass", "leadmail@example.com")

	m, err := s.buildExportMessage("team@example.com", "generated-emails.csv", []byte("Recipient Name\n\"Jane\""), 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"leadmail@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"team@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Your generated emails (2)"}, m.GetHeader("Subject"))

	var raw bytes.Buffer
	_, err = m.WriteTo(&raw)
	require.NoError(t, err)
	out := raw.String()
	assert.Contains(t, out, "2 generated emails.")
	assert.Contains(t, out, `filename="generated-emails.csv"`)
	assert.Contains(t, out, "text/csv")
}

func TestSendExport(t *testing.T) {
	fake := &fakeDialer{}
	s := NewEmailSender("smtp.example.com", 587, "", "", "from@example.com")
	s.dialer = fake

	require.NoError(t, s.SendExport(context.Background(), "to@example.com", "x.csv", []byte("a"), 1))
	require.Len(t, fake.sent, 1)

	fake.err = errors.New("535 authentication failed")
	err := s.SendExport(context.Background(), "to@example.com", "x.csv", []byte("a"), 1)
	assert.ErrorContains(t, err, "535")
}

func TestSendExportHonoursContext(t *testing.T) {
	fake := &fakeDialer{block: make(chan struct{})}
	defer close(fake.block)
	s := NewEmailSender("smtp.example.com", 587, "", "", "from@example.com")
	s.dialer = fake

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := s.SendExport(ctx, "to@example.com", "x.csv", []byte("a"), 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
