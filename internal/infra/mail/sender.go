// Package mail delivers the email export over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"text/template"

	"gopkg.in/gomail.v2"
)

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

var exportBody = template.Must(template.New("export").Parse(`Hello,

Attached is {{.Filename}} with {{.Count}} generated email{{if ne .Count 1}}s{{end}}.

Each row holds the recipient name, recipient company, subject and body.
`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// SendExport mails csv to the given address as an attachment named filename.
func (s *EmailSender) SendExport(ctx context.Context, to, filename string, csv []byte, count int) error {
	m, err := s.buildExportMessage(to, filename, csv, count)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("failed to send SMTP email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *EmailSender) buildExportMessage(to, filename string, csv []byte, count int) (*gomail.Message, error) {
	var body bytes.Buffer
	if err := exportBody.Execute(&body, ExportEmailData{Count: count, Filename: filename}); err != nil {
		return nil, fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your generated emails (%d)", count))
	m.SetBody("text/plain", body.String())
	m.Attach(filename,
		gomail.SetHeader(map[string][]string{"Content-Type": {"text/csv; charset=utf-8"}}),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(csv)
			return err
		}),
	)
	return m, nil
}
