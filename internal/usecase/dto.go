package usecase

import "github.com/xavierca1/leadmail/internal/entity"

type GenerateEmailsInput struct {
	SenderDetails entity.SenderDetails `json:"senderDetails"`
	Leads         []entity.Lead        `json:"leads"`
}

// SkippedLead reports a lead for which no email was stored.
type SkippedLead struct {
	Index         int    `json:"index"`
	RecipientName string `json:"recipientName"`
	Reason        string `json:"reason"`
}

type GenerateEmailsOutput struct {
	BatchID string                  `json:"batchId"`
	Emails  []entity.GeneratedEmail `json:"emails"`
	Skipped []SkippedLead           `json:"skipped"`
}

// RegeneratePart names the field of an email that is rewritten.
type RegeneratePart string

const (
	PartSubject RegeneratePart = "subject"
	PartBody    RegeneratePart = "body"
)

func (p RegeneratePart) Valid() bool {
	return p == PartSubject || p == PartBody
}

type RegenerateContentInput struct {
	ID            int                  `json:"-"`
	Part          RegeneratePart       `json:"part"`
	SenderDetails entity.SenderDetails `json:"senderDetails"`
}

type RegenerateContentOutput struct {
	Email              entity.GeneratedEmail `json:"email"`
	RegeneratedContent string                `json:"regeneratedContent"`
}

type UpdateEmailInput struct {
	ID    int
	Patch entity.EmailPatch
}

type ExportEmailsInput struct {
	Filter entity.EmailFilter
}

type ExportEmailsOutput struct {
	Filename string
	CSV      []byte
	Count    int
}

type ExportMailInput struct {
	To     string             `json:"to"`
	Filter entity.EmailFilter `json:"filter,omitempty"`
}

type ExportMailOutput struct {
	To    string `json:"to"`
	Count int    `json:"count"`
}

type ParseLeadsInput struct {
	CSV string `json:"csv"`
}

type ParseLeadsOutput struct {
	Headers   []string      `json:"headers"`
	Preview   [][]string    `json:"preview"`
	Leads     []entity.Lead `json:"leads"`
	TotalRows int           `json:"totalRows"`
}
