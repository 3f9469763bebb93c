package entity

import (
	"context"
	"errors"
	"time"
)

var ErrEmailNotFound = errors.New("email not found")

type GeneratedEmail struct {
	ID               int       `json:"id"`
	RecipientName    string    `json:"recipientName"`
	RecipientCompany string    `json:"recipientCompany"`
	RecipientProduct string    `json:"recipientProduct,omitempty"`
	Subject          string    `json:"subject"`
	Body             string    `json:"body"`
	IsReviewed       bool      `json:"isReviewed"`
	IsEdited         bool      `json:"isEdited"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewGeneratedEmail builds an unsaved draft for a lead. ID and CreatedAt are
// assigned by the repository.
func NewGeneratedEmail(lead Lead, subject, body string) *GeneratedEmail {
	return &GeneratedEmail{
		RecipientName:    lead.Name,
		RecipientCompany: lead.Company,
		RecipientProduct: lead.Product,
		Subject:          subject,
		Body:             body,
	}
}

// EmailPatch holds the mutable fields of a GeneratedEmail. Nil fields are left
// untouched by Apply.
type EmailPatch struct {
	Subject    *string `json:"subject,omitempty"`
	Body       *string `json:"body,omitempty"`
	IsReviewed *bool   `json:"isReviewed,omitempty"`
	IsEdited   *bool   `json:"isEdited,omitempty"`
}

func (p EmailPatch) Apply(e *GeneratedEmail) {
	if p.Subject != nil {
		e.Subject = *p.Subject
	}
	if p.Body != nil {
		e.Body = *p.Body
	}
	if p.IsReviewed != nil {
		e.IsReviewed = *p.IsReviewed
	}
	if p.IsEdited != nil {
		e.IsEdited = *p.IsEdited
	}
}

func (p EmailPatch) IsEmpty() bool {
	return p.Subject == nil && p.Body == nil && p.IsReviewed == nil && p.IsEdited == nil
}

// EmailFilter selects emails for the review tabs and the export.
type EmailFilter string

const (
	FilterAll      EmailFilter = "all"
	FilterReviewed EmailFilter = "reviewed"
	FilterEdited   EmailFilter = "edited"
)

func (f EmailFilter) Valid() bool {
	return f == FilterAll || f == FilterReviewed || f == FilterEdited
}

func (f EmailFilter) Match(e GeneratedEmail) bool {
	switch f {
	case FilterReviewed:
		return e.IsReviewed
	case FilterEdited:
		return e.IsEdited
	default:
		return true
	}
}

func FilterEmails(emails []GeneratedEmail, f EmailFilter) []GeneratedEmail {
	out := make([]GeneratedEmail, 0, len(emails))
	for _, e := range emails {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

type EmailRepositoryInterface interface {
	Create(ctx context.Context, email *GeneratedEmail) error
	List(ctx context.Context) ([]GeneratedEmail, error)
	FindByID(ctx context.Context, id int) (*GeneratedEmail, error)
	Update(ctx context.Context, id int, patch EmailPatch) (*GeneratedEmail, error)
	Delete(ctx context.Context, id int) (bool, error)
}
