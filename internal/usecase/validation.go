package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/xavierca1/leadmail/internal/entity"
)

const minProductDescriptionLen = 10

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Field + " (" + e.Message + ")"
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// ValidateSenderDetails checks s. Field names are prefixed with prefix, as in
// "senderDetails.name".
func ValidateSenderDetails(prefix string, s entity.SenderDetails) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, ValidationError{prefix + "name", "Name is required"})
	}
	if strings.TrimSpace(s.Company) == "" {
		errs = append(errs, ValidationError{prefix + "company", "Company is required"})
	}
	if utf8.RuneCountInString(strings.TrimSpace(s.ProductDescription)) < minProductDescriptionLen {
		errs = append(errs, ValidationError{prefix + "productDescription", "Please provide a more detailed product description"})
	}
	if s.EmailTone != "" && !s.EmailTone.Valid() {
		errs = append(errs, ValidationError{prefix + "emailTone", "must be one of professional, friendly, persuasive, urgent"})
	}

	return errs
}

func ValidateLead(prefix string, l entity.Lead) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(l.Name) == "" {
		errs = append(errs, ValidationError{prefix + "name", "Name is required"})
	}
	if strings.TrimSpace(l.Company) == "" {
		errs = append(errs, ValidationError{prefix + "company", "Company is required"})
	}

	return errs
}

func ValidateGenerateEmailsInput(input GenerateEmailsInput) ValidationErrors {
	errs := ValidateSenderDetails("senderDetails.", input.SenderDetails)

	// An empty list is a valid request that yields no emails.
	if input.Leads == nil {
		errs = append(errs, ValidationError{"leads", "is required"})
	}
	for i, l := range input.Leads {
		errs = append(errs, ValidateLead(fmt.Sprintf("leads[%d].", i), l)...)
	}

	return errs
}

func ValidateRegenerateContentInput(input RegenerateContentInput) ValidationErrors {
	var errs ValidationErrors

	if !input.Part.Valid() {
		errs = append(errs, ValidationError{"part", "must be subject or body"})
	}
	errs = append(errs, ValidateSenderDetails("senderDetails.", input.SenderDetails)...)

	return errs
}

func ValidateExportMailInput(input ExportMailInput) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(input.To) == "" {
		errs = append(errs, ValidationError{"to", "is required"})
	} else if _, err := mail.ParseAddress(input.To); err != nil {
		errs = append(errs, ValidationError{"to", "is invalid"})
	}
	if input.Filter != "" && !input.Filter.Valid() {
		errs = append(errs, ValidationError{"filter", "must be all, reviewed or edited"})
	}

	return errs
}
