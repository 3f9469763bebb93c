package usecase

import "errors"

const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeEmailNotFound    = "EMAIL_NOT_FOUND"
	CodeInvalidCSV       = "INVALID_CSV"
	CodeMailNotEnabled   = "MAIL_NOT_CONFIGURED"
	CodeCompletionFailed = "COMPLETION_FAILED"
	CodeStorageFailed    = "STORAGE_ERROR"
	CodeMailFailed       = "MAIL_DELIVERY_FAILED"
)

// DomainError is a failure caused by the caller's input or by the state of
// the store. Handlers map it to a 4xx status.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is a failure of a dependency (completion API, store, SMTP).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode returns the code of the first DomainError or TechnicalError in
// err's chain, or "" when there is none.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}

func newValidationError(errs ValidationErrors) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: "Invalid request data",
		Err:     errs,
	}
}

func newNotFoundError(err error) *DomainError {
	return &DomainError{
		Code:    CodeEmailNotFound,
		Message: "Email not found",
		Err:     err,
	}
}
