package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/entity"
	"github.com/xavierca1/leadmail/internal/usecase"
)

type EmailHandler struct {
	GenerateUC   *usecase.GenerateEmailsUseCase
	RegenerateUC *usecase.RegenerateContentUseCase
	ListUC       *usecase.ListEmailsUseCase
	UpdateUC     *usecase.UpdateEmailUseCase
	DeleteUC     *usecase.DeleteEmailUseCase
	ExportUC     *usecase.ExportEmailsUseCase
	Logger       *zap.Logger
}

type EmailsResponse struct {
	Emails []entity.GeneratedEmail `json:"emails"`
}

type EmailResponse struct {
	Email entity.GeneratedEmail `json:"email"`
}

func (h *EmailHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var input usecase.GenerateEmailsInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid request data")
		return
	}

	out, err := h.GenerateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err, "Error generating emails")
		return
	}

	w.Header().Set("X-Batch-ID", out.BatchID)
	writeJSON(w, http.StatusOK, out)
}

func (h *EmailHandler) List(w http.ResponseWriter, r *http.Request) {
	emails, err := h.ListUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err, "Error fetching emails")
		return
	}
	writeJSON(w, http.StatusOK, EmailsResponse{Emails: emails})
}

func (h *EmailHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := emailID(r)
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_ID", "Invalid email ID")
		return
	}

	var patch entity.EmailPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid update data")
		return
	}

	email, err := h.UpdateUC.Execute(r.Context(), usecase.UpdateEmailInput{ID: id, Patch: patch})
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err, "Error updating email")
		return
	}
	writeJSON(w, http.StatusOK, EmailResponse{Email: *email})
}

func (h *EmailHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := emailID(r)
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_ID", "Invalid email ID")
		return
	}

	var input usecase.RegenerateContentInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid request data")
		return
	}
	input.ID = id

	out, err := h.RegenerateUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err, "Error regenerating email content")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *EmailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := emailID(r)
	if !ok {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_ID", "Invalid email ID")
		return
	}

	if err := h.DeleteUC.Execute(r.Context(), id); err != nil {
		writeUseCaseError(w, r, h.Logger, err, "Error deleting email")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export downloads the stored emails as CSV, optionally filtered by ?filter=.
func (h *EmailHandler) Export(w http.ResponseWriter, r *http.Request) {
	out, err := h.ExportUC.Execute(r.Context(), usecase.ExportEmailsInput{
		Filter: entity.EmailFilter(r.URL.Query().Get("filter")),
	})
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err, "Error exporting emails")
		return
	}
	writeCSV(w, out.Filename, out.CSV)
}

func (h *EmailHandler) MailExport(w http.ResponseWriter, r *http.Request) {
	var input usecase.ExportMailInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid request data")
		return
	}

	out, err := h.ExportUC.Mail(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err, "Error sending export")
		return
	}
	writeJSON(w, http.StatusAccepted, out)
}
