package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/infra/leadcsv"
	"github.com/xavierca1/leadmail/internal/usecase"
)

const sampleFilename = "sample-leads.csv"

type LeadHandler struct {
	Logger *zap.Logger
}

func NewLeadHandler(log *zap.Logger) *LeadHandler {
	return &LeadHandler{Logger: log}
}

// Parse validates uploaded CSV text and returns the preview and leads.
func (h *LeadHandler) Parse(w http.ResponseWriter, r *http.Request) {
	var input usecase.ParseLeadsInput
	if err := decodeJSON(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request data")
		return
	}

	out, err := usecase.ParseLeads(input)
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err, "Error parsing CSV")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *LeadHandler) SampleCSV(w http.ResponseWriter, r *http.Request) {
	writeCSV(w, sampleFilename, leadcsv.SampleCSV())
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
