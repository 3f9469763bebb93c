package handlers

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/logger"
)

const (
	MaxUploadSize = 5 << 20

	multipartOverhead = 1 << 20
	uploadField       = "file"
)

type UploadHandler struct {
	Logger *zap.Logger
}

func NewUploadHandler(log *zap.Logger) *UploadHandler {
	return &UploadHandler{Logger: log}
}

type UploadResponse struct {
	CSV string `json:"csv"`
}

// Handle returns the raw text of the uploaded file. Parsing happens later.
func (h *UploadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+multipartOverhead)

	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorResponse(w, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the 5MB limit")
			return
		}
		writeErrorResponse(w, http.StatusBadRequest, "NO_FILE", "No file uploaded")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "NO_FILE", "No file uploaded")
		return
	}
	defer file.Close()

	if header.Size > MaxUploadSize {
		writeErrorResponse(w, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the 5MB limit")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.WithRequestID(r.Context(), h.Logger).Error("failed to read upload", zap.String("filename", header.Filename), zap.Error(err))
		writeErrorResponse(w, http.StatusInternalServerError, "UPLOAD_FAILED", "Error processing the CSV file")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{CSV: string(data)})
}
