package handlers

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/leadmail/internal/entity"
	"github.com/xavierca1/leadmail/internal/usecase"
)

// PageHandler renders the single-page wizard.
type PageHandler struct {
	tmpl        *template.Template
	static      http.Handler
	mailEnabled bool
	logger      *zap.Logger
}

type pageData struct {
	Tones        []entity.EmailTone
	MaxUploadMB  int
	PreviewRows  int
	MailEnabled  bool
	EmailsPerTab int
}

// NewPageHandler parses templates/index.html from assets and serves
// assets/static under /static/.
func NewPageHandler(assets fs.FS, mailEnabled bool, log *zap.Logger) (*PageHandler, error) {
	tmpl, err := template.ParseFS(assets, "templates/index.html")
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		tmpl:        tmpl,
		static:      http.StripPrefix("/static/", http.FileServer(http.FS(static))),
		mailEnabled: mailEnabled,
		logger:      log,
	}, nil
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := h.tmpl.Execute(&buf, pageData{
		Tones:        entity.Tones,
		MaxUploadMB:  MaxUploadSize >> 20,
		PreviewRows:  usecase.PreviewRows,
		MailEnabled:  h.mailEnabled,
		EmailsPerTab: 5,
	})
	if err != nil {
		h.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *PageHandler) Static(w http.ResponseWriter, r *http.Request) {
	h.static.ServeHTTP(w, r)
}
