package handlers

import (
	"net/http"
	"time"
)

// Version is set at build time with -ldflags "-X ...handlers.Version=...".
var Version = "dev"

// BrokerStatus reports whether the event broker connection is usable.
type BrokerStatus interface {
	Healthy() bool
}

// EmailCounter reports how many emails the store holds.
type EmailCounter interface {
	Count() int
}

type HealthHandler struct {
	Broker          BrokerStatus
	Store           EmailCounter
	CompletionModel string
	MailEnabled     bool
	StartTime       time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	StoredEmails int               `json:"storedEmails"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewHealthHandler accepts a nil broker when events are disabled.
func NewHealthHandler(broker BrokerStatus, store EmailCounter, completionModel string, mailEnabled bool) *HealthHandler {
	return &HealthHandler{
		Broker:          broker,
		Store:           store,
		CompletionModel: completionModel,
		MailEnabled:     mailEnabled,
		StartTime:       time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.Broker != nil {
		if h.Broker.Healthy() {
			deps["rabbitmq"] = "healthy"
		} else {
			deps["rabbitmq"] = "unhealthy: connection closed"
		}
	} else {
		deps["rabbitmq"] = "not configured"
	}

	deps["completion"] = "configured: " + h.CompletionModel

	if h.MailEnabled {
		deps["smtp"] = "configured"
	} else {
		deps["smtp"] = "not configured"
	}

	status := "healthy"
	if h.Broker != nil && !h.Broker.Healthy() {
		status = "degraded"
	}

	response := HealthResponse{
		Status:       status,
		Version:      Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	}
	if h.Store != nil {
		response.StoredEmails = h.Store.Count()
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
