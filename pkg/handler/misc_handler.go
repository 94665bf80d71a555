// Handler for miscellaneous endpoints such as health check

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yumyai/prophagestat/pkg/middle"
	"go.uber.org/zap"
)

type HealthResponse struct {
	Health    string    `json:"health"`
	Timestamp time.Time `json:"timestamp"`
}

// APIResponse wraps every JSON payload.
type APIResponse struct {
	Success bool        `json:"success"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {

	response := HealthResponse{
		Health:    "ok",
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)

}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		middle.Logger(r.Context()).Error("Encode response failed", zap.Error(err))
	}
}

func writeOK(w http.ResponseWriter, r *http.Request, payload interface{}) {
	writeJSON(w, r, http.StatusOK, APIResponse{Success: true, Payload: payload})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	middle.Logger(r.Context()).Debug("Request rejected", zap.Int("status", status), zap.Error(err))
	writeJSON(w, r, status, APIResponse{Success: false, Error: err.Error()})
}
