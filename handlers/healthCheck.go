package handlers

import (
	"net/http"
	"time"
)

const (
	serviceName    = "PIX QR Code Generator API"
	serviceVersion = "1.0.0"
)

// HealthCheckHandler lida com a verificação de saúde do sistema
func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   serviceName,
			"version":   serviceVersion,
		})
	}
}
