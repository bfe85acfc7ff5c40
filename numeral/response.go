package numeral

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SuccessResponse é o corpo de 200 em /romannumeral.
type SuccessResponse struct {
	Input      string `json:"input"`
	Output     string `json:"output"`
	StatusCode int    `json:"statusCode"`
	StatusText string `json:"statusText"`
	RequestID  string `json:"requestId"`
	Duration   string `json:"duration"`
}

// ErrorResponse é o envelope de erro comum a todas as rotas.
type ErrorResponse struct {
	Error              string   `json:"error"`
	Message            string   `json:"message"`
	StatusCode         int      `json:"statusCode"`
	StatusText         string   `json:"statusText"`
	RequestID          string   `json:"requestId,omitempty"`
	Duration           string   `json:"duration,omitempty"`
	Input              *string  `json:"input,omitempty"`
	AvailableEndpoints []string `json:"availableEndpoints,omitempty"`
}

const (
	internalErrorName    = "InternalServerError"
	internalErrorMessage = "An unexpected error occurred while processing your request."
)

func newErrorResponse(status int, name, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Error:      name,
		Message:    message,
		StatusCode: status,
		StatusText: http.StatusText(status),
		RequestID:  requestID,
	}
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// AdmissionReject escreve o envelope JSON para requisições recusadas pelos
// middlewares de admissão (rate limit / concorrência).
// A assinatura casa com ratelimit.RejectFunc.
func AdmissionReject(w http.ResponseWriter, r *http.Request, status int, _ time.Duration) {
	name, message := "ServiceUnavailable", "The server is busy. Please retry later."
	if status == http.StatusTooManyRequests {
		name, message = "TooManyRequests", "Too many requests. Please retry later."
	}
	writeJSON(w, status, newErrorResponse(status, name, message, RequestIDFrom(r.Context())))
}
