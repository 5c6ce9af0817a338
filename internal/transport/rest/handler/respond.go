package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"neurodiverse/internal/repository"
	"neurodiverse/internal/service"
	"neurodiverse/internal/speech"
)

// clientErrors are reported with 400 and a fixed message
var clientErrors = []struct {
	err     error
	message string
}{
	{service.ErrNoFile, "No file provided"},
	{service.ErrEmptyFilename, "No selected file"},
	{service.ErrMissingFileName, "Missing file_name parameter"},
	{service.ErrNoText, "No text found"},
	{repository.ErrTextNotFound, "Extracted text not found"},
	{repository.ErrTextCorrupted, "Extracted text is corrupted"},
	{speech.ErrEmptyText, "No valid text found for TTS conversion"},
}

// statusFor maps an error to its HTTP status and response message
func statusFor(err error) (int, string) {
	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			return http.StatusBadRequest, ce.message
		}
	}
	return http.StatusInternalServerError, err.Error()
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeErr(w http.ResponseWriter, err error) {
	status, message := statusFor(err)
	writeError(w, status, message)
}
