package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"trivia-service/internal/app"
	"trivia-service/internal/domain"
)

const maxBodyBytes = 1 << 20

// APIHandler serves the JSON scoring endpoints.
type APIHandler struct {
	service *app.GradingService
}

func NewAPIHandler(service *app.GradingService) *APIHandler {
	return &APIHandler{service: service}
}

type gradeRequest struct {
	Seed     string                  `json:"seed"`
	Sections []domain.SectionAnswers `json:"sections"`
}

type colorResponse struct {
	Seed  string `json:"seed"`
	Color string `json:"color"`
}

// ServeScores handles POST /v1/scores with a JSON array of {code, correctness}.
func (h *APIHandler) ServeScores(w http.ResponseWriter, r *http.Request) {
	var inputs []domain.SectionScoreInput
	if err := decodeJSON(w, r, &inputs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid score payload")
		return
	}
	writeJSON(w, http.StatusOK, h.service.Aggregate(inputs))
}

// ServeColor handles GET /v1/colors/{seed} and GET /v1/colors?seed=.
func (h *APIHandler) ServeColor(w http.ResponseWriter, r *http.Request) {
	seed := r.PathValue("seed")
	if seed == "" {
		seed = r.URL.Query().Get("seed")
	}
	writeJSON(w, http.StatusOK, colorResponse{Seed: seed, Color: h.service.Color(seed)})
}

// ServeGrade handles POST /v1/grade.
func (h *APIHandler) ServeGrade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid grade payload")
		return
	}
	report, err := h.service.Grade(r.Context(), req.Seed, req.Sections)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ServeBank handles GET /v1/banks/{code}.
func (h *APIHandler) ServeBank(w http.ResponseWriter, r *http.Request) {
	bank, err := h.service.Bank(r.Context(), r.PathValue("code"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bank)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBankNotFound), errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidBank):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeStrict(http.MaxBytesReader(w, r.Body, maxBodyBytes), v)
}

// decodeStrict reads exactly one JSON value with no unknown fields. REST bodies
// and websocket payloads share it.
func decodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("trailing data after JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorPayload{Message: msg})
}
