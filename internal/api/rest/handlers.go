package rest

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/errors"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/transaction"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
	"github.com/telcoshield/simswap-risk-engine/internal/service/assessment"
)

// Handler holds HTTP handlers and their dependencies
type Handler struct {
	svc      assessment.Service
	version  string
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates the HTTP handler set
func NewHandler(svc assessment.Service, version string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		svc:      svc,
		version:  version,
		validate: validator.New(),
		logger:   logger,
	}
}

// handleAssess runs a fraud assessment for one transaction
func (h *Handler) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req AssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errors.NewValidationError("INVALID_JSON", "request body is not valid JSON"))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.writeError(w, r, errors.NewValidationError("INVALID_REQUEST", err.Error()))
		return
	}

	tx, err := h.toTransaction(&req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.svc.Assess(r.Context(), tx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// toTransaction converts the wire request into a validated domain transaction
func (h *Handler) toTransaction(req *AssessRequest) (*transaction.Transaction, error) {
	msisdn, err := values.NewMSISDN(req.MSISDN)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, errors.ErrInvalidAmount
	}

	var ts time.Time
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	tx, err := transaction.New(req.TransactionID, msisdn, amount, req.Merchant, ts)
	if err != nil {
		return nil, err
	}

	if req.DeviceID != "" || req.IPAddress != "" {
		tx = tx.WithDevice(req.DeviceID, req.IPAddress)
	}
	if req.Location != nil {
		tx = tx.WithLocation(transaction.Location{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
			Country:   req.Location.Country,
			City:      req.Location.City,
		})
	}
	tx.AdditionalData = req.AdditionalData

	return tx, nil
}

// handleHealth is the liveness probe
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}

// handleFraudHealth reports readiness of the assessment pipeline
func (h *Handler) handleFraudHealth(w http.ResponseWriter, r *http.Request) {
	evaluators := map[string]string{
		assessment.EvaluatorSIMIntelligence:    "ready",
		assessment.EvaluatorGeographic:         "ready",
		assessment.EvaluatorDeviceTrust:        "ready",
		assessment.EvaluatorTransactionContext: "ready",
	}

	h.writeJSON(w, http.StatusOK, FraudHealthResponse{
		Status:     "healthy",
		Version:    h.version,
		Evaluators: evaluators,
		Carrier:    "ready",
		Timestamp:  time.Now().UTC(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.GetStatusCode(err)
	detail := ErrorDetail{
		Code:    "INTERNAL_ERROR",
		Message: "An internal error occurred",
	}

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		detail.Code = appErr.Code
		detail.Message = appErr.Message
		detail.Details = appErr.Details
	}

	h.logger.WarnContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.String("code", detail.Code),
	)

	h.writeJSON(w, status, ErrorResponse{Error: detail})
}
