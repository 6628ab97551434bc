package rest

import "time"

// AssessRequest is the wire form of a fraud assessment request
type AssessRequest struct {
	TransactionID  string            `json:"transaction_id" validate:"required"`
	MSISDN         string            `json:"msisdn" validate:"required,len=11"`
	Amount         string            `json:"amount" validate:"required"`
	Merchant       string            `json:"merchant"`
	Timestamp      *time.Time        `json:"timestamp,omitempty"`
	DeviceID       string            `json:"device_id,omitempty"`
	IPAddress      string            `json:"ip_address,omitempty"`
	Location       *LocationRequest  `json:"location,omitempty"`
	AdditionalData map[string]string `json:"additional_data,omitempty"`
}

// LocationRequest is the wire form of a transaction location
type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries machine-readable error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is the liveness probe payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// FraudHealthResponse reports readiness of the assessment pipeline
type FraudHealthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Evaluators map[string]string `json:"evaluators"`
	Carrier    string            `json:"carrier_gateway"`
	Timestamp  time.Time         `json:"timestamp"`
}
