package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/errors"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
)

// Transaction is the immutable input to a fraud assessment. It is owned by
// the caller and passed by reference to the orchestrator; nothing in the
// engine mutates it after construction.
type Transaction struct {
	ID        string          `json:"transaction_id"`
	MSISDN    values.MSISDN   `json:"msisdn"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	Merchant  string          `json:"merchant"`

	// Optional signals
	DeviceID       string            `json:"device_id,omitempty"`
	IPAddress      string            `json:"ip_address,omitempty"`
	Location       *Location         `json:"location,omitempty"`
	AdditionalData map[string]string `json:"additional_data,omitempty"`
}

// Location describes where a transaction originated
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	City      string  `json:"city"`
}

// New creates a validated Transaction. The timestamp defaults to the current
// time when the caller does not supply one.
func New(id string, msisdn values.MSISDN, amount decimal.Decimal, merchant string, timestamp time.Time) (*Transaction, error) {
	tx := &Transaction{
		ID:        id,
		MSISDN:    msisdn,
		Amount:    amount,
		Timestamp: timestamp,
		Merchant:  merchant,
	}

	if tx.Timestamp.IsZero() {
		tx.Timestamp = clock.Now()
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	return tx, nil
}

// Validate checks the invariants that must hold before any evaluator runs.
// Violations are terminal: the transaction is rejected, not degraded.
func (t *Transaction) Validate() error {
	if t.ID == "" {
		return errors.ErrEmptyTransaction
	}

	if t.MSISDN.IsEmpty() {
		return errors.ErrInvalidMSISDN
	}

	if !t.Amount.IsPositive() {
		return errors.ErrInvalidAmount
	}

	return nil
}

// WithDevice returns a copy of the transaction with device context attached
func (t Transaction) WithDevice(deviceID, ipAddress string) *Transaction {
	t.DeviceID = deviceID
	t.IPAddress = ipAddress
	return &t
}

// WithLocation returns a copy of the transaction with location attached
func (t Transaction) WithLocation(loc Location) *Transaction {
	t.Location = &loc
	return &t
}

// Hour returns the hour-of-day of the transaction timestamp, in the
// timestamp's own zone.
func (t *Transaction) Hour() int {
	return t.Timestamp.Hour()
}
