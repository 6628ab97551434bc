package fixtures

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/telcoshield/simswap-risk-engine/internal/domain/transaction"
	"github.com/telcoshield/simswap-risk-engine/internal/domain/values"
)

// TransactionBuilder builds test transactions
type TransactionBuilder struct {
	t         *testing.T
	id        string
	msisdn    string
	amount    decimal.Decimal
	merchant  string
	timestamp time.Time
	deviceID  string
	ipAddress string
	location  *transaction.Location
}

// NewTransactionBuilder creates a builder with low-risk defaults
func NewTransactionBuilder(t *testing.T) *TransactionBuilder {
	t.Helper()

	return &TransactionBuilder{
		t:         t,
		id:        "TXN-" + uuid.New().String()[:8],
		msisdn:    "27821234567",
		amount:    decimal.NewFromInt(1500),
		merchant:  "Grocery Store",
		timestamp: time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC),
		deviceID:  "351234567890123",
		ipAddress: "196.25.1.1",
		location:  &transaction.Location{Country: "ZA", City: "Cape Town"},
	}
}

// WithID sets the transaction id
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.id = id
	return b
}

// WithMSISDN sets the subscriber number
func (b *TransactionBuilder) WithMSISDN(msisdn string) *TransactionBuilder {
	b.msisdn = msisdn
	return b
}

// WithAmount sets the transaction amount
func (b *TransactionBuilder) WithAmount(amount int64) *TransactionBuilder {
	b.amount = decimal.NewFromInt(amount)
	return b
}

// WithMerchant sets the merchant name
func (b *TransactionBuilder) WithMerchant(merchant string) *TransactionBuilder {
	b.merchant = merchant
	return b
}

// WithTimestamp sets the transaction time
func (b *TransactionBuilder) WithTimestamp(ts time.Time) *TransactionBuilder {
	b.timestamp = ts
	return b
}

// WithDevice sets the device id and source IP
func (b *TransactionBuilder) WithDevice(deviceID, ipAddress string) *TransactionBuilder {
	b.deviceID = deviceID
	b.ipAddress = ipAddress
	return b
}

// WithLocation sets the transaction origin
func (b *TransactionBuilder) WithLocation(country, city string) *TransactionBuilder {
	b.location = &transaction.Location{Country: country, City: city}
	return b
}

// WithoutLocation clears the location block
func (b *TransactionBuilder) WithoutLocation() *TransactionBuilder {
	b.location = nil
	return b
}

// Build constructs the transaction, failing the test on invalid input
func (b *TransactionBuilder) Build() *transaction.Transaction {
	b.t.Helper()

	tx, err := transaction.New(
		b.id,
		values.MustNewMSISDN(b.msisdn),
		b.amount,
		b.merchant,
		b.timestamp,
	)
	require.NoError(b.t, err)

	tx = tx.WithDevice(b.deviceID, b.ipAddress)
	if b.location != nil {
		tx = tx.WithLocation(*b.location)
	}
	return tx
}
