package values

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// MSISDN represents a validated South African mobile subscriber number.
// Stored in national-prefix format: 11 digits beginning with the country
// code "27" (e.g. 27821234567).
type MSISDN struct {
	number string
}

var msisdnRegex = regexp.MustCompile(`^27\d{9}$`)

// NewMSISDN creates a new MSISDN value object with validation
func NewMSISDN(number string) (MSISDN, error) {
	if number == "" {
		return MSISDN{}, fmt.Errorf("msisdn cannot be empty")
	}

	if !msisdnRegex.MatchString(number) {
		return MSISDN{}, fmt.Errorf("invalid msisdn format: %s", number)
	}

	return MSISDN{number: number}, nil
}

// MustNewMSISDN creates an MSISDN and panics on error (for constants/tests)
func MustNewMSISDN(number string) MSISDN {
	m, err := NewMSISDN(number)
	if err != nil {
		panic(err)
	}
	return m
}

// String returns the MSISDN in 27XXXXXXXXX format
func (m MSISDN) String() string {
	return m.number
}

// IsEmpty checks if the MSISDN is empty
func (m MSISDN) IsEmpty() bool {
	return m.number == ""
}

// Equal checks if two MSISDN values are equal
func (m MSISDN) Equal(other MSISDN) bool {
	return m.number == other.number
}

// CountryCode returns the country code prefix ("27")
func (m MSISDN) CountryCode() string {
	if len(m.number) < 2 {
		return ""
	}
	return m.number[:2]
}

// SubscriberNumber returns the 9-digit subscriber part after the country code
func (m MSISDN) SubscriberNumber() string {
	if len(m.number) != 11 {
		return ""
	}
	return m.number[2:]
}

// E164 returns the number in E.164 format (+27XXXXXXXXX)
func (m MSISDN) E164() string {
	if m.number == "" {
		return ""
	}
	return "+" + m.number
}

// MarshalJSON implements JSON marshaling
func (m MSISDN) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.number)
}

// UnmarshalJSON implements JSON unmarshaling
func (m *MSISDN) UnmarshalJSON(data []byte) error {
	var number string
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}

	msisdn, err := NewMSISDN(number)
	if err != nil {
		return err
	}

	*m = msisdn
	return nil
}
