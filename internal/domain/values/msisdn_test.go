package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMSISDN(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "valid South African number",
			input: "27821234567",
		},
		{
			name:  "valid number with different prefix digits",
			input: "27649308536",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "2782123456",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   "278212345678",
			wantErr: true,
		},
		{
			name:    "wrong country code",
			input:   "44821234567",
			wantErr: true,
		},
		{
			name:    "E.164 prefix not accepted",
			input:   "+27821234567",
			wantErr: true,
		},
		{
			name:    "non-numeric characters",
			input:   "2782123456a",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMSISDN(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, m.String())
		})
	}
}

func TestMSISDN_Parts(t *testing.T) {
	m := MustNewMSISDN("27821234567")

	assert.Equal(t, "27", m.CountryCode())
	assert.Equal(t, "821234567", m.SubscriberNumber())
	assert.Equal(t, "+27821234567", m.E164())
	assert.False(t, m.IsEmpty())
}

func TestMSISDN_Equal(t *testing.T) {
	a := MustNewMSISDN("27821234567")
	b := MustNewMSISDN("27821234567")
	c := MustNewMSISDN("27649308536")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestMSISDN_JSON(t *testing.T) {
	m := MustNewMSISDN("27821234567")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `"27821234567"`, string(data))

	var decoded MSISDN
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equal(decoded))

	var invalid MSISDN
	assert.Error(t, json.Unmarshal([]byte(`"12345"`), &invalid))
}
