package advert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightrec/internal/domain"
	"brightrec/internal/protocol/advert"
)

func TestEncodeParse_RoundTrip(t *testing.T) {
	tests := []domain.Advertisement{
		{SigningKey: "q83vEjRWeJCrze8SNFZ4kKvN7xI0VniQq83vEjRWeJA=", Timestamp: 1700000000000},
		{SigningKey: "a", Timestamp: 1},
		{SigningKey: "key with \"quotes\" and unicode ✓", Timestamp: 9007199254740991},
	}
	for _, in := range tests {
		token, err := advert.Encode(in)
		require.NoError(t, err)
		assert.Equal(t, "Recovery_", token[:len(advert.Prefix)])

		got, err := advert.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestEncode_Format(t *testing.T) {
	token, err := advert.Encode(domain.Advertisement{SigningKey: "abc", Timestamp: 42})
	require.NoError(t, err)
	assert.Equal(t, `Recovery_{"signingKey":"abc","timestamp":42}`, token)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "no prefix", token: `{"signingKey":"abc","timestamp":42}`},
		{name: "wrong prefix", token: `Recover_{"signingKey":"abc","timestamp":42}`},
		{name: "invalid json", token: `Recovery_{"signingKey":`},
		{name: "missing key", token: `Recovery_{"timestamp":42}`},
		{name: "missing timestamp", token: `Recovery_{"signingKey":"abc"}`},
		{name: "zero timestamp", token: `Recovery_{"signingKey":"abc","timestamp":0}`},
		{name: "empty", token: ``},
		{name: "connection qr", token: `Connection_{"id":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := advert.Parse(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedAdvertisement)
		})
	}
}

func TestFromSession(t *testing.T) {
	s := domain.RecoverySession{SigningPublicKey: "pub", CreatedAt: 7}
	assert.Equal(t, domain.Advertisement{SigningKey: "pub", Timestamp: 7}, advert.FromSession(s))
}
