package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "agenda-test"
	testSignKey = "test-sign-key"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken(testIssuer, "mario_rossi", time.Hour, testSignKey)

	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "mario_rossi", token.UserID)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		userID   string
		duration time.Duration
		signKey  string
	}{
		{"empty issuer", "", "u", time.Hour, testSignKey},
		{"empty user id", testIssuer, "", time.Hour, testSignKey},
		{"zero duration", testIssuer, "u", 0, testSignKey},
		{"empty sign key", testIssuer, "u", time.Hour, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tc.issuer, tc.userID, tc.duration, tc.signKey)
			require.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	generated, err := GenerateJWTToken(testIssuer, "mario_rossi", time.Hour, testSignKey)
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(generated.SignedString, testSignKey, testIssuer)

	require.NoError(t, err)
	assert.Equal(t, "mario_rossi", parsed.UserID)
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	generated, err := GenerateJWTToken(testIssuer, "mario_rossi", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, "other-key", testIssuer)
	require.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	generated, err := GenerateJWTToken(testIssuer, "mario_rossi", time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, testSignKey, "someone-else")
	require.Error(t, err)
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	generated, err := GenerateJWTToken(testIssuer, "mario_rossi", -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(generated.SignedString, testSignKey, testIssuer)
	require.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ParseBearerToken("Bearer")
	require.Error(t, err)

	_, err = ParseBearerToken("")
	require.Error(t, err)
}
