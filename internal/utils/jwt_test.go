package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer  = "note-keeper"
	testSignKey = "note-keeper-sign-key"
)

func TestGenerateJWTToken_RoundTrip(t *testing.T) {
	userID := int64(123)

	token, err := GenerateJWTToken(testIssuer, userID, time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)
	require.NotNil(t, token.Token)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed.UserID)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, testSignKey},
		{"zero duration", testIssuer, 0, testSignKey},
		{"empty sign key", testIssuer, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, 1, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_Rejections(t *testing.T) {
	valid, err := GenerateJWTToken(testIssuer, 1, time.Hour, testSignKey)
	require.NoError(t, err)

	expired, err := GenerateJWTToken(testIssuer, 1, -time.Second, testSignKey)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		key     string
		issuer  string
		wantErr error
	}{
		{"wrong sign key", valid.SignedString, "other-key", testIssuer, jwt.ErrTokenSignatureInvalid},
		{"expired token", expired.SignedString, testSignKey, testIssuer, jwt.ErrTokenExpired},
		{"issuer mismatch", valid.SignedString, testSignKey, "another-service", jwt.ErrTokenInvalidIssuer},
		{"malformed token", "not.a.token", testSignKey, testIssuer, jwt.ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"empty header", "", "", true},
		{"scheme only", "Bearer ", "", true},
		{"no scheme", "abc.def.ghi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
