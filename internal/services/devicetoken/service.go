package devicetoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/clock"
	"github.com/uwoguessr/uwoguessr-server/internal/model"
)

// Errors
var (
	ErrInvalidToken        = errors.New("missing or invalid device token")
	ErrSecretNotConfigured = errors.New("device token secret not configured")
)

const (
	// payloadVersion is the only accepted token payload version
	payloadVersion = 1

	// MinSecretLength is the minimum byte length for the signing secret
	MinSecretLength = 16

	// minDeviceIDLength guards against degenerate device identifiers
	minDeviceIDLength = 10
)

// Payload is the signed content of a device token.
// IssuedAt is carried in Unix milliseconds but is not enforced as an
// expiry: a well-signed v1 token verifies indefinitely.
type Payload struct {
	Version  int    `json:"v"`
	DeviceID string `json:"device_id"`
	IssuedAt int64  `json:"iat"`
}

// Config holds configuration for the device token service
type Config struct {
	// Secret is the server-held HMAC key. Must be at least MinSecretLength
	// bytes; a shorter secret is a deployment misconfiguration.
	Secret string
}

// Service issues and verifies signed anonymous device tokens.
// Tokens are stateless credential material: the server keeps no record of
// issued tokens and re-verifies the signature on every use.
type Service struct {
	secret []byte
	clock  clock.Clock
}

// New creates a new device token service
func New(cfg Config, clk clock.Clock) *Service {
	return &Service{
		secret: []byte(cfg.Secret),
		clock:  clk,
	}
}

// Issue creates a token for a freshly generated anonymous device identifier.
// The token is base64url(payload JSON) + "." + base64url(HMAC-SHA-256 of the
// encoded payload), both without padding.
func (s *Service) Issue() (string, error) {
	if len(s.secret) < MinSecretLength {
		return "", ErrSecretNotConfigured
	}

	payload := Payload{
		Version:  payloadVersion,
		DeviceID: uuid.NewString(),
		IssuedAt: s.clock.Now().UnixMilli(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(data)
	signature := base64.RawURLEncoding.EncodeToString(s.sign(encoded))

	return encoded + "." + signature, nil
}

// Verify checks a token's signature and payload and returns the device ID.
// The signature comparison is constant-time.
func (s *Service) Verify(token string) (model.DeviceID, error) {
	if len(s.secret) < MinSecretLength {
		return "", ErrSecretNotConfigured
	}

	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return "", ErrInvalidToken
	}

	provided, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ErrInvalidToken
	}
	if !hmac.Equal(s.sign(parts[0]), provided) {
		return "", ErrInvalidToken
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrInvalidToken
	}

	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", ErrInvalidToken
	}
	if payload.Version != payloadVersion || len(payload.DeviceID) < minDeviceIDLength {
		return "", ErrInvalidToken
	}

	return model.DeviceID(payload.DeviceID), nil
}

// sign computes the HMAC-SHA-256 of the encoded payload
func (s *Service) sign(encodedPayload string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encodedPayload))
	return mac.Sum(nil)
}
