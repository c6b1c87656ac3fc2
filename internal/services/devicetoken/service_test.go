package devicetoken

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/uwoguessr/uwoguessr-server/internal/dependencies/mocks"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(Config{Secret: testSecret}, s.clock)
}

// Issue tests

func (s *ServiceSuite) TestIssueProducesTwoPartToken() {
	token, err := s.service.Issue()
	s.Require().NoError(err)

	parts := strings.Split(token, ".")
	s.Len(parts, 2)
	s.NotEmpty(parts[0])
	s.NotEmpty(parts[1])
}

func (s *ServiceSuite) TestIssuePayloadContents() {
	token, err := s.service.Issue()
	s.Require().NoError(err)

	data, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[0])
	s.Require().NoError(err)

	var payload Payload
	s.Require().NoError(json.Unmarshal(data, &payload))

	s.Equal(1, payload.Version)
	s.GreaterOrEqual(len(payload.DeviceID), 10)
	s.Equal(s.clock.Now().UnixMilli(), payload.IssuedAt)
}

func (s *ServiceSuite) TestIssueGeneratesFreshDeviceIDs() {
	token1, err := s.service.Issue()
	s.Require().NoError(err)
	token2, err := s.service.Issue()
	s.Require().NoError(err)

	id1, err := s.service.Verify(token1)
	s.Require().NoError(err)
	id2, err := s.service.Verify(token2)
	s.Require().NoError(err)

	s.NotEqual(id1, id2)
}

func (s *ServiceSuite) TestIssueFailsWithoutSecret() {
	svc := New(Config{}, s.clock)

	_, err := svc.Issue()
	s.ErrorIs(err, ErrSecretNotConfigured)
}

func (s *ServiceSuite) TestIssueFailsWithShortSecret() {
	svc := New(Config{Secret: "too-short"}, s.clock)

	_, err := svc.Issue()
	s.ErrorIs(err, ErrSecretNotConfigured)
}

// Verify tests

func (s *ServiceSuite) TestVerifyRoundTrip() {
	token, err := s.service.Issue()
	s.Require().NoError(err)

	deviceID, err := s.service.Verify(token)
	s.Require().NoError(err)
	s.GreaterOrEqual(len(deviceID), 10)
}

func (s *ServiceSuite) TestVerifyFailsWithTamperedSignature() {
	token, err := s.service.Issue()
	s.Require().NoError(err)

	// Flip the first character of the signature portion
	tampered := []byte(token)
	pos := strings.Index(token, ".") + 1
	if tampered[pos] == 'A' {
		tampered[pos] = 'Q'
	} else {
		tampered[pos] = 'A'
	}

	_, err = s.service.Verify(string(tampered))
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyFailsWithTamperedPayload() {
	token, err := s.service.Issue()
	s.Require().NoError(err)

	parts := strings.Split(token, ".")
	forged := Payload{Version: 1, DeviceID: "attacker-chosen-id", IssuedAt: 0}
	data, _ := json.Marshal(forged)
	parts[0] = base64.RawURLEncoding.EncodeToString(data)

	_, err = s.service.Verify(strings.Join(parts, "."))
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyFailsWithWrongPartCount() {
	for _, token := range []string{"", "no-dot", "a.b.c"} {
		_, err := s.service.Verify(token)
		s.ErrorIs(err, ErrInvalidToken)
	}
}

func (s *ServiceSuite) TestVerifyFailsWithWrongVersion() {
	s.ErrorIs(s.verifyForged(Payload{Version: 2, DeviceID: "0123456789abcdef"}), ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyFailsWithShortDeviceID() {
	s.ErrorIs(s.verifyForged(Payload{Version: 1, DeviceID: "short"}), ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyFailsWithDifferentSecret() {
	token, err := s.service.Issue()
	s.Require().NoError(err)

	other := New(Config{Secret: "another-secret-of-sufficient-length"}, s.clock)
	_, err = other.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestVerifyFailsWithoutSecret() {
	token, err := s.service.Issue()
	s.Require().NoError(err)

	svc := New(Config{}, s.clock)
	_, err = svc.Verify(token)
	s.ErrorIs(err, ErrSecretNotConfigured)
}

// verifyForged signs an arbitrary payload with the service secret and
// verifies the resulting token, returning the verification error
func (s *ServiceSuite) verifyForged(payload Payload) error {
	data, err := json.Marshal(payload)
	s.Require().NoError(err)

	encoded := base64.RawURLEncoding.EncodeToString(data)
	signature := base64.RawURLEncoding.EncodeToString(s.service.sign(encoded))

	_, err = s.service.Verify(encoded + "." + signature)
	return err
}
