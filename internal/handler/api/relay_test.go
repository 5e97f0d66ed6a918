//go:build unit

package api_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"eventcrm/internal/handler"
	"eventcrm/internal/handler/api"
	reqdto "eventcrm/internal/handler/dto/request"
	"eventcrm/internal/infra/mailer"
	"eventcrm/internal/pkg/config"
	"eventcrm/internal/pkg/errs"
	"eventcrm/internal/usecase/commands"
	"eventcrm/tests/common/builder"
	"eventcrm/tests/common/httptest"
	"eventcrm/tests/common/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const relaySecret = "test-relay-secret"

type stubMailer struct {
	messageID string
	err       error

	gotCfg mailer.SMTPConfig
	gotMsg mailer.Message
	calls  int
}

func (s *stubMailer) Send(_ context.Context, cfg mailer.SMTPConfig, msg mailer.Message) (string, error) {
	s.calls++
	s.gotCfg = cfg
	s.gotMsg = msg
	if s.err != nil {
		return "", s.err
	}
	return s.messageID, nil
}

type RelayHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	mailer *stubMailer
}

func (s *RelayHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mailer = &stubMailer{messageID: "<generated@localhost>"}

	cfg := config.RelayOnlyConfig{
		Log:   config.NewTestConfig().Log,
		CORS:  config.CORSConfig{},
		Relay: config.RelayConfig{Port: "3001", Secret: relaySecret},
	}
	relayHandler := api.NewRelayHandler(commands.NewRelayCommands(s.mailer))
	handler.NewRelayRouter(s.router, cfg, relayHandler)
}

func TestRelayHandlerSuite(t *testing.T) {
	suite.Run(t, new(RelayHandlerTestSuite))
}

func (s *RelayHandlerTestSuite) TestAuthentication() {
	url := "/api/send-email"
	body := builder.NewRelayRequestBuilder().BuildDTO()

	s.Run("error: 401 without authorization header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertRelayError(s.T(), rec, http.StatusUnauthorized, "Missing authorization header")
	})

	s.Run("error: 401 with non-bearer authorization", func() {
		jsonBody, err := json.Marshal(body)
		s.Require().NoError(err)

		req := nethttptest.NewRequest(http.MethodPost, url, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		httptest.AssertRelayError(s.T(), rec, http.StatusUnauthorized, "Invalid authorization format")
	})

	s.Run("error: 401 with wrong secret", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "wrong-secret")
		httptest.AssertRelayError(s.T(), rec, http.StatusUnauthorized, "Invalid relay secret")
	})

	s.Run("stub mailer is never reached without auth", func() {
		s.Equal(0, s.mailer.calls)
	})
}

func (s *RelayHandlerTestSuite) TestSendEmailValidation() {
	url := "/api/send-email"
	base := builder.NewRelayRequestBuilder().BuildDTO()

	s.Run("error: 400 for each missing required field", func() {
		cases := []struct {
			name  string
			field string
		}{
			{name: "missing smtpConfig", field: "smtpConfig"},
			{name: "missing to", field: "to"},
			{name: "missing subject", field: "subject"},
			{name: "missing body", field: "body"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				payload := testutil.DtoMap(s.T(), base, testutil.Field(tc.field, nil))
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, payload, relaySecret)
				httptest.AssertRelayError(s.T(), rec, http.StatusBadRequest, "Missing required field: "+tc.field)
			})
		}
	})

	s.Run("error: smtpConfig reported first when several fields missing", func() {
		payload := testutil.DtoMap(s.T(), base,
			testutil.Field("smtpConfig", nil), testutil.Field("to", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, payload, relaySecret)
		httptest.AssertRelayError(s.T(), rec, http.StatusBadRequest, "Missing required field: smtpConfig")
	})

	s.Run("error: 400 for invalid SMTP configuration", func() {
		invalid := builder.NewRelayRequestBuilder().WithHost("").BuildDTO()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, invalid, relaySecret)
		httptest.AssertRelayError(s.T(), rec, http.StatusBadRequest, "Invalid SMTP configuration:")
		s.Equal(0, s.mailer.calls, "invalid config must not reach the mailer")
	})

	s.Run("error: 400 for undecodable attachment", func() {
		req := base
		req.Attachments = []reqdto.RelayAttachment{{Filename: "offer.pdf", Content: "%%% not base64 %%%"}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, relaySecret)
		httptest.AssertRelayError(s.T(), rec, http.StatusBadRequest, "Invalid attachment content")
	})
}

func (s *RelayHandlerTestSuite) TestSendEmailDelivery() {
	url := "/api/send-email"

	s.Run("success: 200 with message id", func() {
		req := builder.NewRelayRequestBuilder().BuildDTO()
		content := base64.StdEncoding.EncodeToString([]byte("pdf bytes"))
		req.Attachments = []reqdto.RelayAttachment{
			{Filename: "offer.pdf", Content: content, ContentType: "application/pdf"},
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, relaySecret)

		var response struct {
			Success   bool   `json:"success"`
			MessageID string `json:"messageId"`
			Message   string `json:"message"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Success)
		s.Equal("<generated@localhost>", response.MessageID)
		s.Equal("Email sent successfully", response.Message)

		s.Equal(1, s.mailer.calls)
		s.Equal("smtp.example.com", s.mailer.gotCfg.Host)
		s.Equal("client@example.com", s.mailer.gotMsg.To)
		s.Len(s.mailer.gotMsg.Attachments, 1)
		s.Equal([]byte("pdf bytes"), s.mailer.gotMsg.Attachments[0].Content)
	})

	s.Run("error: 500 with reason when SMTP connection fails", func() {
		s.mailer.err = errs.Mark(
			errs.New("dial tcp 127.0.0.1:2525: connection refused"),
			mailer.ErrConnectionFailed,
		)

		req := builder.NewRelayRequestBuilder().BuildDTO()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, relaySecret)
		httptest.AssertRelayError(s.T(), rec, http.StatusInternalServerError, "SMTP connection failed:")
		httptest.AssertRelayError(s.T(), rec, http.StatusInternalServerError, "connection refused")
	})

	s.Run("error: 500 with leaf message when sending fails", func() {
		s.mailer.err = errs.Mark(errs.New("550 mailbox unavailable"), mailer.ErrSendFailed)

		req := builder.NewRelayRequestBuilder().BuildDTO()
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, req, relaySecret)
		httptest.AssertRelayError(s.T(), rec, http.StatusInternalServerError, "550 mailbox unavailable")
	})
}

func (s *RelayHandlerTestSuite) TestHealth() {
	s.Run("success: health is reachable without auth", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil, "")

		var response struct {
			Status    string `json:"status"`
			Service   string `json:"service"`
			Timestamp string `json:"timestamp"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("ok", response.Status)
		s.Equal("smtp-relay-worker", response.Service)

		_, err := time.Parse(time.RFC3339, response.Timestamp)
		s.NoError(err)
	})

	s.Run("error: unknown routes return the relay 404 shape", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/unknown", nil, relaySecret)
		httptest.AssertRelayError(s.T(), rec, http.StatusNotFound, "Not found")
	})
}
