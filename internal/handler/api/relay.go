package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "eventcrm/internal/handler/dto/request"
	"eventcrm/internal/infra/mailer"
	"eventcrm/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// RelayHandler serves the relay worker's wire contract. Response shapes are
// fixed: callers of the relay parse them literally, so this handler bypasses
// the regular error envelope.
type RelayHandler struct {
	relayCommands commands.RelayCommands
}

func NewRelayHandler(relayCommands commands.RelayCommands) *RelayHandler {
	return &RelayHandler{
		relayCommands: relayCommands,
	}
}

// @Summary Send an email through a caller-supplied SMTP server
// @Tags relay
// @Accept json
// @Produce json
// @Param request body reqdto.SendEmailRequest true "Message and SMTP credentials"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /api/send-email [post]
func (h *RelayHandler) SendEmail(c *gin.Context) {
	var req reqdto.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	if field := req.MissingField(); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing required field: " + field,
		})
		return
	}

	msg, err := req.ToMessage()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid attachment content",
		})
		return
	}

	messageID, err := h.relayCommands.SendEmail(c.Request.Context(), req.ToSMTPConfig(), msg)
	if err != nil {
		h.mapSendErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"messageId": messageID,
		"message":   "Email sent successfully",
	})
}

// @Summary Relay health check
// @Tags relay
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *RelayHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "smtp-relay-worker",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *RelayHandler) mapSendErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidSMTPConfig):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid SMTP configuration: " + rootMessage(err),
		})
	case errors.Is(err, mailer.ErrConnectionFailed):
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "SMTP connection failed: " + rootMessage(err),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   rootMessage(err),
		})
	}
}

// rootMessage strips marker wrappers so the caller sees the underlying
// transport failure, not the classification chain.
func rootMessage(err error) string {
	type causer interface {
		Unwrap() error
	}
	msg := err.Error()
	for {
		c, ok := err.(causer)
		if !ok {
			break
		}
		next := c.Unwrap()
		if next == nil {
			break
		}
		err = next
		msg = err.Error()
	}
	return msg
}
