package api

import (
	"errors"
	"net/http"

	reqdto "eventcrm/internal/handler/dto/request"
	resdto "eventcrm/internal/handler/dto/response"
	"eventcrm/internal/handler/middleware"
	"eventcrm/internal/usecase/commands"
	"eventcrm/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OfferHandler struct {
	offerCommands commands.OfferCommands
	offerQueries  queries.OfferQueries
}

func NewOfferHandler(offerCommands commands.OfferCommands, offerQueries queries.OfferQueries) *OfferHandler {
	return &OfferHandler{
		offerCommands: offerCommands,
		offerQueries:  offerQueries,
	}
}

// @Summary List my offers
// @Tags offers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.OfferResponse
// @Router /api/offers [get]
func (h *OfferHandler) ListMyOffers(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.offerQueries.ListMyOffers(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromOfferViews(views))
}

// @Summary List every user's offers
// @Description Oversight listing for managers and admins
// @Tags offers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.OfferResponse
// @Failure 403 {object} map[string]string
// @Router /api/oversight/offers [get]
func (h *OfferHandler) ListAllOffers(c *gin.Context) {
	views, err := h.offerQueries.ListAllOffers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromOfferViews(views))
}

// @Summary Get an offer with its lines
// @Tags offers
// @Security BearerAuth
// @Produce json
// @Param id path string true "Offer ID"
// @Success 200 {object} resdto.OfferResponse
// @Failure 404 {object} map[string]string
// @Router /api/offers/{id} [get]
func (h *OfferHandler) GetOffer(c *gin.Context) {
	userID, offerID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}

	view, err := h.offerQueries.GetOffer(c.Request.Context(), offerID, userID)
	if err != nil {
		h.mapOfferErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromOfferView(view))
}

// @Summary Email an offer to a recipient
// @Description Sends through the configured mail relay using the sender's stored SMTP account
// @Tags offers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Offer ID"
// @Param request body reqdto.SendOfferRequest true "Recipient"
// @Success 200 {object} resdto.SendOfferResponse
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/offers/{id}/send [post]
func (h *OfferHandler) SendOffer(c *gin.Context) {
	userID, offerID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}

	var req reqdto.SendOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.offerCommands.SendOffer(c.Request.Context(), offerID, userID, req.To)
	if err != nil {
		h.mapOfferErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.SendOfferResponse{
		MessageID: result.MessageID,
		Recipient: result.Recipient,
	})
}

func (h *OfferHandler) idsFromRequest(c *gin.Context) (userID, offerID uuid.UUID, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, uuid.Nil, false
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, offerID, true
}

func (h *OfferHandler) mapOfferErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrOfferNotFound), errors.Is(err, queries.ErrOfferNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
	case errors.Is(err, commands.ErrOfferAccess), errors.Is(err, queries.ErrOfferAccess):
		c.JSON(http.StatusForbidden, gin.H{"error": "Offer belongs to another user"})
	case errors.Is(err, commands.ErrMailAccountNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No mail account configured"})
	case errors.Is(err, commands.ErrMailDelivery):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Email delivery failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
