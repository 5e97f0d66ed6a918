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

type DraftHandler struct {
	draftCommands commands.DraftCommands
	draftQueries  queries.DraftQueries
}

func NewDraftHandler(draftCommands commands.DraftCommands, draftQueries queries.DraftQueries) *DraftHandler {
	return &DraftHandler{
		draftCommands: draftCommands,
		draftQueries:  draftQueries,
	}
}

// @Summary Create an empty offer draft
// @Tags drafts
// @Security BearerAuth
// @Produce json
// @Success 201 {object} resdto.DraftResponse
// @Router /api/drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	view, err := h.draftCommands.CreateDraft(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, resdto.FromDraftView(view))
}

// @Summary Get a draft
// @Tags drafts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} resdto.DraftResponse
// @Failure 404 {object} map[string]string
// @Router /api/drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	userID, draftID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}

	view, err := h.draftQueries.GetDraft(draftID, userID)
	if err != nil {
		h.mapDraftErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraftView(view))
}

// @Summary Add a catalog product to the draft
// @Tags drafts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body reqdto.AddProductRequest true "Product to add"
// @Success 200 {object} resdto.DraftResponse
// @Failure 404 {object} map[string]string
// @Router /api/drafts/{id}/items [post]
func (h *DraftHandler) AddProduct(c *gin.Context) {
	userID, draftID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}

	var req reqdto.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.draftCommands.AddProduct(c.Request.Context(), draftID, userID, req.ProductID)
	if err != nil {
		h.mapDraftErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraftView(view))
}

// @Summary Update a draft line item
// @Tags drafts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param itemId path string true "Item ID"
// @Param request body reqdto.UpdateDraftItemRequest true "Fields to update"
// @Success 200 {object} resdto.DraftResponse
// @Router /api/drafts/{id}/items/{itemId} [patch]
func (h *DraftHandler) UpdateItem(c *gin.Context) {
	userID, draftID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req reqdto.UpdateDraftItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.draftCommands.UpdateItem(c.Request.Context(), draftID, userID, itemID, req)
	if err != nil {
		h.mapDraftErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraftView(view))
}

// @Summary Remove a draft line item
// @Description Removing an already removed item is a no-op
// @Tags drafts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} resdto.DraftResponse
// @Router /api/drafts/{id}/items/{itemId} [delete]
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	userID, draftID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	view, err := h.draftCommands.RemoveItem(c.Request.Context(), draftID, userID, itemID)
	if err != nil {
		h.mapDraftErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraftView(view))
}

// @Summary Update the custom item scratch object
// @Tags drafts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body reqdto.CustomItemRequest true "Fields to merge"
// @Success 200 {object} resdto.DraftResponse
// @Router /api/drafts/{id}/custom-item [patch]
func (h *DraftHandler) SetCustomItem(c *gin.Context) {
	userID, draftID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}

	var req reqdto.CustomItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	view, err := h.draftCommands.SetCustomItem(c.Request.Context(), draftID, userID, req)
	if err != nil {
		h.mapDraftErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraftView(view))
}

// @Summary Commit the custom item into the draft
// @Tags drafts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} resdto.DraftResponse
// @Router /api/drafts/{id}/custom-item/commit [post]
func (h *DraftHandler) CommitCustomItem(c *gin.Context) {
	userID, draftID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}

	view, err := h.draftCommands.CommitCustomItem(c.Request.Context(), draftID, userID)
	if err != nil {
		h.mapDraftErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraftView(view))
}

// @Summary Reset the draft to its initial empty state
// @Tags drafts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} resdto.DraftResponse
// @Router /api/drafts/{id}/reset [post]
func (h *DraftHandler) ResetDraft(c *gin.Context) {
	userID, draftID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}

	view, err := h.draftCommands.ResetDraft(c.Request.Context(), draftID, userID)
	if err != nil {
		h.mapDraftErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDraftView(view))
}

// @Summary Discard the draft
// @Tags drafts
// @Security BearerAuth
// @Param id path string true "Draft ID"
// @Success 204 "No Content"
// @Router /api/drafts/{id} [delete]
func (h *DraftHandler) DiscardDraft(c *gin.Context) {
	userID, draftID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}

	if err := h.draftCommands.DiscardDraft(c.Request.Context(), draftID, userID); err != nil {
		h.mapDraftErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Save the draft as a persisted offer
// @Tags drafts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body reqdto.SaveDraftRequest true "Offer metadata"
// @Success 201 {object} resdto.SaveDraftResponse
// @Failure 422 {object} map[string]string
// @Router /api/drafts/{id}/save [post]
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	userID, draftID, ok := h.idsFromRequest(c)
	if !ok {
		return
	}

	var req reqdto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	offerID, err := h.draftCommands.SaveDraft(c.Request.Context(), draftID, userID, req)
	if err != nil {
		if errors.Is(err, commands.ErrEmptyDraft) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Draft has no items"})
			return
		}
		h.mapDraftErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.SaveDraftResponse{OfferID: offerID})
}

func (h *DraftHandler) idsFromRequest(c *gin.Context) (userID, draftID uuid.UUID, ok bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, uuid.Nil, false
	}

	draftID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draft ID"})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, draftID, true
}

func (h *DraftHandler) mapDraftErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrDraftNotFound), errors.Is(err, queries.ErrDraftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
	case errors.Is(err, commands.ErrDraftAccess), errors.Is(err, queries.ErrDraftAccess):
		c.JSON(http.StatusForbidden, gin.H{"error": "Draft belongs to another user"})
	case errors.Is(err, commands.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, commands.ErrInvalidItemInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid item values"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
