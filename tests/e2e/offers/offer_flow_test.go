//go:build e2e

package offers_test

import (
	"fmt"
	"net/http"
	"testing"

	"eventcrm/internal/handler/dto/request"
	resdto "eventcrm/internal/handler/dto/response"
	"eventcrm/tests/common/authtest"
	"eventcrm/tests/common/httptest"
	"eventcrm/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type offerFlowSuite struct {
	e2e.SharedSuite
}

func TestOfferFlowSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(offerFlowSuite))
}

func (s *offerFlowSuite) createDraft(token string) resdto.DraftResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/drafts", nil, token)
	var draft resdto.DraftResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &draft)
	require.NotEmpty(t, draft.ID)
	return draft
}

func (s *offerFlowSuite) listProducts(token string) []resdto.ProductResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/products", nil, token)
	var products []resdto.ProductResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &products)
	require.NotEmpty(t, products, "reference products missing")
	return products
}

func (s *offerFlowSuite) TestDraftToSentOffer() {
	s.Run("full flow: draft, edit, save, inspect", func() {
		t := s.T()
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "sales@example.com", "sales")

		draft := s.createDraft(token)
		products := s.listProducts(token)
		product := products[0]

		// add a catalog product
		addURL := fmt.Sprintf("/api/drafts/%s/items", draft.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, addURL,
			request.AddProductRequest{ProductID: product.ID}, token)
		var updated resdto.DraftResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
		require.Len(t, updated.Items, 1)
		require.Equal(t, product.BasePrice, updated.Items[0].Subtotal)

		// adding the same product again merges into one line
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, addURL,
			request.AddProductRequest{ProductID: product.ID}, token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
		require.Len(t, updated.Items, 1)
		require.Equal(t, float64(2), updated.Items[0].Quantity)

		// bump quantity, apply a discount and attach equipment; subtotal must follow
		qty, discount := 3.0, 10.0
		equipment := []uuid.UUID{uuid.New(), uuid.New()}
		itemURL := fmt.Sprintf("/api/drafts/%s/items/%s", draft.ID, updated.Items[0].ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, itemURL,
			request.UpdateDraftItemRequest{Quantity: &qty, DiscountPercent: &discount, EquipmentIDs: equipment}, token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
		expected := qty * product.BasePrice * 0.9
		require.InDelta(t, expected, updated.Items[0].Subtotal, 1e-9)
		require.InDelta(t, expected, updated.Total, 1e-9)
		require.Equal(t, equipment, updated.Items[0].EquipmentIDs)

		// persist the draft as an offer
		saveURL := fmt.Sprintf("/api/drafts/%s/save", draft.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, saveURL,
			request.SaveDraftRequest{Title: "Summer gala"}, token)
		var saved resdto.SaveDraftResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &saved)
		require.NotEmpty(t, saved.OfferID)

		// draft is gone once committed
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/drafts/"+draft.ID.String(), nil, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

		// the offer round-trips with items and total intact
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/offers/"+saved.OfferID.String(), nil, token)
		var offerRes resdto.OfferResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &offerRes)
		require.Equal(t, "Summer gala", offerRes.Title)
		require.Equal(t, "draft", offerRes.Status)
		require.Len(t, offerRes.Items, 1)
		require.InDelta(t, expected, offerRes.Total, 1e-9)

		// equipment references round-trip through persistence
		require.Equal(t, equipment, offerRes.Items[0].EquipmentIDs)

		// and shows up in the owner's listing
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/offers", nil, token)
		var listing []resdto.OfferResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &listing)
		require.Len(t, listing, 1)
	})

	s.Run("custom item commit", func() {
		t := s.T()
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "sales@example.com", "sales")
		draft := s.createDraft(token)

		name := "Custom pyrotechnics"
		qty, price := 2.0, 500.0
		customURL := fmt.Sprintf("/api/drafts/%s/custom-item", draft.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, customURL,
			request.CustomItemRequest{Name: &name, Quantity: &qty, UnitPrice: &price}, token)
		var updated resdto.DraftResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
		require.Equal(t, name, updated.CustomItem.Name)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, customURL+"/commit", nil, token)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
		require.Len(t, updated.Items, 1)
		require.Equal(t, name, updated.Items[0].Name)
		require.Nil(t, updated.Items[0].ProductID)
		require.InDelta(t, qty*price, updated.Items[0].Subtotal, 1e-9)

		// the scratch pad resets after commit
		require.Empty(t, updated.CustomItem.Name)
	})

	s.Run("saving an empty draft is rejected", func() {
		t := s.T()
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "sales@example.com", "sales")
		draft := s.createDraft(token)

		saveURL := fmt.Sprintf("/api/drafts/%s/save", draft.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, saveURL,
			request.SaveDraftRequest{Title: "Empty"}, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("drafts and offers are owner scoped", func() {
		t := s.T()
		ownerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "owner@example.com", "sales")
		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", "sales")

		draft := s.createDraft(ownerToken)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/drafts/"+draft.ID.String(), nil, otherToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		products := s.listProducts(ownerToken)
		addURL := fmt.Sprintf("/api/drafts/%s/items", draft.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, addURL,
			request.AddProductRequest{ProductID: products[0].ID}, ownerToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		saveURL := fmt.Sprintf("/api/drafts/%s/save", draft.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, saveURL,
			request.SaveDraftRequest{Title: "Private"}, ownerToken)
		var saved resdto.SaveDraftResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &saved)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/offers/"+saved.OfferID.String(), nil, otherToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("oversight listing is manager gated", func() {
		t := s.T()
		salesToken := authtest.CreateAndLogin(t, s.DB, s.Router, "sales@example.com", "sales")
		managerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "manager@example.com", "manager")

		draft := s.createDraft(salesToken)
		products := s.listProducts(salesToken)
		addURL := fmt.Sprintf("/api/drafts/%s/items", draft.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, addURL,
			request.AddProductRequest{ProductID: products[0].ID}, salesToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		saveURL := fmt.Sprintf("/api/drafts/%s/save", draft.ID)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, saveURL,
			request.SaveDraftRequest{Title: "Team review"}, salesToken)
		var saved resdto.SaveDraftResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &saved)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/oversight/offers", nil, salesToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/oversight/offers", nil, managerToken)
		var listing []resdto.OfferResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &listing)
		require.Len(t, listing, 1)
		require.Equal(t, saved.OfferID, listing[0].ID)
	})
}
