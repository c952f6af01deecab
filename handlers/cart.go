package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yaelahbim/aryastore/internal/cart"
	"github.com/yaelahbim/aryastore/internal/catalog"
	"github.com/yaelahbim/aryastore/pkg/ctxmanage"
	"github.com/yaelahbim/aryastore/pkg/logkey"
)

type cartItemView struct {
	ProductID        string              `json:"product_id"`
	Name             string              `json:"name"`
	Type             catalog.ProductType `json:"type"`
	Image            string              `json:"image,omitempty"`
	Description      string              `json:"description,omitempty"`
	Quantity         int                 `json:"quantity"`
	UnitPrice        int                 `json:"unit_price"`
	OriginalPrice    int                 `json:"original_price,omitempty"`
	LineTotal        int                 `json:"line_total"`
	LineTotalDisplay string              `json:"line_total_display"`
}

// cartView is everything the checkout page renders: the joined cart lines,
// totals, the minimum-purchase state and the configured form texts.
type cartView struct {
	Items             []cartItemView     `json:"items"`
	TotalItems        int                `json:"total_items"`
	TotalPrice        int                `json:"total_price"`
	TotalPriceDisplay string             `json:"total_price_display"`
	MinPurchase       int                `json:"min_purchase"`
	Shortfall         int                `json:"shortfall"`
	MeetsMinPurchase  bool               `json:"meets_min_purchase"`
	FormLabels        catalog.FormLabels `json:"form_labels"`
	CheckoutButton    string             `json:"checkout_button"`
}

func (h *Handler) cartView(ct cart.Cart) cartView {
	items := make([]cartItemView, 0, ct.Len())
	for _, e := range ct.Entries() {
		p, ok := h.cfg.Product(e.ProductID)
		if !ok {
			// Stale entry for a product no longer in the catalog; skip it
			// rather than fail the whole view.
			continue
		}
		lineTotal := p.Price * e.Quantity
		items = append(items, cartItemView{
			ProductID:        p.ID,
			Name:             p.Name,
			Type:             p.Type,
			Image:            p.Image,
			Description:      p.Description,
			Quantity:         e.Quantity,
			UnitPrice:        p.Price,
			OriginalPrice:    p.OriginalPrice,
			LineTotal:        lineTotal,
			LineTotalDisplay: cart.FormatPrice(lineTotal),
		})
	}

	totalItems := cart.TotalItems(ct)
	totalPrice := cart.TotalPrice(ct, h.cfg)
	minPurchase := h.cfg.StoreInfo.MinPurchase
	shortfall := minPurchase - totalItems
	if shortfall < 0 {
		shortfall = 0
	}

	return cartView{
		Items:             items,
		TotalItems:        totalItems,
		TotalPrice:        totalPrice,
		TotalPriceDisplay: cart.FormatPrice(totalPrice),
		MinPurchase:       minPurchase,
		Shortfall:         shortfall,
		MeetsMinPurchase:  totalItems >= minPurchase,
		FormLabels:        h.cfg.FormLabels,
		CheckoutButton:    h.cfg.Messages.CheckoutButton,
	}
}

// GetCart returns the checkout view model, or a landing redirect when there
// is no active session to review.
func (h *Handler) GetCart(c *gin.Context) {
	_, store, ok := h.session(c, false)
	if !ok || !store.Active() {
		c.JSON(http.StatusOK, landingRedirect(true))
		return
	}
	c.JSON(http.StatusOK, h.cartView(store.Cart()))
}

// UpdateItem sets the quantity of one product. A quantity of zero or less
// removes the entry. A request with no session starts one, so the landing
// page can fill the cart through the same endpoint.
func (h *Handler) UpdateItem(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	productID := c.Param("id")
	if _, ok := h.cfg.Product(productID); !ok {
		slog.Error("product not found", slog.String(logkey.TraceID, traceId), slog.String("ProductID", productID))
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var request struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		slog.Error("invalid request body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	_, store, _ := h.session(c, true)
	ct := store.UpdateQuantity(c.Request.Context(), productID, request.Quantity)

	slog.Info("cart quantity updated", slog.String(logkey.TraceID, traceId),
		slog.String("ProductID", productID), slog.Int("Quantity", request.Quantity))

	c.JSON(http.StatusOK, h.cartView(ct))
}

// RemoveItem deletes one product from the cart.
func (h *Handler) RemoveItem(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	_, store, ok := h.session(c, false)
	if !ok || !store.Active() {
		c.JSON(http.StatusOK, landingRedirect(true))
		return
	}

	productID := c.Param("id")
	ct := store.RemoveItem(c.Request.Context(), productID)

	slog.Info("cart item removed", slog.String(logkey.TraceID, traceId), slog.String("ProductID", productID))

	c.JSON(http.StatusOK, h.cartView(ct))
}

// Back is the shopper's explicit return to the landing page: a recoverable
// push, not a replace. The cart stays as it is.
func (h *Handler) Back(c *gin.Context) {
	c.JSON(http.StatusOK, landingRedirect(false))
}
