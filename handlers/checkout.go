package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yaelahbim/aryastore/internal/cart"
	"github.com/yaelahbim/aryastore/internal/order"
	"github.com/yaelahbim/aryastore/internal/stores/kafka"
	"github.com/yaelahbim/aryastore/pkg/ctxmanage"
	"github.com/yaelahbim/aryastore/pkg/logkey"
)

// Checkout validates the submission, composes the WhatsApp order message
// and returns the deep link. Dispatch is fire-and-forget: the cart is
// cleared and the session torn down as soon as the link is handed over.
// A refused submission changes nothing.
func (h *Handler) Checkout(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	var request struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		slog.Error("invalid request body", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	contact := order.Contact{
		Name:  request.Name,
		Email: request.Email,
		Phone: order.SanitizePhone(request.Phone),
	}

	sessionID, store, ok := h.session(c, false)
	if !ok || !store.Active() {
		c.JSON(http.StatusOK, landingRedirect(true))
		return
	}

	ct := store.Cart()
	if err := h.oConf.Validate(ct, contact); err != nil {
		slog.Error("checkout refused", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"message": h.oConf.UserMessage(err)})
		return
	}

	message := h.oConf.ComposeMessage(ct, contact)
	whatsappURL := h.oConf.WhatsAppLink(message)
	orderId := uuid.NewString()

	if h.k != nil {
		h.publishOrderPlaced(orderId, ct, traceId)
	}

	// The sink is not awaited; clear the cart now and end the session.
	store.Clear(c.Request.Context())
	h.sessions.drop(sessionID)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)

	slog.Info("order dispatched", slog.String(logkey.TraceID, traceId),
		slog.String("OrderID", orderId), slog.Int("TotalItems", cart.TotalItems(ct)))

	c.JSON(http.StatusOK, gin.H{
		"order_id":     orderId,
		"whatsapp_url": whatsappURL,
	})
}

// publishOrderPlaced emits the order event in the background; a failed
// produce is logged and otherwise ignored.
func (h *Handler) publishOrderPlaced(orderId string, ct cart.Cart, traceId string) {
	items := make([]kafka.OrderItem, 0, ct.Len())
	for _, e := range ct.Entries() {
		items = append(items, kafka.OrderItem{ProductID: e.ProductID, Quantity: e.Quantity})
	}
	event := kafka.OrderPlacedEvent{
		OrderID:    orderId,
		Items:      items,
		TotalItems: cart.TotalItems(ct),
		TotalPrice: cart.TotalPrice(ct, h.cfg),
		CreatedAt:  time.Now().UTC(),
	}

	go func() {
		jsonData, err := json.Marshal(event)
		if err != nil {
			slog.Error("failed to marshal order event", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			return
		}
		if err := h.k.ProduceMessage(kafka.TopicOrderPlaced, []byte(orderId), jsonData); err != nil {
			slog.Error("failed to produce order event", slog.String(logkey.TraceID, traceId), slog.String(logkey.ERROR, err.Error()))
			return
		}
		slog.Info("order event produced", slog.String(logkey.TraceID, traceId), slog.String("OrderID", orderId))
	}()
}
