package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yaelahbim/aryastore/internal/cart"
	"github.com/yaelahbim/aryastore/internal/catalog"
	"github.com/yaelahbim/aryastore/internal/order"
	"github.com/yaelahbim/aryastore/internal/stores/kafka"
	"github.com/yaelahbim/aryastore/middleware"
	"github.com/yaelahbim/aryastore/pkg/ctxmanage"
)

// SlotFactory builds the durable cart slot for one checkout session.
type SlotFactory func(sessionID string) cart.Slot

type Handler struct {
	cfg      *catalog.Config
	oConf    order.Conf
	k        *kafka.Conf // nil when eventing is disabled
	sessions *sessionStore
}

func NewHandler(cfg *catalog.Config, oConf order.Conf, k *kafka.Conf, sessions *sessionStore) *Handler {
	return &Handler{
		cfg:      cfg,
		oConf:    oConf,
		k:        k,
		sessions: sessions,
	}
}

func API(endpointPrefix string, cfg *catalog.Config, slots SlotFactory, k *kafka.Conf, grace time.Duration) *gin.Engine {

	r := gin.New()
	mode := os.Getenv("GIN_MODE")
	if mode == gin.ReleaseMode {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	oConf, err := order.NewConf(cfg)
	if err != nil {
		panic(err)
	}
	sessions := newSessionStore(slots, grace)
	h := NewHandler(cfg, oConf, k, sessions)

	//apply middleware to all the endpoints using r.Use
	r.Use(middleware.Logger(), gin.Recovery())
	r.GET("/ping", healthCheck)
	v1 := r.Group(endpointPrefix)
	{
		v1.GET("/cart", h.GetCart)
		v1.PUT("/cart/items/:id", h.UpdateItem)
		v1.DELETE("/cart/items/:id", h.RemoveItem)
		v1.POST("/checkout", h.Checkout)
		v1.POST("/back", h.Back)
	}

	return r
}

func healthCheck(c *gin.Context) {
	traceId := ctxmanage.GetTraceIdOfRequest(c)

	fmt.Println("healthCheck handler ", traceId)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
