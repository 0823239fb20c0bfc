package handlers

import (
	"errors"
	"net/http"

	"crestgold_backend/internal/config"
	"crestgold_backend/internal/ledger"
	"crestgold_backend/internal/proofstore"
	"crestgold_backend/internal/service"
	"crestgold_backend/internal/session"
	"crestgold_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Store    *session.Store
	Purchase *service.PurchaseService
	Requests *service.RequestService
	Stats    *service.StatsService
	Proofs   *proofstore.Store
	Hub      *ws.Hub
	AdminPIN string
	Eco      config.Economy
}

func NewHandler(store *session.Store, requests *service.RequestService, stats *service.StatsService, hub *ws.Hub, adminPIN string, eco config.Economy) *Handler {
	return &Handler{
		Store:    store,
		Purchase: service.NewPurchaseService(),
		Requests: requests,
		Stats:    stats,
		Proofs:   proofstore.New(),
		Hub:      hub,
		AdminPIN: adminPIN,
		Eco:      eco,
	}
}

// getSession resolves the authenticated miner session from the gin context.
func (h *Handler) getSession(c *gin.Context) (*session.Session, bool) {
	idVal, ok := c.Get("session_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	id, ok := idVal.(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	s, ok := h.Store.Get(id)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session not found"})
		return nil, false
	}
	return s, true
}

// fail maps ledger errors to HTTP status codes with the standard error
// envelope.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrCapacityExceeded),
		errors.Is(err, ledger.ErrDuplicateDailyDeposit),
		errors.Is(err, ledger.ErrRequestResolved):
		status = http.StatusConflict
	case errors.Is(err, ledger.ErrBelowMinimum),
		errors.Is(err, ledger.ErrInsufficientBalance),
		errors.Is(err, ledger.ErrIncompleteBankDetails),
		errors.Is(err, ledger.ErrNoGeodesAvailable):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrUnknownUpgrade),
		errors.Is(err, ledger.ErrRequestNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
