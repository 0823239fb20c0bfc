package handlers

import (
	"net/http"

	"crestgold_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ListUpgrades returns the catalog with current session pricing and
// affordability.
func (h *Handler) ListUpgrades(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	snap := s.Ledger.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"upgrades":    snap.Upgrades,
		"click_power": snap.ClickPower,
		"daily_limit": snap.DailyLimit,
	})
}

// BuyUpgrade purchases one unit of the upgrade in the path parameter.
//
// A gold purchase that is unaffordable answers 200 with
// outcome "rejected" and no error body. That asymmetry with the NGN path
// matches the product behaviour: the client only enables the buy action
// when it is affordable.
func (h *Handler) BuyUpgrade(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	outcome, price, err := h.Purchase.Purchase(s, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	resp := gin.H{
		"outcome": outcome,
		"ledger":  s.Ledger.Snapshot(),
	}
	if outcome == service.OutcomeDepositRequired {
		resp["amount_ngn"] = price
	}
	c.JSON(http.StatusOK, resp)
}
