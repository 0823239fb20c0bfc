package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"crestgold_backend/internal/ledger"
	"crestgold_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// Me returns the full ledger snapshot plus derived platform state.
func (h *Handler) Me(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                  s.ID,
		"ledger":              s.Ledger.Snapshot(),
		"notes":               s.Notes.Active(),
		"user_count":          h.Stats.UserCount(),
		"withdrawal_eligible": h.Requests.WithdrawalEligible(s),
	})
}

type mineRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Mine processes one mining click at the given screen coordinates.
func (h *Handler) Mine(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	var req mineRequest
	_ = c.ShouldBindJSON(&req) // coordinates are cosmetic, default to origin

	res, err := s.Ledger.Mine()
	if err != nil {
		if errors.Is(err, ledger.ErrCapacityExceeded) {
			s.Notes.Spawn("LIMIT REACHED", req.X, req.Y, "limit")
		}
		fail(c, err)
		return
	}

	if !res.Locked {
		minesTotal.Inc()
		goldMinted.Add(float64(res.Gain))
		if res.GeodeFound {
			geodesFound.Inc()
			s.Notes.Spawn("GEODE FOUND!", req.X, req.Y, "geode")
			h.Hub.SendTo(s.ID, ws.Marshal(ws.EventGeodeFound, gin.H{"geodes": s.Ledger.Geodes()}))
		} else {
			s.Notes.Spawn(fmt.Sprintf("+%d", res.Gain), req.X, req.Y, "gain")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"locked":      res.Locked,
		"gain":        res.Gain,
		"geode_found": res.GeodeFound,
		"gold":        s.Ledger.Gold(),
	})
}

// ClaimBonus credits the once-per-day flat gold bonus.
func (h *Handler) ClaimBonus(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	credited, claimed := s.Ledger.ClaimDailyBonus()
	c.JSON(http.StatusOK, gin.H{
		"claimed":  claimed,
		"credited": credited,
		"gold":     s.Ledger.Gold(),
	})
}

// AnalyzeGeode consumes one found geode for its reward value.
func (h *Handler) AnalyzeGeode(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	reward, err := s.Ledger.AnalyzeGeode()
	if err != nil {
		fail(c, err)
		return
	}
	goldMinted.Add(float64(reward))

	c.JSON(http.StatusOK, gin.H{
		"reward": reward,
		"gold":   s.Ledger.Gold(),
		"geodes": s.Ledger.Geodes(),
	})
}
