package handlers

import (
	"crypto/subtle"
	"net/http"

	"crestgold_backend/internal/domain"
	"crestgold_backend/internal/logger"
	"crestgold_backend/internal/service"
	"crestgold_backend/internal/session"
	"crestgold_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type adminLoginRequest struct {
	PIN string `json:"pin"`
}

// AdminLogin exchanges the operator PIN for an operator token.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.PIN), []byte(h.AdminPIN)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid pin"})
		return
	}

	token, err := service.GenerateToken("OPERATOR", service.RoleOperator)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// AdminStats aggregates platform figures for the operator dashboard.
func (h *Handler) AdminStats(c *gin.Context) {
	var (
		pendingDeposits    int
		pendingWithdrawals int
		totalGold          int64
		totalCash          float64
	)
	h.Store.Each(func(s *session.Session) {
		d, w := s.Book.PendingCounts()
		pendingDeposits += d
		pendingWithdrawals += w
		snap := s.Ledger.Snapshot()
		totalGold += snap.Gold
		totalCash += snap.Cash
	})

	c.JSON(http.StatusOK, gin.H{
		"user_count":          h.Stats.UserCount(),
		"live_sessions":       h.Store.Count(),
		"pending_deposits":    pendingDeposits,
		"pending_withdrawals": pendingWithdrawals,
		"gold_in_circulation": totalGold,
		"cash_in_circulation": totalCash,
	})
}

// AdminRequests lists every deposit and withdrawal request across sessions.
func (h *Handler) AdminRequests(c *gin.Context) {
	deposits := []*domain.DepositRequest{}
	withdrawals := []*domain.WithdrawalRequest{}
	h.Store.Each(func(s *session.Session) {
		deposits = append(deposits, s.Book.Deposits()...)
		withdrawals = append(withdrawals, s.Book.Withdrawals()...)
	})

	c.JSON(http.StatusOK, gin.H{
		"deposits":    deposits,
		"withdrawals": withdrawals,
	})
}

// ApproveDeposit settles a pending deposit: cash credit plus the one-time
// referral commission on the user's first approved deposit.
func (h *Handler) ApproveDeposit(c *gin.Context) {
	h.resolveDeposit(c, true)
}

// DeclineDeposit resolves a pending deposit with no balance effect.
func (h *Handler) DeclineDeposit(c *gin.Context) {
	h.resolveDeposit(c, false)
}

func (h *Handler) resolveDeposit(c *gin.Context, approve bool) {
	id := c.Param("id")
	s, _, found := h.Store.FindDeposit(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}

	var err error
	outcome := "declined"
	if approve {
		outcome = "approved"
		err = s.Book.ApproveDeposit(id)
	} else {
		err = s.Book.DeclineDeposit(id)
	}
	if err != nil {
		fail(c, err)
		return
	}

	requestsResolved.WithLabelValues("deposit", outcome).Inc()
	logger.Info("deposit resolved", "request", id, "session", s.ID, "outcome", outcome)
	h.Hub.SendTo(s.ID, ws.Marshal(ws.EventRequestSeen, ws.RequestUpdatePayload{
		Kind:   "deposit",
		ID:     id,
		Status: outcome,
	}))

	c.JSON(http.StatusOK, gin.H{"status": outcome})
}

// ApproveWithdrawal resolves a pending payout; balances were debited at
// submission so approval has no further effect on them.
func (h *Handler) ApproveWithdrawal(c *gin.Context) {
	h.resolveWithdrawal(c, true)
}

// DeclineWithdrawal refunds the debited gold and bundled referral NGN.
func (h *Handler) DeclineWithdrawal(c *gin.Context) {
	h.resolveWithdrawal(c, false)
}

func (h *Handler) resolveWithdrawal(c *gin.Context, approve bool) {
	id := c.Param("id")
	s, _, found := h.Store.FindWithdrawal(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}

	var err error
	outcome := "declined"
	if approve {
		outcome = "approved"
		err = s.Book.ApproveWithdrawal(id)
	} else {
		err = s.Book.DeclineWithdrawal(id)
	}
	if err != nil {
		fail(c, err)
		return
	}

	requestsResolved.WithLabelValues("withdrawal", outcome).Inc()
	logger.Info("withdrawal resolved", "request", id, "session", s.ID, "outcome", outcome)
	h.Hub.SendTo(s.ID, ws.Marshal(ws.EventRequestSeen, ws.RequestUpdatePayload{
		Kind:   "withdrawal",
		ID:     id,
		Status: outcome,
	}))

	c.JSON(http.StatusOK, gin.H{"status": outcome})
}
