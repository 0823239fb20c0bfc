package handlers

import (
	"io"
	"net/http"
	"strings"

	"crestgold_backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// SubmitDeposit accepts a multipart proof upload for an NGN miner and
// schedules the funding request. The request appears in the history after
// the settlement delay.
func (h *Handler) SubmitDeposit(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	upgradeID := c.PostForm("upgrade_id")
	if upgradeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "upgrade_id required"})
		return
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof image required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof unreadable"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, 8<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "proof unreadable"})
		return
	}

	ref := h.Proofs.Put(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)

	settleIn, err := h.Requests.SubmitDeposit(s, upgradeID, ref)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":     "submitted",
		"settles_in": settleIn.Milliseconds(),
	})
}

type withdrawalSubmission struct {
	AmountGold      string             `json:"amount_gold"`
	IncludeReferral bool               `json:"include_referral"`
	BankDetails     domain.BankDetails `json:"bank_details"`
}

// SubmitWithdrawal validates and records a payout request, debiting the
// ledger immediately.
func (h *Handler) SubmitWithdrawal(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	var req withdrawalSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	w, err := h.Requests.SubmitWithdrawal(s, req.AmountGold, req.IncludeReferral, req.BankDetails)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request": w,
		"gold":    s.Ledger.Gold(),
	})
}

// WithdrawalEligibility reports whether the payout form should be shown.
func (h *Handler) WithdrawalEligibility(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"eligible": h.Requests.WithdrawalEligible(s),
	})
}

// History returns deposit and withdrawal requests, newest first.
func (h *Handler) History(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deposits":    s.Book.Deposits(),
		"withdrawals": s.Book.Withdrawals(),
	})
}

// ReferralLink returns the miner's shareable referral URL.
func (h *Handler) ReferralLink(c *gin.Context) {
	s, ok := h.getSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"link":       "https://crestminer.gold/ref/" + strings.ToLower(s.ID),
		"commission": h.Eco.ReferralCommission,
	})
}
