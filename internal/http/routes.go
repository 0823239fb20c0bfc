package http

import (
	"crestgold_backend/internal/config"
	"crestgold_backend/internal/http/handlers"
	"crestgold_backend/internal/http/middleware"
	"crestgold_backend/internal/service"
	"crestgold_backend/internal/session"
	"crestgold_backend/internal/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the whole API surface onto the gin engine.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store *session.Store, requests *service.RequestService, stats *service.StatsService, hub *ws.Hub, version string) *handlers.Handler {
	h := handlers.NewHandler(store, requests, stats, hub, cfg.AdminPIN, cfg.Economy)
	healthHandler := handlers.NewHealthHandler(version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Session bootstrap
	v1.POST("/auth", h.Auth)

	// Miner surface
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.POST("/mine", middleware.JWT(), h.Mine)
	v1.POST("/bonus/claim", middleware.JWT(), h.ClaimBonus)
	v1.GET("/upgrades", middleware.JWT(), h.ListUpgrades)
	v1.POST("/upgrades/:id/buy", middleware.JWT(), h.BuyUpgrade)
	v1.POST("/geodes/analyze", middleware.JWT(), h.AnalyzeGeode)

	// Funding and payout requests
	v1.POST("/deposits", middleware.JWT(), h.SubmitDeposit)
	v1.GET("/history", middleware.JWT(), h.History)
	v1.GET("/withdrawals/eligibility", middleware.JWT(), h.WithdrawalEligibility)
	v1.POST("/withdrawals", middleware.JWT(), h.SubmitWithdrawal)

	// Referral system
	v1.GET("/referral/link", middleware.JWT(), h.ReferralLink)

	// Operator surface
	v1.POST("/admin/login", h.AdminLogin)
	admin := v1.Group("/admin")
	admin.Use(middleware.JWT(), middleware.RequireOperator())
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/requests", h.AdminRequests)
		admin.POST("/deposits/:id/approve", h.ApproveDeposit)
		admin.POST("/deposits/:id/decline", h.DeclineDeposit)
		admin.POST("/withdrawals/:id/approve", h.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/decline", h.DeclineWithdrawal)
	}

	// Live event feed
	r.GET("/ws", h.WS())

	return h
}
