package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/datafair/df-marketplace/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Account registration (caller identity from JWT subject)
		v1.POST("/accounts/register", middleware.Auth(authCfg), handler.Register)

		// Account endpoints (public read access)
		v1.GET("/accounts/:address", handler.GetAccount)
		v1.GET("/accounts/:address/balance", handler.GetBalance)
		v1.GET("/accounts/:address/assets", handler.GetAccountAssets)
		v1.GET("/accounts/:address/purchases", handler.GetAccountPurchases)
		v1.GET("/accounts/:address/withdrawals", handler.GetAccountWithdrawals)

		// Asset catalog (public read access, active listings only)
		v1.GET("/assets", handler.GetActiveAssets)
		v1.GET("/assets/:id", handler.GetAsset)

		// Asset lifecycle (sellers)
		v1.POST("/assets", middleware.Auth(authCfg), handler.ListAsset)
		v1.PATCH("/assets/:id/price", middleware.Auth(authCfg), handler.UpdateAssetPrice)
		v1.POST("/assets/:id/toggle", middleware.Auth(authCfg), handler.ToggleAssetAvailability)

		// Purchasing and content access (buyers)
		v1.POST("/assets/:id/purchase", middleware.Auth(authCfg), handler.PurchaseAsset)
		v1.GET("/assets/:id/content", middleware.Auth(authCfg), handler.GetAssetContent)

		// Payouts
		v1.POST("/withdrawals", middleware.Auth(authCfg), handler.Withdraw)
	}
}
