package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/datafair/df-marketplace/internal/api/middleware"
	"github.com/datafair/df-marketplace/internal/domain"
	"github.com/datafair/df-marketplace/internal/ledger"
	"github.com/datafair/df-marketplace/internal/logger"
	"github.com/datafair/df-marketplace/internal/messaging"
	"github.com/datafair/df-marketplace/internal/uri"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// Register assigns a role to the authenticated caller
	// POST /api/v1/accounts/register
	Register(c *gin.Context)

	// GetAccount retrieves an account by address
	// GET /api/v1/accounts/:address
	GetAccount(c *gin.Context)

	// GetBalance retrieves the withdrawable balance of an address
	// GET /api/v1/accounts/:address/balance
	GetBalance(c *gin.Context)

	// GetAccountAssets retrieves every asset listed by an address
	// GET /api/v1/accounts/:address/assets
	GetAccountAssets(c *gin.Context)

	// GetAccountPurchases retrieves every asset purchased by an address
	// GET /api/v1/accounts/:address/purchases
	GetAccountPurchases(c *gin.Context)

	// GetAccountWithdrawals retrieves the payout receipts of an address
	// GET /api/v1/accounts/:address/withdrawals
	GetAccountWithdrawals(c *gin.Context)

	// ListAsset creates a new asset listing owned by the caller
	// POST /api/v1/assets
	ListAsset(c *gin.Context)

	// GetActiveAssets retrieves the purchasable catalog
	// GET /api/v1/assets?category=<category>&limit=<limit>&offset=<offset>
	GetActiveAssets(c *gin.Context)

	// GetAsset retrieves a single asset by id
	// GET /api/v1/assets/:id
	GetAsset(c *gin.Context)

	// UpdateAssetPrice changes the listed price. Owner only.
	// PATCH /api/v1/assets/:id/price
	UpdateAssetPrice(c *gin.Context)

	// ToggleAssetAvailability flips the active flag. Owner only.
	// POST /api/v1/assets/:id/toggle
	ToggleAssetAvailability(c *gin.Context)

	// PurchaseAsset buys an active asset for the calling company
	// POST /api/v1/assets/:id/purchase
	PurchaseAsset(c *gin.Context)

	// GetAssetContent resolves the content pointer for the owner or a purchaser
	// GET /api/v1/assets/:id/content
	GetAssetContent(c *gin.Context)

	// Withdraw drains the caller's balance through the payment channel
	// POST /api/v1/withdrawals
	Withdraw(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	ledger    ledger.Ledger
	resolver  uri.Resolver
	publisher messaging.Publisher
}

// NewHandler creates a new REST API handler
func NewHandler(l ledger.Ledger, resolver uri.Resolver, publisher messaging.Publisher) Handler {
	return &handler{
		ledger:    l,
		resolver:  resolver,
		publisher: publisher,
	}
}

// Register assigns a role to the authenticated caller
func (h *handler) Register(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondBadRequest(c, "Caller identity is required")
		return
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	account, err := h.ledger.Register(c.Request.Context(), caller, domain.Role(req.Role))
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAccountResponse(account))
}

// GetAccount retrieves an account by address
func (h *handler) GetAccount(c *gin.Context) {
	address, ok := parseAddressParam(c)
	if !ok {
		return
	}

	account, err := h.ledger.GetAccount(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, "Failed to get account")
		return
	}
	if account == nil {
		respondNotFound(c, "Account not found")
		return
	}

	c.JSON(http.StatusOK, toAccountResponse(account))
}

// GetBalance retrieves the withdrawable balance of an address
func (h *handler) GetBalance(c *gin.Context) {
	address, ok := parseAddressParam(c)
	if !ok {
		return
	}

	balance, err := h.ledger.GetBalance(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		Address: address.Normalized().String(),
		Balance: domain.FormatAmount(balance),
	})
}

// GetAccountAssets retrieves every asset listed by an address
func (h *handler) GetAccountAssets(c *gin.Context) {
	address, ok := parseAddressParam(c)
	if !ok {
		return
	}

	assets, err := h.ledger.GetAssetsOwnedBy(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, "Failed to get assets")
		return
	}

	c.JSON(http.StatusOK, toAssetListResponse(assets, uint64(len(assets))))
}

// GetAccountPurchases retrieves every asset purchased by an address
func (h *handler) GetAccountPurchases(c *gin.Context) {
	address, ok := parseAddressParam(c)
	if !ok {
		return
	}

	assets, err := h.ledger.GetAssetsPurchasedBy(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, "Failed to get purchases")
		return
	}

	c.JSON(http.StatusOK, toAssetListResponse(assets, uint64(len(assets))))
}

// GetAccountWithdrawals retrieves the payout receipts of an address
func (h *handler) GetAccountWithdrawals(c *gin.Context) {
	address, ok := parseAddressParam(c)
	if !ok {
		return
	}

	withdrawals, err := h.ledger.GetWithdrawals(c.Request.Context(), address)
	if err != nil {
		respondInternalError(c, err, "Failed to get withdrawals")
		return
	}

	response := make([]WithdrawalResponse, len(withdrawals))
	for i := range withdrawals {
		response[i] = toWithdrawalResponse(&withdrawals[i])
	}

	c.JSON(http.StatusOK, gin.H{"withdrawals": response})
}

// ListAsset creates a new asset listing owned by the caller
func (h *handler) ListAsset(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondBadRequest(c, "Caller identity is required")
		return
	}

	var req ListAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	price, _ := domain.ParseAmount(req.Price)

	asset, err := h.ledger.ListAsset(c.Request.Context(), ledger.ListAssetInput{
		Owner:          caller,
		Name:           req.Name,
		Description:    req.Description,
		Category:       domain.Category(req.Category),
		ContentPointer: req.ContentPointer,
		Price:          price,
		Metadata:       req.Metadata,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	h.publishEvent(c.Request.Context(), &domain.MarketEvent{
		Type:    domain.EventAssetListed,
		Actor:   caller,
		AssetID: domain.AssetID(asset.ID),
		Amount:  asset.Price,
	})

	c.JSON(http.StatusCreated, toAssetResponse(asset))
}

// GetActiveAssets retrieves the purchasable catalog
func (h *handler) GetActiveAssets(c *gin.Context) {
	filter := ledger.ActiveAssetFilter{Limit: 50}

	if raw := c.Query("category"); raw != "" {
		category := domain.Category(raw)
		if !category.Valid() {
			respondValidationError(c, "unknown category "+raw)
			return
		}
		filter.Category = &category
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > 200 {
			respondValidationError(c, "limit must be between 1 and 200")
			return
		}
		filter.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondValidationError(c, "invalid offset")
			return
		}
		filter.Offset = offset
	}

	assets, total, err := h.ledger.GetActiveAssets(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "Failed to get assets")
		return
	}

	c.JSON(http.StatusOK, toAssetListResponse(assets, total))
}

// GetAsset retrieves a single asset by id
func (h *handler) GetAsset(c *gin.Context) {
	assetID, ok := parseAssetIDParam(c)
	if !ok {
		return
	}

	asset, err := h.ledger.GetAsset(c.Request.Context(), assetID)
	if err != nil {
		respondInternalError(c, err, "Failed to get asset")
		return
	}
	if asset == nil {
		respondNotFound(c, "Asset not found")
		return
	}

	c.JSON(http.StatusOK, toAssetResponse(asset))
}

// UpdateAssetPrice changes the listed price. Owner only.
func (h *handler) UpdateAssetPrice(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondBadRequest(c, "Caller identity is required")
		return
	}

	assetID, ok := parseAssetIDParam(c)
	if !ok {
		return
	}

	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	price, _ := domain.ParseAmount(req.Price)

	asset, err := h.ledger.UpdateAssetPrice(c.Request.Context(), caller, assetID, price)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	h.publishEvent(c.Request.Context(), &domain.MarketEvent{
		Type:    domain.EventAssetPriceUpdated,
		Actor:   caller,
		AssetID: assetID,
		Amount:  asset.Price,
	})

	c.JSON(http.StatusOK, toAssetResponse(asset))
}

// ToggleAssetAvailability flips the active flag. Owner only.
func (h *handler) ToggleAssetAvailability(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondBadRequest(c, "Caller identity is required")
		return
	}

	assetID, ok := parseAssetIDParam(c)
	if !ok {
		return
	}

	asset, err := h.ledger.ToggleAssetAvailability(c.Request.Context(), caller, assetID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	h.publishEvent(c.Request.Context(), &domain.MarketEvent{
		Type:    domain.EventAssetToggled,
		Actor:   caller,
		AssetID: assetID,
	})

	c.JSON(http.StatusOK, toAssetResponse(asset))
}

// PurchaseAsset buys an active asset for the calling company
func (h *handler) PurchaseAsset(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondBadRequest(c, "Caller identity is required")
		return
	}

	assetID, ok := parseAssetIDParam(c)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	payment, _ := domain.ParseAmount(req.PaymentAmount)

	purchase, err := h.ledger.BuyAsset(c.Request.Context(), ledger.BuyAssetInput{
		Buyer:   caller,
		AssetID: assetID,
		Payment: payment,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	h.publishEvent(c.Request.Context(), &domain.MarketEvent{
		Type:    domain.EventAssetPurchased,
		Actor:   caller,
		AssetID: assetID,
		Amount:  purchase.PaymentAmount,
	})

	c.JSON(http.StatusCreated, toPurchaseResponse(purchase))
}

// GetAssetContent resolves the content pointer for the owner or a purchaser
func (h *handler) GetAssetContent(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondBadRequest(c, "Caller identity is required")
		return
	}

	assetID, ok := parseAssetIDParam(c)
	if !ok {
		return
	}

	allowed, err := h.ledger.HasAccess(c.Request.Context(), caller, assetID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	if !allowed {
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Content access requires ownership or purchase")
		return
	}

	asset, err := h.ledger.GetAsset(c.Request.Context(), assetID)
	if err != nil {
		respondInternalError(c, err, "Failed to get asset")
		return
	}
	if asset == nil {
		respondNotFound(c, "Asset not found")
		return
	}

	resolved, err := h.resolver.Resolve(c.Request.Context(), asset.ContentPointer)
	if err != nil {
		respondWithError(c, http.StatusBadGateway, errCodeBadGateway, "Content is currently unreachable", err.Error())
		return
	}

	c.JSON(http.StatusOK, ContentResponse{
		AssetID:     asset.ID,
		DataURL:     resolved.DataURL,
		MetadataURL: resolved.MetadataURL,
		Metadata:    resolved.Metadata,
	})
}

// Withdraw drains the caller's balance through the payment channel
func (h *handler) Withdraw(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		respondBadRequest(c, "Caller identity is required")
		return
	}

	withdrawal, err := h.ledger.Withdraw(c.Request.Context(), caller)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	h.publishEvent(c.Request.Context(), &domain.MarketEvent{
		Type:   domain.EventFundsWithdrawn,
		Actor:  caller,
		Amount: withdrawal.Amount,
		TxHash: withdrawal.TxHash,
	})

	c.JSON(http.StatusCreated, toWithdrawalResponse(withdrawal))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// publishEvent emits a market event after the ledger mutation committed.
// Failures are logged, never surfaced; the ledger is already durable.
func (h *handler) publishEvent(ctx context.Context, event *domain.MarketEvent) {
	if h.publisher == nil {
		return
	}

	event.ID = ulid.Make().String()
	event.Timestamp = time.Now().UTC()

	if err := h.publisher.PublishEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("event_type", string(event.Type)),
			zap.String("actor", event.Actor.String()))
	}
}

func parseAddressParam(c *gin.Context) (domain.Address, bool) {
	address := domain.Address(c.Param("address"))
	if !address.Valid() {
		respondBadRequest(c, "Invalid account address")
		return "", false
	}
	return address, true
}

func parseAssetIDParam(c *gin.Context) (domain.AssetID, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid asset id")
		return 0, false
	}
	return domain.AssetID(id), true
}
