package rest

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/datafair/df-marketplace/internal/domain"
	"github.com/datafair/df-marketplace/internal/ledger/schema"
)

// RegisterRequest is the body of POST /api/v1/accounts/register
type RegisterRequest struct {
	Role string `json:"role" binding:"required"`
}

// Validate checks the request fields
func (r *RegisterRequest) Validate() error {
	if !domain.Role(r.Role).Valid() {
		return fmt.Errorf("role must be %q or %q", domain.RoleUser, domain.RoleCompany)
	}
	return nil
}

// ListAssetRequest is the body of POST /api/v1/assets
type ListAssetRequest struct {
	Name           string         `json:"name" binding:"required"`
	Description    string         `json:"description" binding:"required"`
	Category       string         `json:"category" binding:"required"`
	ContentPointer string         `json:"content_pointer" binding:"required"`
	Price          string         `json:"price" binding:"required"`
	Metadata       datatypes.JSON `json:"metadata"`
}

// Validate checks the request fields
func (r *ListAssetRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Description == "" {
		return fmt.Errorf("description is required")
	}
	if !domain.Category(r.Category).Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if r.ContentPointer == "" {
		return fmt.Errorf("content_pointer is required")
	}
	if _, err := domain.ParseAmount(r.Price); err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	return nil
}

// UpdatePriceRequest is the body of PATCH /api/v1/assets/:id/price
type UpdatePriceRequest struct {
	Price string `json:"price" binding:"required"`
}

// Validate checks the request fields
func (r *UpdatePriceRequest) Validate() error {
	if _, err := domain.ParseAmount(r.Price); err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	return nil
}

// PurchaseRequest is the body of POST /api/v1/assets/:id/purchase
type PurchaseRequest struct {
	PaymentAmount string `json:"payment_amount" binding:"required"`
}

// Validate checks the request fields
func (r *PurchaseRequest) Validate() error {
	if _, err := domain.ParseAmount(r.PaymentAmount); err != nil {
		return fmt.Errorf("invalid payment_amount: %w", err)
	}
	return nil
}

// AccountResponse is the wire form of an account
type AccountResponse struct {
	Address   string    `json:"address"`
	Role      string    `json:"role"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// AssetResponse is the wire form of an asset listing. The content pointer is
// omitted; it is only disclosed through the content endpoint.
type AssetResponse struct {
	ID           uint64         `json:"id"`
	OwnerAddress string         `json:"owner_address"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Category     string         `json:"category"`
	Price        string         `json:"price"`
	Active       bool           `json:"active"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// AssetListResponse is a paginated asset collection
type AssetListResponse struct {
	Assets []AssetResponse `json:"assets"`
	Total  uint64          `json:"total"`
}

// PurchaseResponse is the wire form of a purchase receipt
type PurchaseResponse struct {
	AssetID       uint64    `json:"asset_id"`
	BuyerAddress  string    `json:"buyer_address"`
	PriceCredited string    `json:"price_credited"`
	PaymentAmount string    `json:"payment_amount"`
	CreatedAt     time.Time `json:"created_at"`
}

// WithdrawalResponse is the wire form of a payout receipt
type WithdrawalResponse struct {
	Reference string    `json:"reference"`
	Amount    string    `json:"amount"`
	TxHash    string    `json:"tx_hash"`
	CreatedAt time.Time `json:"created_at"`
}

// BalanceResponse is the wire form of an account balance
type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// ContentResponse is the wire form of resolved asset content
type ContentResponse struct {
	AssetID     uint64                 `json:"asset_id"`
	DataURL     string                 `json:"data_url"`
	MetadataURL string                 `json:"metadata_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

func toAccountResponse(account *schema.Account) AccountResponse {
	return AccountResponse{
		Address:   account.Address,
		Role:      string(account.Role),
		Balance:   account.Balance,
		CreatedAt: account.CreatedAt,
	}
}

func toAssetResponse(asset *schema.Asset) AssetResponse {
	return AssetResponse{
		ID:           asset.ID,
		OwnerAddress: asset.OwnerAddress,
		Name:         asset.Name,
		Description:  asset.Description,
		Category:     string(asset.Category),
		Price:        asset.Price,
		Active:       asset.Active,
		Metadata:     asset.Metadata,
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}
}

func toAssetListResponse(assets []schema.Asset, total uint64) AssetListResponse {
	response := AssetListResponse{
		Assets: make([]AssetResponse, len(assets)),
		Total:  total,
	}
	for i := range assets {
		response.Assets[i] = toAssetResponse(&assets[i])
	}
	return response
}

func toPurchaseResponse(purchase *schema.Purchase) PurchaseResponse {
	return PurchaseResponse{
		AssetID:       purchase.AssetID,
		BuyerAddress:  purchase.BuyerAddress,
		PriceCredited: purchase.PriceCredited,
		PaymentAmount: purchase.PaymentAmount,
		CreatedAt:     purchase.CreatedAt,
	}
}

func toWithdrawalResponse(withdrawal *schema.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		Reference: withdrawal.Reference,
		Amount:    withdrawal.Amount,
		TxHash:    withdrawal.TxHash,
		CreatedAt: withdrawal.CreatedAt,
	}
}
