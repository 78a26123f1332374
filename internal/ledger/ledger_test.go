package ledger_test

import (
	"context"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/datafair/df-marketplace/internal/domain"
	"github.com/datafair/df-marketplace/internal/ledger"
	"github.com/datafair/df-marketplace/internal/ledger/schema"
	"github.com/datafair/df-marketplace/internal/mocks"
)

const (
	sellerAddress  = "0x1111111111111111111111111111111111111111"
	buyerAddress   = "0x2222222222222222222222222222222222222222"
	otherAddress   = "0x3333333333333333333333333333333333333333"
	unknownAddress = "0x4444444444444444444444444444444444444444"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// registerAccount registers an address with the given role and fails the test
// on error
func registerAccount(t *testing.T, l ledger.Ledger, address domain.Address, role domain.Role) *schema.Account {
	account, err := l.Register(context.Background(), address, role)
	require.NoError(t, err)
	require.NotNil(t, account)
	return account
}

// buildListAssetInput creates a valid asset listing input
func buildListAssetInput(owner domain.Address, price int64) ledger.ListAssetInput {
	return ledger.ListAssetInput{
		Owner:          owner,
		Name:           "City Mobility Traces",
		Description:    "Anonymized vehicle GPS traces",
		Category:       domain.CategoryTechnology,
		ContentPointer: "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
		Price:          big.NewInt(price),
		Metadata:       datatypes.JSON([]byte(`{"rows": 120000}`)),
	}
}

// listAsset lists an asset for a registered user and fails the test on error
func listAsset(t *testing.T, l ledger.Ledger, owner domain.Address, price int64) *schema.Asset {
	asset, err := l.ListAsset(context.Background(), buildListAssetInput(owner, price))
	require.NoError(t, err)
	require.NotNil(t, asset)
	return asset
}

// seedMarket registers a seller and buyer and lists one asset
func seedMarket(t *testing.T, l ledger.Ledger, price int64) *schema.Asset {
	registerAccount(t, l, sellerAddress, domain.RoleUser)
	registerAccount(t, l, buyerAddress, domain.RoleCompany)
	return listAsset(t, l, sellerAddress, price)
}

// =============================================================================
// Registration
// =============================================================================

func testRegister(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	account, err := l.Register(ctx, sellerAddress, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, sellerAddress, account.Address)
	assert.Equal(t, domain.RoleUser, account.Role)
	assert.Equal(t, "0", account.Balance)

	// Registration is permanent: a second attempt fails even with a new role
	_, err = l.Register(ctx, sellerAddress, domain.RoleCompany)
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	// The stored role is unchanged
	got, err := l.GetAccount(ctx, sellerAddress)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.RoleUser, got.Role)
}

func testRegisterValidation(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	_, err := l.Register(ctx, "not-an-address", domain.RoleUser)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = l.Register(ctx, sellerAddress, domain.Role("auditor"))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = l.Register(ctx, sellerAddress, domain.RoleUnregistered)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func testRegisterNormalizesAddress(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	mixed := domain.Address("0xAaAaAAaaAaaAAAaaaaAAaAaaAAaaaaaAaAaAaaAA")
	account, err := l.Register(ctx, mixed, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", account.Address)

	// Lookups with any casing resolve to the same row
	got, err := l.GetAccount(ctx, mixed)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, account.Address, got.Address)
}

func testGetAccountUnknown(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)

	account, err := l.GetAccount(context.Background(), unknownAddress)
	require.NoError(t, err)
	assert.Nil(t, account)
}

func testGetBalance(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	// Unregistered addresses have a zero balance, not an error
	balance, err := l.GetBalance(ctx, unknownAddress)
	require.NoError(t, err)
	assert.Zero(t, balance.Sign())

	registerAccount(t, l, sellerAddress, domain.RoleUser)
	balance, err = l.GetBalance(ctx, sellerAddress)
	require.NoError(t, err)
	assert.Zero(t, balance.Sign())
}

// =============================================================================
// Listing
// =============================================================================

func testListAsset(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	registerAccount(t, l, sellerAddress, domain.RoleUser)

	asset, err := l.ListAsset(ctx, buildListAssetInput(sellerAddress, 1000))
	require.NoError(t, err)
	assert.NotZero(t, asset.ID)
	assert.Equal(t, sellerAddress, asset.OwnerAddress)
	assert.Equal(t, "1000", asset.Price)
	assert.True(t, asset.Active)

	got, err := l.GetAsset(ctx, domain.AssetID(asset.ID))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, asset.Name, got.Name)
	assert.JSONEq(t, `{"rows": 120000}`, string(got.Metadata))
}

func testListAssetAuthorization(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	// Unregistered callers cannot list
	_, err := l.ListAsset(ctx, buildListAssetInput(sellerAddress, 1000))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Companies cannot list either
	registerAccount(t, l, buyerAddress, domain.RoleCompany)
	_, err = l.ListAsset(ctx, buildListAssetInput(buyerAddress, 1000))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func testListAssetValidation(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	registerAccount(t, l, sellerAddress, domain.RoleUser)

	input := buildListAssetInput(sellerAddress, 1000)
	input.Name = ""
	_, err := l.ListAsset(ctx, input)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	input = buildListAssetInput(sellerAddress, 1000)
	input.Description = ""
	_, err = l.ListAsset(ctx, input)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	input = buildListAssetInput(sellerAddress, 1000)
	input.ContentPointer = ""
	_, err = l.ListAsset(ctx, input)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	input = buildListAssetInput(sellerAddress, 1000)
	input.Category = "weather"
	_, err = l.ListAsset(ctx, input)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	input = buildListAssetInput(sellerAddress, 1000)
	input.Price = big.NewInt(0)
	_, err = l.ListAsset(ctx, input)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	input = buildListAssetInput(sellerAddress, 1000)
	input.Price = nil
	_, err = l.ListAsset(ctx, input)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func testUpdateAssetPrice(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	registerAccount(t, l, sellerAddress, domain.RoleUser)
	registerAccount(t, l, otherAddress, domain.RoleUser)
	asset := listAsset(t, l, sellerAddress, 1000)

	updated, err := l.UpdateAssetPrice(ctx, sellerAddress, domain.AssetID(asset.ID), big.NewInt(2500))
	require.NoError(t, err)
	assert.Equal(t, "2500", updated.Price)

	// Only the owner may reprice
	_, err = l.UpdateAssetPrice(ctx, otherAddress, domain.AssetID(asset.ID), big.NewInt(1))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = l.UpdateAssetPrice(ctx, sellerAddress, domain.AssetID(asset.ID), big.NewInt(0))
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = l.UpdateAssetPrice(ctx, sellerAddress, 999999, big.NewInt(100))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testToggleAssetAvailability(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	registerAccount(t, l, sellerAddress, domain.RoleUser)
	registerAccount(t, l, otherAddress, domain.RoleUser)
	asset := listAsset(t, l, sellerAddress, 1000)

	toggled, err := l.ToggleAssetAvailability(ctx, sellerAddress, domain.AssetID(asset.ID))
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	toggled, err = l.ToggleAssetAvailability(ctx, sellerAddress, domain.AssetID(asset.ID))
	require.NoError(t, err)
	assert.True(t, toggled.Active)

	_, err = l.ToggleAssetAvailability(ctx, otherAddress, domain.AssetID(asset.ID))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = l.ToggleAssetAvailability(ctx, sellerAddress, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// Purchasing
// =============================================================================

func testBuyAsset(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	asset := seedMarket(t, l, 1000)

	purchase, err := l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1000),
	})
	require.NoError(t, err)
	assert.NotZero(t, purchase.ID)
	assert.Equal(t, asset.ID, purchase.AssetID)
	assert.Equal(t, buyerAddress, purchase.BuyerAddress)
	assert.Equal(t, "1000", purchase.PriceCredited)
	assert.Equal(t, "1000", purchase.PaymentAmount)

	// The full listed price lands on the seller balance
	balance, err := l.GetBalance(ctx, sellerAddress)
	require.NoError(t, err)
	assert.Equal(t, "1000", balance.String())
}

func testBuyAssetSurplusRetained(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	asset := seedMarket(t, l, 1000)

	// Overpayment is recorded on the purchase but the seller is credited
	// exactly the listed price
	purchase, err := l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1500),
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", purchase.PriceCredited)
	assert.Equal(t, "1500", purchase.PaymentAmount)

	balance, err := l.GetBalance(ctx, sellerAddress)
	require.NoError(t, err)
	assert.Equal(t, "1000", balance.String())
}

func testBuyAssetAuthorization(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	asset := seedMarket(t, l, 1000)
	registerAccount(t, l, otherAddress, domain.RoleUser)

	// Unregistered callers cannot buy
	_, err := l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   unknownAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Users cannot buy, only companies
	_, err = l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   otherAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func testBuyAssetEdgeCases(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	asset := seedMarket(t, l, 1000)

	// Missing asset
	_, err := l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: 999999,
		Payment: big.NewInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Insufficient payment
	_, err = l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(999),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)

	// Nil payment
	_, err = l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	// Deactivated assets are not purchasable
	_, err = l.ToggleAssetAvailability(ctx, sellerAddress, domain.AssetID(asset.ID))
	require.NoError(t, err)
	_, err = l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrInactive)
}

func testBuyAssetSelfPurchase(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	registerAccount(t, l, buyerAddress, domain.RoleCompany)

	// Listing requires the user role, so a company-owned asset can only be
	// seeded directly. The self-purchase guard still has to hold.
	asset := schema.Asset{
		OwnerAddress:   buyerAddress,
		Name:           "Own Data",
		Description:    "Owned by the buyer",
		Category:       domain.CategoryOther,
		ContentPointer: "QmSelf",
		Price:          "1000",
		Active:         true,
	}
	require.NoError(t, db.Create(&asset).Error)

	_, err := l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1000),
	})
	assert.ErrorIs(t, err, domain.ErrSelfPurchase)
}

func testBuyAssetTwice(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	asset := seedMarket(t, l, 1000)

	input := ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1000),
	}
	_, err := l.BuyAsset(ctx, input)
	require.NoError(t, err)

	_, err = l.BuyAsset(ctx, input)
	assert.ErrorIs(t, err, domain.ErrAlreadyPurchased)

	// The failed repeat purchase must not credit the seller again
	balance, err := l.GetBalance(ctx, sellerAddress)
	require.NoError(t, err)
	assert.Equal(t, "1000", balance.String())
}

// =============================================================================
// Withdrawals
// =============================================================================

func testWithdraw(t *testing.T, db *gorm.DB) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	channel := mocks.NewMockPaymentChannel(ctrl)
	l := ledger.NewPGLedger(db, channel)
	ctx := context.Background()

	asset := seedMarket(t, l, 1000)
	_, err := l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1000),
	})
	require.NoError(t, err)

	channel.EXPECT().
		Transfer(gomock.Any(), domain.Address(sellerAddress), big.NewInt(1000)).
		Return("0xabc123", nil)

	withdrawal, err := l.Withdraw(ctx, sellerAddress)
	require.NoError(t, err)
	assert.NotEmpty(t, withdrawal.Reference)
	assert.Equal(t, sellerAddress, withdrawal.AccountAddress)
	assert.Equal(t, "1000", withdrawal.Amount)
	assert.Equal(t, "0xabc123", withdrawal.TxHash)

	// The full balance was drained
	balance, err := l.GetBalance(ctx, sellerAddress)
	require.NoError(t, err)
	assert.Zero(t, balance.Sign())

	// A second withdrawal has nothing left to pay out
	_, err = l.Withdraw(ctx, sellerAddress)
	assert.ErrorIs(t, err, domain.ErrNothingToWithdraw)

	receipts, err := l.GetWithdrawals(ctx, sellerAddress)
	require.NoError(t, err)
	require.Len(t, receipts, 1)
	assert.Equal(t, withdrawal.Reference, receipts[0].Reference)
}

func testWithdrawTransferFailure(t *testing.T, db *gorm.DB) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	channel := mocks.NewMockPaymentChannel(ctrl)
	l := ledger.NewPGLedger(db, channel)
	ctx := context.Background()

	asset := seedMarket(t, l, 1000)
	_, err := l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1000),
	})
	require.NoError(t, err)

	channel.EXPECT().
		Transfer(gomock.Any(), domain.Address(sellerAddress), big.NewInt(1000)).
		Return("", fmt.Errorf("rpc unavailable"))

	_, err = l.Withdraw(ctx, sellerAddress)
	assert.ErrorIs(t, err, domain.ErrExternalTransferFailed)

	// The failed transfer must leave the balance untouched
	balance, err := l.GetBalance(ctx, sellerAddress)
	require.NoError(t, err)
	assert.Equal(t, "1000", balance.String())

	receipts, err := l.GetWithdrawals(ctx, sellerAddress)
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func testWithdrawNothing(t *testing.T, db *gorm.DB) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The payment channel must never be touched for empty balances
	channel := mocks.NewMockPaymentChannel(ctrl)
	l := ledger.NewPGLedger(db, channel)
	ctx := context.Background()

	_, err := l.Withdraw(ctx, unknownAddress)
	assert.ErrorIs(t, err, domain.ErrNothingToWithdraw)

	registerAccount(t, l, sellerAddress, domain.RoleUser)
	_, err = l.Withdraw(ctx, sellerAddress)
	assert.ErrorIs(t, err, domain.ErrNothingToWithdraw)
}

// =============================================================================
// Catalog Queries
// =============================================================================

func testGetActiveAssets(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	registerAccount(t, l, sellerAddress, domain.RoleUser)

	finance := buildListAssetInput(sellerAddress, 100)
	finance.Name = "Retail Transactions"
	finance.Category = domain.CategoryFinance
	financeAsset, err := l.ListAsset(ctx, finance)
	require.NoError(t, err)

	tech := buildListAssetInput(sellerAddress, 200)
	techAsset, err := l.ListAsset(ctx, tech)
	require.NoError(t, err)

	hidden := buildListAssetInput(sellerAddress, 300)
	hidden.Name = "Hidden"
	hiddenAsset, err := l.ListAsset(ctx, hidden)
	require.NoError(t, err)
	_, err = l.ToggleAssetAvailability(ctx, sellerAddress, domain.AssetID(hiddenAsset.ID))
	require.NoError(t, err)

	// Deactivated assets are excluded; newest first
	assets, total, err := l.GetActiveAssets(ctx, ledger.ActiveAssetFilter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, assets, 2)
	assert.Equal(t, techAsset.ID, assets[0].ID)
	assert.Equal(t, financeAsset.ID, assets[1].ID)

	// Category filter
	category := domain.CategoryFinance
	assets, total, err = l.GetActiveAssets(ctx, ledger.ActiveAssetFilter{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, assets, 1)
	assert.Equal(t, financeAsset.ID, assets[0].ID)

	// Pagination keeps the total intact
	assets, total, err = l.GetActiveAssets(ctx, ledger.ActiveAssetFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	require.Len(t, assets, 1)
	assert.Equal(t, financeAsset.ID, assets[0].ID)
}

func testGetAssetsByAccount(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	asset := seedMarket(t, l, 1000)
	second := listAsset(t, l, sellerAddress, 2000)

	owned, err := l.GetAssetsOwnedBy(ctx, sellerAddress)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, asset.ID, owned[0].ID)
	assert.Equal(t, second.ID, owned[1].ID)

	purchased, err := l.GetAssetsPurchasedBy(ctx, buyerAddress)
	require.NoError(t, err)
	assert.Empty(t, purchased)

	_, err = l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1000),
	})
	require.NoError(t, err)

	purchased, err = l.GetAssetsPurchasedBy(ctx, buyerAddress)
	require.NoError(t, err)
	require.Len(t, purchased, 1)
	assert.Equal(t, asset.ID, purchased[0].ID)
}

func testHasAccess(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	asset := seedMarket(t, l, 1000)
	registerAccount(t, l, otherAddress, domain.RoleUser)

	// The owner always has access
	ok, err := l.HasAccess(ctx, sellerAddress, domain.AssetID(asset.ID))
	require.NoError(t, err)
	assert.True(t, ok)

	// Non-purchasers do not
	ok, err = l.HasAccess(ctx, buyerAddress, domain.AssetID(asset.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = l.BuyAsset(ctx, ledger.BuyAssetInput{
		Buyer:   buyerAddress,
		AssetID: domain.AssetID(asset.ID),
		Payment: big.NewInt(1000),
	})
	require.NoError(t, err)

	ok, err = l.HasAccess(ctx, buyerAddress, domain.AssetID(asset.ID))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.HasAccess(ctx, otherAddress, domain.AssetID(asset.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = l.HasAccess(ctx, sellerAddress, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// =============================================================================
// Content Health
// =============================================================================

func testContentHealth(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	registerAccount(t, l, sellerAddress, domain.RoleUser)
	asset := listAsset(t, l, sellerAddress, 1000)
	assetID := domain.AssetID(asset.ID)

	health, err := l.GetContentHealth(ctx, assetID)
	require.NoError(t, err)
	assert.Nil(t, health)

	// Never-probed active assets are due immediately
	due, err := l.GetAssetsForHealthCheck(ctx, time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, asset.ID, due[0].ID)

	workingURL := "https://ipfs.io/ipfs/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
	checkedAt := time.Now().UTC()
	err = l.UpsertContentHealth(ctx, ledger.ContentHealthInput{
		AssetID:    assetID,
		Status:     schema.HealthStatusHealthy,
		WorkingURL: &workingURL,
		CheckedAt:  checkedAt,
	})
	require.NoError(t, err)

	health, err = l.GetContentHealth(ctx, assetID)
	require.NoError(t, err)
	require.NotNil(t, health)
	assert.Equal(t, schema.HealthStatusHealthy, health.Status)
	require.NotNil(t, health.WorkingURL)
	assert.Equal(t, workingURL, *health.WorkingURL)
	assert.Nil(t, health.Error)
	assert.WithinDuration(t, checkedAt, health.LastCheckedAt, time.Second)

	// Freshly probed assets are no longer due
	due, err = l.GetAssetsForHealthCheck(ctx, time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	// A later broken probe replaces the healthy row
	probeErr := "no working IPFS gateway found"
	err = l.UpsertContentHealth(ctx, ledger.ContentHealthInput{
		AssetID:   assetID,
		Status:    schema.HealthStatusBroken,
		Error:     &probeErr,
		CheckedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	health, err = l.GetContentHealth(ctx, assetID)
	require.NoError(t, err)
	require.NotNil(t, health)
	assert.Equal(t, schema.HealthStatusBroken, health.Status)
	assert.Nil(t, health.WorkingURL)
	require.NotNil(t, health.Error)
	assert.Equal(t, probeErr, *health.Error)
}

func testGetAssetsForHealthCheckSkipsInactive(t *testing.T, db *gorm.DB) {
	l := ledger.NewPGLedger(db, nil)
	ctx := context.Background()

	registerAccount(t, l, sellerAddress, domain.RoleUser)
	asset := listAsset(t, l, sellerAddress, 1000)
	_, err := l.ToggleAssetAvailability(ctx, sellerAddress, domain.AssetID(asset.ID))
	require.NoError(t, err)

	due, err := l.GetAssetsForHealthCheck(ctx, time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

// RunLedgerTests runs the ledger test suite against a database implementation
func RunLedgerTests(t *testing.T, initDB func(t *testing.T) *gorm.DB, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, *gorm.DB)
	}{
		{"Register", testRegister},
		{"RegisterValidation", testRegisterValidation},
		{"RegisterNormalizesAddress", testRegisterNormalizesAddress},
		{"GetAccountUnknown", testGetAccountUnknown},
		{"GetBalance", testGetBalance},
		{"ListAsset", testListAsset},
		{"ListAssetAuthorization", testListAssetAuthorization},
		{"ListAssetValidation", testListAssetValidation},
		{"UpdateAssetPrice", testUpdateAssetPrice},
		{"ToggleAssetAvailability", testToggleAssetAvailability},
		{"BuyAsset", testBuyAsset},
		{"BuyAssetSurplusRetained", testBuyAssetSurplusRetained},
		{"BuyAssetAuthorization", testBuyAssetAuthorization},
		{"BuyAssetEdgeCases", testBuyAssetEdgeCases},
		{"BuyAssetSelfPurchase", testBuyAssetSelfPurchase},
		{"BuyAssetTwice", testBuyAssetTwice},
		{"Withdraw", testWithdraw},
		{"WithdrawTransferFailure", testWithdrawTransferFailure},
		{"WithdrawNothing", testWithdrawNothing},
		{"GetActiveAssets", testGetActiveAssets},
		{"GetAssetsByAccount", testGetAssetsByAccount},
		{"HasAccess", testHasAccess},
		{"ContentHealth", testContentHealth},
		{"GetAssetsForHealthCheckSkipsInactive", testGetAssetsForHealthCheckSkipsInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, db)
		})
	}
}
