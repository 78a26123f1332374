package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/datafair/df-marketplace/internal/domain"
	"github.com/datafair/df-marketplace/internal/ledger/schema"
	"github.com/datafair/df-marketplace/internal/logger"
	"github.com/datafair/df-marketplace/internal/payout"
)

type pgLedger struct {
	db      *gorm.DB
	payouts payout.PaymentChannel
}

// NewPGLedger creates a new PostgreSQL ledger instance
func NewPGLedger(db *gorm.DB, payouts payout.PaymentChannel) Ledger {
	return &pgLedger{db: db, payouts: payouts}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// Register assigns a role to an unregistered address
func (l *pgLedger) Register(ctx context.Context, address domain.Address, role domain.Role) (*schema.Account, error) {
	if !address.Valid() {
		return nil, fmt.Errorf("%w: invalid address %q", domain.ErrInvalidArgument, address)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", domain.ErrInvalidArgument, role)
	}

	account := schema.Account{
		Address: address.Normalized().String(),
		Role:    role,
		Balance: "0",
	}

	// ON CONFLICT DO NOTHING makes concurrent registrations race-safe: the
	// loser observes zero affected rows instead of a constraint error.
	result := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoNothing: true,
	}).Create(&account)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrAlreadyRegistered
	}

	return &account, nil
}

// GetAccount retrieves an account by address, nil if never registered
func (l *pgLedger) GetAccount(ctx context.Context, address domain.Address) (*schema.Account, error) {
	var account schema.Account
	err := l.db.WithContext(ctx).
		Where("address = ?", address.Normalized().String()).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetBalance returns the withdrawable balance for an address. Unregistered
// addresses have a zero balance.
func (l *pgLedger) GetBalance(ctx context.Context, address domain.Address) (*big.Int, error) {
	account, err := l.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return big.NewInt(0), nil
	}

	balance, err := domain.ParseAmount(account.Balance)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored balance: %w", err)
	}
	return balance, nil
}

// ListAsset creates a new asset listing owned by a registered user
func (l *pgLedger) ListAsset(ctx context.Context, input ListAssetInput) (*schema.Asset, error) {
	if input.Name == "" || input.Description == "" || input.ContentPointer == "" {
		return nil, fmt.Errorf("%w: name, description and content pointer are required", domain.ErrInvalidArgument)
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: invalid category %q", domain.ErrInvalidArgument, input.Category)
	}
	if input.Price == nil || input.Price.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}

	owner := input.Owner.Normalized().String()

	var asset schema.Asset
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account schema.Account
		if err := tx.Where("address = ?", owner).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUnauthorized
			}
			return fmt.Errorf("failed to get account: %w", err)
		}
		if account.Role != domain.RoleUser {
			return domain.ErrUnauthorized
		}

		asset = schema.Asset{
			OwnerAddress:   owner,
			Name:           input.Name,
			Description:    input.Description,
			Category:       input.Category,
			ContentPointer: input.ContentPointer,
			Price:          domain.FormatAmount(input.Price),
			Active:         true,
			Metadata:       input.Metadata,
		}
		if err := tx.Create(&asset).Error; err != nil {
			return fmt.Errorf("failed to create asset: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// UpdateAssetPrice changes the listed price of an asset. Owner only.
func (l *pgLedger) UpdateAssetPrice(ctx context.Context, caller domain.Address, assetID domain.AssetID, price *big.Int) (*schema.Asset, error) {
	if price == nil || price.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}

	var asset schema.Asset
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockAsset(tx, assetID)
		if err != nil {
			return err
		}
		if locked.OwnerAddress != caller.Normalized().String() {
			return domain.ErrUnauthorized
		}

		locked.Price = domain.FormatAmount(price)
		locked.UpdatedAt = time.Now()
		if err := tx.Save(locked).Error; err != nil {
			return fmt.Errorf("failed to update asset price: %w", err)
		}

		asset = *locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// ToggleAssetAvailability flips the active flag of an asset. Owner only.
func (l *pgLedger) ToggleAssetAvailability(ctx context.Context, caller domain.Address, assetID domain.AssetID) (*schema.Asset, error) {
	var asset schema.Asset
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockAsset(tx, assetID)
		if err != nil {
			return err
		}
		if locked.OwnerAddress != caller.Normalized().String() {
			return domain.ErrUnauthorized
		}

		locked.Active = !locked.Active
		locked.UpdatedAt = time.Now()
		if err := tx.Save(locked).Error; err != nil {
			return fmt.Errorf("failed to toggle asset availability: %w", err)
		}

		asset = *locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// BuyAsset purchases an active asset on behalf of a registered company.
//
// Locking order is fixed to avoid deadlocks: the asset row first, then the
// seller account row. The buyer account is read without a lock since roles
// never change after registration.
func (l *pgLedger) BuyAsset(ctx context.Context, input BuyAssetInput) (*schema.Purchase, error) {
	if input.Payment == nil || input.Payment.Sign() < 0 {
		return nil, fmt.Errorf("%w: payment is required", domain.ErrInvalidArgument)
	}

	buyer := input.Buyer.Normalized().String()

	var purchase schema.Purchase
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account schema.Account
		if err := tx.Where("address = ?", buyer).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUnauthorized
			}
			return fmt.Errorf("failed to get buyer account: %w", err)
		}
		if account.Role != domain.RoleCompany {
			return domain.ErrUnauthorized
		}

		asset, err := lockAsset(tx, input.AssetID)
		if err != nil {
			return err
		}
		if !asset.Active {
			return domain.ErrInactive
		}
		if asset.OwnerAddress == buyer {
			return domain.ErrSelfPurchase
		}

		price, err := domain.ParseAmount(asset.Price)
		if err != nil {
			return fmt.Errorf("failed to parse asset price: %w", err)
		}
		if input.Payment.Cmp(price) < 0 {
			return domain.ErrInsufficientPayment
		}

		// The unique (asset_id, buyer_address) index is the authoritative
		// guard against double purchase; DO NOTHING turns the conflict into
		// an observable zero id.
		purchase = schema.Purchase{
			AssetID:       asset.ID,
			BuyerAddress:  buyer,
			PriceCredited: asset.Price,
			PaymentAmount: domain.FormatAmount(input.Payment),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}, {Name: "buyer_address"}},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&purchase).Error; err != nil {
			return fmt.Errorf("failed to create purchase: %w", err)
		}
		if purchase.ID == 0 {
			return domain.ErrAlreadyPurchased
		}

		// Credit the seller exactly the listed price. Overpayment stays with
		// the marketplace and is recorded on the purchase row.
		var seller schema.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("address = ?", asset.OwnerAddress).
			First(&seller).Error; err != nil {
			return fmt.Errorf("failed to lock seller account: %w", err)
		}

		if err := tx.Model(&seller).Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", asset.Price),
			"updated_at": time.Now(),
		}).Error; err != nil {
			return fmt.Errorf("failed to credit seller balance: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &purchase, nil
}

// Withdraw drains the caller's full balance through the payment channel.
//
// The account row lock is held across the external transfer so concurrent
// withdrawals serialize; if the transfer fails the transaction rolls back
// and the balance is untouched.
func (l *pgLedger) Withdraw(ctx context.Context, caller domain.Address) (*schema.Withdrawal, error) {
	address := caller.Normalized().String()

	var withdrawal schema.Withdrawal
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account schema.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("address = ?", address).
			First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNothingToWithdraw
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}

		amount, err := domain.ParseAmount(account.Balance)
		if err != nil {
			return fmt.Errorf("failed to parse stored balance: %w", err)
		}
		if amount.Sign() == 0 {
			return domain.ErrNothingToWithdraw
		}

		txHash, err := l.payouts.Transfer(ctx, caller.Normalized(), amount)
		if err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("payout transfer failed: %w", err),
				zap.String("address", address),
				zap.String("amount", amount.String()))
			return fmt.Errorf("%w: %v", domain.ErrExternalTransferFailed, err)
		}

		if err := tx.Model(&account).Updates(map[string]interface{}{
			"balance":    "0",
			"updated_at": time.Now(),
		}).Error; err != nil {
			return fmt.Errorf("failed to zero balance: %w", err)
		}

		withdrawal = schema.Withdrawal{
			Reference:      uuid.NewString(),
			AccountAddress: address,
			Amount:         domain.FormatAmount(amount),
			TxHash:         txHash,
		}
		if err := tx.Create(&withdrawal).Error; err != nil {
			return fmt.Errorf("failed to create withdrawal receipt: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &withdrawal, nil
}

// GetAsset retrieves an asset by id, nil if it does not exist
func (l *pgLedger) GetAsset(ctx context.Context, assetID domain.AssetID) (*schema.Asset, error) {
	var asset schema.Asset
	err := l.db.WithContext(ctx).Where("id = ?", uint64(assetID)).First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

// GetActiveAssets retrieves the purchasable catalog with total count
func (l *pgLedger) GetActiveAssets(ctx context.Context, filter ActiveAssetFilter) ([]schema.Asset, uint64, error) {
	query := l.db.WithContext(ctx).Model(&schema.Asset{}).Where("active = ?", true)

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count active assets: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query = query.Order("id DESC").Limit(limit).Offset(int(filter.Offset)) //nolint:gosec,G115

	var assets []schema.Asset
	if err := query.Find(&assets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get active assets: %w", err)
	}

	return assets, uint64(total), nil //nolint:gosec,G115
}

// GetAssetsOwnedBy retrieves every asset listed by an address
func (l *pgLedger) GetAssetsOwnedBy(ctx context.Context, owner domain.Address) ([]schema.Asset, error) {
	var assets []schema.Asset
	err := l.db.WithContext(ctx).
		Where("owner_address = ?", owner.Normalized().String()).
		Order("id ASC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owned assets: %w", err)
	}
	return assets, nil
}

// GetAssetsPurchasedBy retrieves every asset an address has purchased
func (l *pgLedger) GetAssetsPurchasedBy(ctx context.Context, buyer domain.Address) ([]schema.Asset, error) {
	var assets []schema.Asset
	err := l.db.WithContext(ctx).
		Joins("JOIN purchases ON purchases.asset_id = assets.id").
		Where("purchases.buyer_address = ?", buyer.Normalized().String()).
		Order("purchases.id ASC").
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get purchased assets: %w", err)
	}
	return assets, nil
}

// GetWithdrawals retrieves the payout receipts for an address
func (l *pgLedger) GetWithdrawals(ctx context.Context, address domain.Address) ([]schema.Withdrawal, error) {
	var withdrawals []schema.Withdrawal
	err := l.db.WithContext(ctx).
		Where("account_address = ?", address.Normalized().String()).
		Order("id DESC").
		Find(&withdrawals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawals: %w", err)
	}
	return withdrawals, nil
}

// HasAccess reports whether an address may read an asset's content pointer
func (l *pgLedger) HasAccess(ctx context.Context, address domain.Address, assetID domain.AssetID) (bool, error) {
	normalized := address.Normalized().String()

	asset, err := l.GetAsset(ctx, assetID)
	if err != nil {
		return false, err
	}
	if asset == nil {
		return false, domain.ErrNotFound
	}
	if asset.OwnerAddress == normalized {
		return true, nil
	}

	var count int64
	err = l.db.WithContext(ctx).
		Model(&schema.Purchase{}).
		Where("asset_id = ? AND buyer_address = ?", uint64(assetID), normalized).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check purchase access: %w", err)
	}

	return count > 0, nil
}

// GetAssetsForHealthCheck retrieves active assets whose content has not been
// probed since staleBefore
func (l *pgLedger) GetAssetsForHealthCheck(ctx context.Context, staleBefore time.Time, limit int) ([]schema.Asset, error) {
	var assets []schema.Asset
	err := l.db.WithContext(ctx).
		Joins("LEFT JOIN content_health ON content_health.asset_id = assets.id").
		Where("assets.active = ?", true).
		Where("content_health.id IS NULL OR content_health.last_checked_at < ?", staleBefore).
		Order("assets.id ASC").
		Limit(limit).
		Find(&assets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assets for health check: %w", err)
	}
	return assets, nil
}

// UpsertContentHealth records the latest probe result for an asset
func (l *pgLedger) UpsertContentHealth(ctx context.Context, input ContentHealthInput) error {
	health := schema.ContentHealth{
		AssetID:       uint64(input.AssetID),
		Status:        input.Status,
		WorkingURL:    input.WorkingURL,
		Error:         input.Error,
		LastCheckedAt: input.CheckedAt,
	}

	err := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "working_url", "error", "last_checked_at"}),
	}).Create(&health).Error
	if err != nil {
		return fmt.Errorf("failed to upsert content health: %w", err)
	}

	return nil
}

// GetContentHealth retrieves the latest probe result, nil if never probed
func (l *pgLedger) GetContentHealth(ctx context.Context, assetID domain.AssetID) (*schema.ContentHealth, error) {
	var health schema.ContentHealth
	err := l.db.WithContext(ctx).Where("asset_id = ?", uint64(assetID)).First(&health).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get content health: %w", err)
	}
	return &health, nil
}

// lockAsset loads an asset row with SELECT FOR UPDATE
func lockAsset(tx *gorm.DB, assetID domain.AssetID) (*schema.Asset, error) {
	var asset schema.Asset
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", uint64(assetID)).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock asset: %w", err)
	}
	return &asset, nil
}
