package payout

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/datafair/df-marketplace/internal/adapter"
	"github.com/datafair/df-marketplace/internal/domain"
	"github.com/datafair/df-marketplace/internal/logger"
)

const transferGasLimit = 21000

// Config holds the configuration for the Ethereum payment channel
type Config struct {
	RPCURL             string
	OperatorPrivateKey string
	ReceiptTimeout     time.Duration
}

type ethereumChannel struct {
	client     adapter.EthClient
	privateKey *ecdsa.PrivateKey
	operator   common.Address
	chainID    *big.Int

	receiptTimeout time.Duration

	// Serializes nonce assignment so concurrent withdrawals do not race on
	// PendingNonceAt.
	mu sync.Mutex
}

// NewEthereumChannel creates a payment channel backed by an Ethereum
// compatible chain. Withdrawals are settled as plain value transfers signed
// by the marketplace operator key.
func NewEthereumChannel(ctx context.Context, cfg Config, dialer adapter.EthClientDialer) (PaymentChannel, error) {
	privateKey, err := crypto.HexToECDSA(cfg.OperatorPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse operator private key: %w", err)
	}

	client, err := dialer.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial ethereum rpc: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}

	receiptTimeout := cfg.ReceiptTimeout
	if receiptTimeout == 0 {
		receiptTimeout = 2 * time.Minute
	}

	return &ethereumChannel{
		client:         client,
		privateKey:     privateKey,
		operator:       crypto.PubkeyToAddress(privateKey.PublicKey),
		chainID:        chainID,
		receiptTimeout: receiptTimeout,
	}, nil
}

// Transfer sends amount to the given address and waits for the transaction
// to be mined. It returns the transaction hash on success.
func (c *ethereumChannel) Transfer(ctx context.Context, to domain.Address, amount *big.Int) (string, error) {
	if !to.Valid() {
		return "", fmt.Errorf("invalid destination address: %s", to)
	}

	signedTx, err := c.buildAndSend(ctx, common.HexToAddress(to.String()), amount)
	if err != nil {
		return "", err
	}

	txHash := signedTx.Hash()

	logger.InfoCtx(ctx, "payout transaction submitted",
		zap.String("txHash", txHash.Hex()),
		zap.String("to", to.String()),
		zap.String("amount", amount.String()))

	if err := c.waitMined(ctx, txHash); err != nil {
		return "", err
	}

	return txHash.Hex(), nil
}

func (c *ethereumChannel) buildAndSend(ctx context.Context, to common.Address, amount *big.Int) (*types.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	nonce, err := c.client.PendingNonceAt(ctx, c.operator)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    amount,
		Gas:      transferGasLimit,
		GasPrice: gasPrice,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	return signedTx, nil
}

// waitMined polls for the transaction receipt and checks its status.
func (c *ethereumChannel) waitMined(ctx context.Context, txHash common.Hash) error {
	var receipt *types.Receipt

	operation := func() error {
		r, err := c.client.TransactionReceipt(ctx, txHash)
		if err != nil {
			if errors.Is(err, ethereum.NotFound) {
				return fmt.Errorf("transaction not mined yet")
			}
			return backoff.Permanent(fmt.Errorf("failed to get receipt: %w", err))
		}

		receipt = r
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 15 * time.Second
	b.MaxElapsedTime = c.receiptTimeout

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return fmt.Errorf("transaction %s not confirmed: %w", txHash.Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("transaction %s reverted", txHash.Hex())
	}

	return nil
}

// Close closes the underlying RPC connection
func (c *ethereumChannel) Close() {
	c.client.Close()
}
