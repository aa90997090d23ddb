package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/invomesh/invoice_marketplace_app/internal/apperrors"
	"github.com/invomesh/invoice_marketplace_app/internal/core/domain"
	portssvc "github.com/invomesh/invoice_marketplace_app/internal/core/ports/services"
	"github.com/invomesh/invoice_marketplace_app/internal/platform/config"
	"github.com/invomesh/invoice_marketplace_app/internal/utils/wei"
	"github.com/shopspring/decimal"
)

// contractABI is the marketplace contract's interface. It is fixed; the
// contract is already deployed and is never redeployed by this service.
const contractABI = `[
  {
    "inputs": [{ "internalType": "uint256", "name": "_id", "type": "uint256" }],
    "name": "buyInvoice",
    "outputs": [],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "inputs": [
      { "internalType": "string", "name": "_dbId", "type": "string" },
      { "internalType": "uint256", "name": "_priceInWei", "type": "uint256" },
      { "internalType": "uint256", "name": "_originalAmountInWei", "type": "uint256" },
      { "internalType": "string", "name": "_pdfUrl", "type": "string" }
    ],
    "name": "createInvoice",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "uint256", "name": "_id", "type": "uint256" }],
    "name": "repayInvoice",
    "outputs": [],
    "stateMutability": "payable",
    "type": "function"
  },
  {
    "inputs": [{ "internalType": "uint256", "name": "_id", "type": "uint256" }],
    "name": "getInvoice",
    "outputs": [
      { "internalType": "string", "name": "dbId", "type": "string" },
      { "internalType": "uint256", "name": "price", "type": "uint256" },
      { "internalType": "address", "name": "owner", "type": "address" },
      { "internalType": "string", "name": "pdfUrl", "type": "string" },
      { "internalType": "bool", "name": "isForSale", "type": "bool" }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [],
    "name": "getInvoiceCount",
    "outputs": [{ "internalType": "uint256", "name": "", "type": "uint256" }],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "anonymous": false,
    "inputs": [
      { "indexed": true, "internalType": "uint256", "name": "id", "type": "uint256" },
      { "indexed": false, "internalType": "string", "name": "dbId", "type": "string" },
      { "indexed": false, "internalType": "uint256", "name": "price", "type": "uint256" },
      { "indexed": false, "internalType": "address", "name": "owner", "type": "address" }
    ],
    "name": "InvoiceCreated",
    "type": "event"
  },
  {
    "anonymous": false,
    "inputs": [
      { "indexed": true, "internalType": "uint256", "name": "id", "type": "uint256" },
      { "indexed": false, "internalType": "address", "name": "newOwner", "type": "address" },
      { "indexed": false, "internalType": "uint256", "name": "price", "type": "uint256" }
    ],
    "name": "InvoicePurchased",
    "type": "event"
  }
]`

// Client talks to the deployed marketplace contract over JSON-RPC, signing
// state-changing calls with the configured backend key. Every such call
// verifies the connected chain id first and waits for the transaction to be
// mined before reporting success.
type Client struct {
	eth         *ethclient.Client
	contract    *bind.BoundContract
	parsedABI   abi.ABI
	signer      *ecdsa.PrivateKey
	chainID     *big.Int
	callTimeout time.Duration
}

var _ portssvc.ChainClientSvc = (*Client)(nil)

// NewClient dials the configured RPC endpoint and binds the contract.
// The caller decides what to do when chain settings are absent; this
// constructor expects them to be present.
func NewClient(cfg *config.Config) (*Client, error) {
	eth, err := ethclient.Dial(cfg.ChainRPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chain RPC: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.ChainSignerKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse chain signer key: %w", err)
	}

	parsedABI, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	address := common.HexToAddress(cfg.ContractAddress)
	contract := bind.NewBoundContract(address, parsedABI, eth, eth, eth)

	return &Client{
		eth:         eth,
		contract:    contract,
		parsedABI:   parsedABI,
		signer:      key,
		chainID:     new(big.Int).SetUint64(cfg.ChainID),
		callTimeout: cfg.ChainCallTimeout,
	}, nil
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

// ensureNetwork confirms the provider is on the expected chain. Checked per
// call because some RPC gateways route to different networks between requests.
func (c *Client) ensureNetwork(ctx context.Context) error {
	chainID, err := c.eth.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to read chain id: %w", mapChainErr(err))
	}
	if chainID.Cmp(c.chainID) != 0 {
		return fmt.Errorf("connected to chain %s, expected %s: %w", chainID, c.chainID, apperrors.ErrWrongNetwork)
	}
	return nil
}

// transact submits one state-changing call and waits for it to be mined.
// A mined-but-reverted transaction is reported as a revert, not success.
func (c *Client) transact(ctx context.Context, value *big.Int, method string, args ...any) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	if err := c.ensureNetwork(ctx); err != nil {
		return nil, err
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.signer, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}
	opts.Context = ctx
	opts.Value = value

	tx, err := c.contract.Transact(opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s submission failed: %w", method, mapChainErr(err))
	}

	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		return nil, fmt.Errorf("%s confirmation failed: %w", method, mapChainErr(err))
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%s reverted in tx %s: %w", method, tx.Hash().Hex(), apperrors.ErrReverted)
	}
	return receipt, nil
}

func (c *Client) CreateInvoice(ctx context.Context, dbID string, listedPrice, originalAmount decimal.Decimal, pdfURL string) (*domain.ChainReceipt, error) {
	priceWei, err := wei.FromDecimal(listedPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid listed price: %w", err)
	}
	amountWei, err := wei.FromDecimal(originalAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid original amount: %w", err)
	}

	receipt, err := c.transact(ctx, nil, "createInvoice", dbID, priceWei, amountWei, pdfURL)
	if err != nil {
		return nil, err
	}

	out := &domain.ChainReceipt{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}
	if tokenID, ok := c.tokenIDFromLogs(receipt.Logs); ok {
		out.TokenID = &tokenID
	}
	return out, nil
}

// tokenIDFromLogs pulls the token id out of the InvoiceCreated event.
// The receipt may carry no decodable event (proxy contracts, pruned logs);
// callers treat the missing id as a partial outcome, not a failure here.
func (c *Client) tokenIDFromLogs(logs []*types.Log) (string, bool) {
	createdTopic := c.parsedABI.Events["InvoiceCreated"].ID
	for _, lg := range logs {
		if len(lg.Topics) >= 2 && lg.Topics[0] == createdTopic {
			return lg.Topics[1].Big().String(), true
		}
	}
	return "", false
}

func (c *Client) BuyInvoice(ctx context.Context, tokenID string, listedPrice decimal.Decimal) (*domain.ChainReceipt, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	valueWei, err := wei.FromDecimal(listedPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid listed price: %w", err)
	}

	receipt, err := c.transact(ctx, valueWei, "buyInvoice", id)
	if err != nil {
		return nil, err
	}
	return &domain.ChainReceipt{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}, nil
}

func (c *Client) RepayInvoice(ctx context.Context, tokenID string, originalAmount decimal.Decimal) (*domain.ChainReceipt, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}
	valueWei, err := wei.FromDecimal(originalAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid original amount: %w", err)
	}

	receipt, err := c.transact(ctx, valueWei, "repayInvoice", id)
	if err != nil {
		return nil, err
	}
	return &domain.ChainReceipt{
		TxHash:      receipt.TxHash.Hex(),
		BlockNumber: receipt.BlockNumber.Uint64(),
	}, nil
}

func (c *Client) GetInvoice(ctx context.Context, tokenID string) (*domain.OnChainInvoice, error) {
	id, err := parseTokenID(tokenID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	var out []any
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getInvoice", id); err != nil {
		return nil, fmt.Errorf("getInvoice failed: %w", mapChainErr(err))
	}
	if len(out) != 5 {
		return nil, fmt.Errorf("getInvoice returned %d values, expected 5", len(out))
	}

	dbID, ok0 := out[0].(string)
	price, ok1 := out[1].(*big.Int)
	owner, ok2 := out[2].(common.Address)
	pdfURL, ok3 := out[3].(string)
	isForSale, ok4 := out[4].(bool)
	if !ok0 || !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, fmt.Errorf("getInvoice returned unexpected types")
	}

	return &domain.OnChainInvoice{
		TokenID:   tokenID,
		DBID:      dbID,
		Price:     wei.ToDecimal(price),
		Owner:     owner.Hex(),
		PdfURL:    pdfURL,
		IsForSale: isForSale,
	}, nil
}

func (c *Client) GetInvoiceCount(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	var out []any
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getInvoiceCount"); err != nil {
		return 0, fmt.Errorf("getInvoiceCount failed: %w", mapChainErr(err))
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("getInvoiceCount returned %d values, expected 1", len(out))
	}
	count, ok := out[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("getInvoiceCount returned unexpected type")
	}
	return count.Uint64(), nil
}

func parseTokenID(tokenID string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid token id %q: %w", tokenID, apperrors.ErrValidation)
	}
	return id, nil
}
