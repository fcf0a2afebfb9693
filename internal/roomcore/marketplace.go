package roomcore

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const marketplaceABIJSON = `[{"inputs":[{"internalType":"string","name":"_name","type":"string"},{"internalType":"string","name":"_image","type":"string"},{"internalType":"string","name":"_description","type":"string"},{"internalType":"string","name":"_location","type":"string"},{"internalType":"uint256","name":"_price","type":"uint256"}],"name":"writeRoom","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

// MarketplaceABI is the subset of the marketplace contract this client calls.
var MarketplaceABI abi.ABI

func init() {
	ab, err := abi.JSON(strings.NewReader(marketplaceABIJSON))
	if err != nil {
		panic("marketplace abi: " + err.Error())
	}
	MarketplaceABI = ab
}

// Backend is what the marketplace needs from a chain client.
// *ethclient.Client and the simulated backend's client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Marketplace sends writes to a deployed marketplace contract.
type Marketplace struct {
	Address  common.Address
	backend  Backend
	contract *bind.BoundContract
	opts     *bind.TransactOpts
}

// NewMarketplace binds the contract at addr. opts signs every write; when it
// is nil the marketplace is read-only and Prepare returns nil.
func NewMarketplace(addr common.Address, backend Backend, opts *bind.TransactOpts) *Marketplace {
	return &Marketplace{
		Address:  addr,
		backend:  backend,
		contract: bind.NewBoundContract(addr, MarketplaceABI, backend, backend, backend),
		opts:     opts,
	}
}

// Sender returns the signing address, or the zero address when read-only.
func (m *Marketplace) Sender() common.Address {
	if m == nil || m.opts == nil {
		return common.Address{}
	}
	return m.opts.From
}

// Prepare implements Preparer. Unknown methods yield nil.
func (m *Marketplace) Prepare(method string, args ...any) WriteFunc {
	if m == nil || m.contract == nil || m.opts == nil {
		return nil
	}
	if _, ok := MarketplaceABI.Methods[method]; !ok {
		return nil
	}
	return func(ctx context.Context) (PendingTx, error) {
		opts := *m.opts
		opts.Context = ctx
		tx, err := m.contract.Transact(&opts, method, args...)
		if err != nil {
			return nil, err
		}
		return &chainTx{tx: tx, backend: m.backend}, nil
	}
}

// EncodeWriteRoom returns writeRoom calldata for f.
func EncodeWriteRoom(f Fields) ([]byte, error) {
	wei, err := f.PriceWei()
	if err != nil {
		return nil, err
	}
	return MarketplaceABI.Pack(MethodWriteRoom, f.Name, f.ImageURL, f.Description, f.Location, wei)
}

type chainTx struct {
	tx      *types.Transaction
	backend bind.DeployBackend
}

func (c *chainTx) Hash() common.Hash { return c.tx.Hash() }

// Wait blocks until the transaction is mined or ctx is done.
func (c *chainTx) Wait(ctx context.Context) (*types.Receipt, error) {
	return bind.WaitMined(ctx, c.backend, c.tx)
}
