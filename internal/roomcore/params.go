package roomcore

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Params describe how to reach the marketplace.
type Params struct {
	RPC         string
	ChainID     *big.Int // nil asks the node
	Marketplace common.Address
	PrivKeyHex  string // empty gives a read-only marketplace
	TipGwei     int64
	GasLimit    uint64
	Logf        func(string, ...any)
}

func (p *Params) logf(format string, a ...any) {
	if p.Logf != nil {
		p.Logf(format, a...)
	}
}

// Connect dials the RPC node and binds the marketplace contract.
// The caller owns the returned client.
func Connect(ctx context.Context, p Params) (*Marketplace, *ethclient.Client, error) {
	if strings.TrimSpace(p.RPC) == "" {
		return nil, nil, errors.New("rpc url is empty")
	}
	if p.Marketplace == (common.Address{}) {
		return nil, nil, errors.New("marketplace address is empty")
	}
	ec, err := ethclient.DialContext(ctx, p.RPC)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rpc: %w", err)
	}
	chainID := p.ChainID
	if chainID == nil {
		chainID, err = ec.ChainID(ctx)
		if err != nil {
			ec.Close()
			return nil, nil, fmt.Errorf("chain id: %w", err)
		}
	}
	if strings.TrimSpace(p.PrivKeyHex) == "" {
		p.logf("no private key: marketplace %s is read-only", p.Marketplace.Hex())
		return NewMarketplace(p.Marketplace, ec, nil), ec, nil
	}
	opts, err := NewTransactorFromHex(p.PrivKeyHex, chainID, p.TipGwei, p.GasLimit)
	if err != nil {
		ec.Close()
		return nil, nil, fmt.Errorf("private key: %w", err)
	}
	p.logf("connected: chain=%s marketplace=%s sender=%s", chainID.String(), p.Marketplace.Hex(), opts.From.Hex())
	return NewMarketplace(p.Marketplace, ec, opts), ec, nil
}

// ParseChainID parses a decimal or 0x-hex chain ID. Empty yields nil.
func ParseChainID(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v := new(big.Int)
	ok := false
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		_, ok = v.SetString(s[2:], 16)
	} else {
		_, ok = v.SetString(s, 10)
	}
	if !ok || v.Sign() <= 0 {
		return nil, fmt.Errorf("bad chain id %q", s)
	}
	return v, nil
}
