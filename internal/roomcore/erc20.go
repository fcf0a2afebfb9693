package roomcore

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

var (
	selDecimals  = common.FromHex("0x313ce567") // decimals()
	selBalanceOf = common.FromHex("0x70a08231") // balanceOf(address)
)

// TokenBalance is an ERC-20 balance with the token's decimals.
type TokenBalance struct {
	Wei      *big.Int
	Decimals int
}

// String renders the balance in whole tokens.
func (b TokenBalance) String() string { return formatUnits(b.Wei, b.Decimals) }

// FetchTokenBalance reads balanceOf(owner) and decimals() of token.
// Tokens that return no data are treated as 18 decimals and zero balance.
func FetchTokenBalance(ctx context.Context, c ethereum.ContractCaller, token, owner common.Address) (TokenBalance, error) {
	dec := PriceDecimals
	res, err := callWithRetry(ctx, c, ethereum.CallMsg{To: &token, Data: selDecimals})
	if err != nil {
		return TokenBalance{}, err
	}
	if len(res) > 0 {
		dec = int(res[len(res)-1])
	}

	data := append(append([]byte{}, selBalanceOf...), common.LeftPadBytes(owner.Bytes(), 32)...)
	res, err = callWithRetry(ctx, c, ethereum.CallMsg{To: &token, Data: data})
	if err != nil {
		return TokenBalance{}, err
	}
	return TokenBalance{Wei: new(big.Int).SetBytes(res), Decimals: dec}, nil
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "Too Many Requests") || strings.Contains(s, "-32005")
}

// callWithRetry performs eth_call with small exponential backoff.
func callWithRetry(ctx context.Context, c ethereum.ContractCaller, msg ethereum.CallMsg) ([]byte, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		ret, err := c.CallContract(ctx, msg, nil)
		if err == nil {
			return ret, nil
		}
		lastErr = err
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			if isRateLimitError(err) {
				backoff *= 2
			}
		}
	}
	return nil, lastErr
}
