package roomcore

import (
	"crypto/ecdsa"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Parse hex ECDSA private key (with / without 0x).
func hexToECDSAPriv(s string) (*ecdsa.PrivateKey, error) {
	h := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if len(h) == 0 {
		return nil, errors.New("empty private key")
	}
	return gethcrypto.HexToECDSA(h)
}

// AddressFromHex derives the account address of a hex private key.
func AddressFromHex(pkHex string) (common.Address, error) {
	prv, err := hexToECDSAPriv(pkHex)
	if err != nil {
		return common.Address{}, err
	}
	return gethcrypto.PubkeyToAddress(prv.PublicKey), nil
}

// NewTransactorFromHex builds *bind.TransactOpts from hex key and chain ID.
// tipGwei > 0 pins the priority fee; gasLimit > 0 skips estimation.
func NewTransactorFromHex(pkHex string, chainID *big.Int, tipGwei int64, gasLimit uint64) (*bind.TransactOpts, error) {
	prv, err := hexToECDSAPriv(pkHex)
	if err != nil {
		return nil, err
	}
	opts, err := bind.NewKeyedTransactorWithChainID(prv, chainID)
	if err != nil {
		return nil, err
	}
	if tipGwei > 0 {
		opts.GasTipCap = gweiToWei(tipGwei)
	}
	opts.GasLimit = gasLimit
	return opts, nil
}
