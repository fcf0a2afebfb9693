package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings keeps all configuration options.
// Env keys are accepted in both UPPER_CASE and lower_case.
type Settings struct {
	RPCURL             string
	ChainID            string // empty means ask the node
	MarketplaceAddress string
	CEURAddress        string
	PrivateKeyHex      string
	Debounce           time.Duration
	TipGwei            int64 // 0 lets the node suggest
	GasLimit           uint64
	ConfirmTimeout     time.Duration // 0 waits forever
	SessionFile        string
}

// Defaults used when the corresponding key is missing or malformed.
const (
	DefaultRPCURL      = "https://alfajores-forno.celo-testnet.org"
	DefaultCEURAddress = "0x10c892A6EC43a53E45D0B916B4b7D383B1b78C0F"
	DefaultDebounceMS  = 500
	DefaultSessionFile = "rooms_session.json"
)

// Load reads settings from the process environment.
func Load() Settings {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads settings through the given lookup func.
func LoadFrom(getenv func(string) string) Settings {
	get := func(keys []string, def string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" { return v }
		}
		return def
	}
	getInt64 := func(keys []string, def int64) int64 {
		s := get(keys, "")
		if s == "" { return def }
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n >= 0 { return n }
		return def
	}

	st := Settings{}
	st.RPCURL             = get([]string{"rpc_url", "RPC_URL"}, DefaultRPCURL)
	st.ChainID            = get([]string{"chain_id", "CHAIN_ID"}, "")
	st.MarketplaceAddress = get([]string{"marketplace_address", "MARKETPLACE_ADDRESS"}, "")
	st.CEURAddress        = get([]string{"ceur_address", "CEUR_ADDRESS"}, DefaultCEURAddress)
	st.PrivateKeyHex      = get([]string{"private_key", "PRIVATE_KEY"}, "")
	st.SessionFile        = get([]string{"session_file", "SESSION_FILE"}, DefaultSessionFile)

	st.Debounce       = time.Duration(getInt64([]string{"debounce_ms", "DEBOUNCE_MS"}, DefaultDebounceMS)) * time.Millisecond
	st.TipGwei        = getInt64([]string{"tip_gwei", "TIP_GWEI"}, 0)
	st.GasLimit       = uint64(getInt64([]string{"gas_limit", "GAS_LIMIT"}, 0))
	st.ConfirmTimeout = time.Duration(getInt64([]string{"confirm_timeout_sec", "CONFIRM_TIMEOUT_SEC"}, 0)) * time.Second

	return st
}
