package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ligun0805/room-market/internal/config"
	core "github.com/ligun0805/room-market/internal/roomcore"
)

var (
	cfg     config.Settings
	log     *zap.SugaredLogger
	verbose bool
	askKey  bool
)

var rootCmd = &cobra.Command{
	Use:   "roomcli",
	Short: "List rooms on the room marketplace contract",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewDevelopmentConfig()
		if !verbose { zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel) }
		zc.DisableStacktrace = true
		l, err := zc.Build()
		if err != nil { return err }
		log = l.Sugar()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil { _ = log.Sync() }
	},
	SilenceUsage: true,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create one room interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		m, ec, err := connect(ctx)
		if err != nil { return err }
		defer ec.Close()

		reader := bufio.NewReader(os.Stdin)
		fields := promptFields(reader, os.Stdout)
		if wei, err := core.ParsePrice(fields.Price); err == nil {
			fmt.Printf("  price: %s cEUR = %s wei\n", core.FormatPrice(wei), wei.String())
		}
		_, err = submitOne(ctx, m, fields)
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <rooms.csv|rooms.json>",
	Short: "Create every room listed in a CSV or JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := loadRoomsFile(args[0])
		if err != nil { return err }
		if len(list) == 0 { return errors.New("no rooms in file") }

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		m, ec, err := connect(ctx)
		if err != nil { return err }
		defer ec.Close()

		created, failed := 0, 0
		for i, f := range list {
			if ctx.Err() != nil { log.Warn("interrupted"); break }
			fmt.Printf("=== room %d/%d: %s ===\n", i+1, len(list), f.Name)
			if _, err := submitOne(ctx, m, f); err != nil { failed++; continue }
			created++
		}
		log.Infow("import finished", "created", created, "failed", failed)
		if failed > 0 { return fmt.Errorf("%d of %d rooms failed", failed, len(list)) }
		return nil
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the sender's cEUR balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		m, ec, err := connect(ctx)
		if err != nil { return err }
		defer ec.Close()
		if m.Sender() == (common.Address{}) { return errors.New("no private key configured") }
		if !common.IsHexAddress(cfg.CEURAddress) { return fmt.Errorf("bad CEUR_ADDRESS %q", cfg.CEURAddress) }
		bal, err := core.FetchTokenBalance(ctx, ec, common.HexToAddress(cfg.CEURAddress), m.Sender())
		if err != nil { return fmt.Errorf("balance: %w", err) }
		fmt.Println(m.Sender().Hex(), "cEUR:", bal.String())
		return nil
	},
}

func init() {
	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")
	cfg = config.Load()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.RPCURL, "rpc", cfg.RPCURL, "RPC endpoint (RPC_URL)")
	pf.StringVar(&cfg.ChainID, "chain-id", cfg.ChainID, "chain id, empty asks the node (CHAIN_ID)")
	pf.StringVar(&cfg.MarketplaceAddress, "marketplace", cfg.MarketplaceAddress, "marketplace contract (MARKETPLACE_ADDRESS)")
	pf.StringVar(&cfg.CEURAddress, "ceur", cfg.CEURAddress, "cEUR token (CEUR_ADDRESS)")
	pf.DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "input settle delay (DEBOUNCE_MS)")
	pf.DurationVar(&cfg.ConfirmTimeout, "confirm-timeout", cfg.ConfirmTimeout, "max wait per confirmation, 0 = forever")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&askKey, "ask-key", false, "prompt for the private key instead of PRIVATE_KEY")

	rootCmd.AddCommand(addCmd, importCmd, balanceCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect(ctx context.Context) (*core.Marketplace, *ethclient.Client, error) {
	if !common.IsHexAddress(strings.TrimSpace(cfg.MarketplaceAddress)) {
		return nil, nil, fmt.Errorf("MARKETPLACE_ADDRESS is missing or invalid: %q", cfg.MarketplaceAddress)
	}
	chainID, err := core.ParseChainID(cfg.ChainID)
	if err != nil { return nil, nil, err }
	pk := cfg.PrivateKeyHex
	if askKey || strings.TrimSpace(pk) == "" {
		if pk, err = readPassword("Private key: "); err != nil { return nil, nil, err }
	}
	log.Infow("config",
		"rpc", cfg.RPCURL, "chainId", cfg.ChainID, "marketplace", cfg.MarketplaceAddress,
		"privateKey", maskHex(pk), "debounce", cfg.Debounce)

	return core.Connect(ctx, core.Params{
		RPC: cfg.RPCURL, ChainID: chainID,
		Marketplace: common.HexToAddress(cfg.MarketplaceAddress), PrivKeyHex: pk,
		TipGwei: cfg.TipGwei, GasLimit: cfg.GasLimit,
		Logf: log.Infof,
	})
}

// submitOne runs one room through the same form and submitter the GUI uses.
func submitOne(ctx context.Context, m *core.Marketplace, f core.Fields) (*core.Result, error) {
	form := core.NewForm(cfg.Debounce)
	defer form.Close()
	form.SetFields(f)

	sub := &core.Submitter{
		Form:     form,
		Writer:   m,
		Notify:   consoleNotifier{w: os.Stdout},
		OnStatus: func(s string) { if s != core.StatusIdle { fmt.Println("  status:", s) } },
		Logf:     log.Debugf,
	}
	if cfg.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConfirmTimeout)
		defer cancel()
	}
	res, err := sub.Submit(ctx)
	if err != nil {
		log.Errorw("room not created", "name", f.Name, "err", err)
		return nil, err
	}
	log.Infow("room created", "name", res.Fields.Name, "tx", res.TxHash.Hex(), "priceWei", res.PriceWei.String())
	return res, nil
}
