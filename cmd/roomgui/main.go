package main

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ligun0805/room-market/internal/config"
	core "github.com/ligun0805/room-market/internal/roomcore"
)

func main() {
	hideConsoleWindow()

	_ = godotenv.Load()
	_ = godotenv.Overload(".env.local")
	cfg := config.Load()
	sessionFile = cfg.SessionFile

	appCtx, appCancel = context.WithCancel(context.Background())
	defer appCancel()

	a := app.New()
	dark := true
	a.Settings().SetTheme(makeTheme(dark))

	w := a.NewWindow("Room Market")
	w.SetOnClosed(func(){
		appCancel()
		if logWin != nil { logWin.Close(); logWin = nil }
		setMarket(nil, nil)
	})
	w.Resize(fyne.NewSize(980, 640))
	logf := func(f string, args ...any) { appendLogLine(a, fmt.Sprintf(f, args...)) }

	if err := loadRoomsFromFile(); err != nil { logf("session: %v", err) }

	rpcEntry := widget.NewEntry(); rpcEntry.SetText(cfg.RPCURL)
	chainEntry := widget.NewEntry(); chainEntry.SetText(cfg.ChainID); chainEntry.SetPlaceHolder("from node")
	marketEntry := widget.NewEntry(); marketEntry.SetText(cfg.MarketplaceAddress)
	ceurEntry := widget.NewEntry(); ceurEntry.SetText(cfg.CEURAddress)
	pkEntry := widget.NewPasswordEntry(); pkEntry.SetText(cfg.PrivateKeyHex)

	senderEntry := widget.NewEntry(); senderEntry.Disable()
	showSender := func(s string) {
		if addr, err := core.AddressFromHex(strings.TrimSpace(s)); err == nil { senderEntry.SetText(addr.Hex()) } else { senderEntry.SetText("") }
	}
	showSender(pkEntry.Text)
	pkEntry.OnChanged = showSender

	connLbl := widget.NewLabel("not connected")
	balanceLbl := widget.NewLabel("cEUR balance: -")

	refreshBalance := func() {
		m := currentMarket()
		marketMu.Lock(); ec := chainEC; marketMu.Unlock()
		if m == nil || ec == nil || m.Sender() == (common.Address{}) { balanceLbl.SetText("cEUR balance: -"); return }
		tok := strings.TrimSpace(ceurEntry.Text)
		if !common.IsHexAddress(tok) { balanceLbl.SetText("cEUR balance: bad token address"); return }
		ctx, cancel := context.WithTimeout(appCtx, 20*time.Second); defer cancel()
		bal, err := core.FetchTokenBalance(ctx, ec, common.HexToAddress(tok), m.Sender())
		if err != nil { balanceLbl.SetText("cEUR balance: error"); logf("balance: %v", err); return }
		balanceLbl.SetText("cEUR balance: " + bal.String())
	}

	connect := func() {
		connLbl.SetText("connecting…")
		go func() {
			addr := strings.TrimSpace(marketEntry.Text)
			if !common.IsHexAddress(addr) { connLbl.SetText("marketplace address invalid"); return }
			chainID, err := core.ParseChainID(chainEntry.Text)
			if err != nil { connLbl.SetText(err.Error()); return }
			ctx, cancel := context.WithTimeout(appCtx, 20*time.Second); defer cancel()
			m, ec, err := core.Connect(ctx, core.Params{
				RPC: strings.TrimSpace(rpcEntry.Text), ChainID: chainID,
				Marketplace: common.HexToAddress(addr), PrivKeyHex: strings.TrimSpace(pkEntry.Text),
				TipGwei: cfg.TipGwei, GasLimit: cfg.GasLimit, Logf: logf,
			})
			if err != nil {
				msg := err.Error()
				if isRPCTimeout(msg) { msg = "RPC timeout: " + msg }
				connLbl.SetText(msg); logf("connect: %v", err); return
			}
			setMarket(m, ec)
			if m.Sender() == (common.Address{}) {
				connLbl.SetText("connected (read-only, no private key)")
			} else {
				connLbl.SetText("connected as " + m.Sender().Hex())
			}
			refreshBalance()
		}()
	}

	themeCheck := widget.NewCheck("Dark", func(b bool){ dark = b; a.Settings().SetTheme(makeTheme(dark)) })
	themeCheck.SetChecked(dark)

	walletCard := widget.NewCard("Wallet", "", widget.NewForm(
		widget.NewFormItem("RPC URL", rpcEntry),
		widget.NewFormItem("Chain ID", chainEntry),
		widget.NewFormItem("Marketplace", marketEntry),
		widget.NewFormItem("cEUR token", ceurEntry),
		widget.NewFormItem("Private key", pkEntry),
		widget.NewFormItem("Sender", senderEntry),
		widget.NewFormItem("", container.NewGridWithColumns(3,
			widget.NewButtonWithIcon("Connect", theme.LoginIcon(), connect),
			widget.NewButtonWithIcon("Balance", theme.ViewRefreshIcon(), func(){ go refreshBalance() }),
			themeCheck,
		)),
	))

	// Rooms created in this and earlier sessions.
	roomsTable = widget.NewTable(
		func() (int, int) { return roomsLen()+1, 5 },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			lbl := obj.(*widget.Label)
			lbl.TextStyle = fyne.TextStyle{}
			if id.Row == 0 {
				lbl.TextStyle = fyne.TextStyle{Bold: true}
				lbl.SetText([]string{"Name", "Location", "Price (cEUR)", "Tx", "Created"}[id.Col])
				return
			}
			r, ok := roomAt(id.Row-1)
			if !ok { lbl.SetText(""); return }
			switch id.Col {
			case 0: lbl.SetText(r.Name)
			case 1: lbl.SetText(r.Location)
			case 2: lbl.SetText(r.Price)
			case 3: lbl.TextStyle = fyne.TextStyle{Monospace: true}; lbl.SetText(short(r.TxHash))
			case 4: lbl.SetText(r.CreatedAt)
			}
		},
	)
	for i, wd := range []float32{220, 160, 120, 180, 180} { roomsTable.SetColumnWidth(i, wd) }
	roomsCard := widget.NewCard("My rooms", "", roomsTable)

	onCreated := func(res core.Result) {
		block := ""
		if res.Receipt != nil && res.Receipt.BlockNumber != nil { block = res.Receipt.BlockNumber.String() }
		addRoom(roomRecord{
			Name: res.Fields.Name, Location: res.Fields.Location,
			Price: core.FormatPrice(res.PriceWei), PriceWei: res.PriceWei.String(),
			TxHash: res.TxHash.Hex(), Block: block,
			CreatedAt: time.Now().Format("2006-01-02 15:04"),
		})
		if err := saveRoomsToFile(); err != nil { logf("session save: %v", err) }
		roomsTable.Refresh()
		go refreshBalance()
	}

	addBtn := widget.NewButtonWithIcon("Add Room", theme.ContentAddIcon(), func(){
		openAddRoomModal(a, w, cfg.Debounce, cfg.ConfirmTimeout, onCreated)
	})
	addBtn.Importance = widget.HighImportance
	logsBtn := widget.NewButtonWithIcon("Logs", theme.ListIcon(), func(){ ensureLogWindow(a).Show() })

	top := container.NewVBox(
		walletCard,
		container.NewBorder(nil, nil, addBtn, logsBtn, container.NewHBox(connLbl, balanceLbl)),
	)
	bg := canvas.NewLinearGradient(color.NRGBA{10, 22, 16, 255}, color.NRGBA{18, 36, 26, 255}, 90)
	w.SetContent(container.NewStack(bg, container.NewBorder(top, nil, nil, nil, roomsCard)))

	if strings.TrimSpace(cfg.MarketplaceAddress) != "" { connect() }
	w.ShowAndRun()
}

func short(s string) string {
	if len(s) <= 16 { return s }
	return s[:10] + "…" + s[len(s)-5:]
}
