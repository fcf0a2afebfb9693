package main

import (
	"context"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	core "github.com/ligun0805/room-market/internal/roomcore"
)

// Shared UI state.
var (
	appCtx    context.Context
	appCancel context.CancelFunc

	logWin     fyne.Window
	logBox     *widget.Entry
	logScroll  *container.Scroll
	logStatLbl *widget.Label

	roomsTable *widget.Table

	marketMu sync.Mutex
	market   *core.Marketplace
	chainEC  *ethclient.Client
	watchers = map[int]func(){}
	watchSeq int

	statsCreated atomic.Int64
	statsFailed  atomic.Int64
)

// currentMarket returns the connected marketplace or nil.
func currentMarket() *core.Marketplace {
	marketMu.Lock()
	defer marketMu.Unlock()
	return market
}

// setMarket swaps the connection, closing the previous client.
func setMarket(m *core.Marketplace, ec *ethclient.Client) {
	marketMu.Lock()
	old := chainEC
	market, chainEC = m, ec
	fns := make([]func(), 0, len(watchers))
	for _, fn := range watchers { fns = append(fns, fn) }
	marketMu.Unlock()
	if old != nil && old != ec {
		old.Close()
	}
	for _, fn := range fns { fn() }
}

// watchMarket runs fn after every setMarket until the returned func is called.
func watchMarket(fn func()) (unwatch func()) {
	marketMu.Lock()
	watchSeq++
	id := watchSeq
	watchers[id] = fn
	marketMu.Unlock()
	return func() {
		marketMu.Lock()
		delete(watchers, id)
		marketMu.Unlock()
	}
}

// liveWriter resolves the marketplace at write time, not when a form opens.
func liveWriter() core.Preparer {
	return core.LivePreparer(func() core.Preparer { return writerFor(currentMarket()) })
}

// writerFor avoids handing a typed nil to the submitter. A read-only
// connection has no write capability either.
func writerFor(m *core.Marketplace) core.Preparer {
	if m == nil || m.Sender() == (common.Address{}) {
		return nil
	}
	return m
}
