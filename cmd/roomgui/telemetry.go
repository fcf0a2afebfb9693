package main

import "sync"

type TelemetryItem struct {
	Time     string `json:"time"`
	Action   string `json:"action"`
	Room     string `json:"room,omitempty"`
	PriceWei string `json:"priceWei,omitempty"`
	TxHash   string `json:"txHash,omitempty"`
	OK       bool   `json:"ok,omitempty"`
	Error    string `json:"error,omitempty"`
}

var (
	telemetry []TelemetryItem
	telMu     sync.Mutex
)

func telAdd(it TelemetryItem) {
	telMu.Lock()
	telemetry = append(telemetry, it)
	telMu.Unlock()
}

func telSnapshot() []TelemetryItem {
	telMu.Lock()
	defer telMu.Unlock()
	return append([]TelemetryItem(nil), telemetry...)
}
