package main

import (
	"encoding/json"
	"os"
	"sync"
)

// roomRecord is one confirmed listing kept in the session file.
type roomRecord struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	Price     string `json:"price"`
	PriceWei  string `json:"priceWei"`
	TxHash    string `json:"txHash"`
	Block     string `json:"block,omitempty"`
	CreatedAt string `json:"createdAt"`
}

var (
	sessionFile = "rooms_session.json"
	roomsMu     sync.Mutex
	rooms       []roomRecord
)

func saveRoomsToFile() error {
	roomsMu.Lock()
	arr := append([]roomRecord(nil), rooms...)
	roomsMu.Unlock()
	f, err := os.Create(sessionFile)
	if err != nil { return err }
	defer f.Close()
	enc := json.NewEncoder(f); enc.SetIndent("", "  ")
	return enc.Encode(arr)
}

func loadRoomsFromFile() error {
	f, err := os.Open(sessionFile)
	if err != nil {
		if os.IsNotExist(err) { return nil }
		return err
	}
	defer f.Close()
	var arr []roomRecord
	if err := json.NewDecoder(f).Decode(&arr); err != nil { return err }
	roomsMu.Lock()
	rooms = arr
	roomsMu.Unlock()
	return nil
}

func addRoom(r roomRecord) {
	roomsMu.Lock()
	rooms = append(rooms, r)
	roomsMu.Unlock()
}

func roomsLen() int {
	roomsMu.Lock()
	defer roomsMu.Unlock()
	return len(rooms)
}

func roomAt(i int) (roomRecord, bool) {
	roomsMu.Lock()
	defer roomsMu.Unlock()
	if i < 0 || i >= len(rooms) { return roomRecord{}, false }
	return rooms[i], true
}
