package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/term"

	core "github.com/ligun0805/room-market/internal/roomcore"
)

func readLine(r *bufio.Reader, w io.Writer, prompt string) string {
	fmt.Fprint(w, prompt)
	t, _ := r.ReadString('\n')
	return strings.TrimSpace(t)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil { return "", fmt.Errorf("read password: %w", err) }
	return strings.TrimSpace(string(b)), nil
}

func maskHex(h string) string { h = strings.TrimSpace(h); if len(h) <= 10 { return "***" }; return h[:6] + "…" + h[len(h)-4:] }

// promptFields asks for the five Add Room inputs in form order.
func promptFields(r *bufio.Reader, w io.Writer) core.Fields {
	return core.Fields{
		Name:        readLine(r, w, "Room Name: "),
		ImageURL:    readLine(r, w, "Room Image (URL): "),
		Description: readLine(r, w, "Room Description: "),
		Location:    readLine(r, w, "Room Location: "),
		Price:       readLine(r, w, "Room Price (cEUR): "),
	}
}

// loadRoomsFile picks the parser by file extension.
func loadRoomsFile(path string) ([]core.Fields, error) {
	f, err := os.Open(path)
	if err != nil { return nil, err }
	defer f.Close()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return core.ParseRoomsCSV(f)
	case ".json":
		return core.ParseRoomsJSON(f)
	}
	return nil, fmt.Errorf("%s: use .csv or .json", path)
}

// consoleNotifier prints submit progress.
type consoleNotifier struct{ w io.Writer }

func (n consoleNotifier) Pending(msg string) { fmt.Fprintln(n.w, "  …", msg) }
func (n consoleNotifier) Success(msg string) { fmt.Fprintln(n.w, "  ✔", msg) }
func (n consoleNotifier) Error(msg string)   { fmt.Fprintln(n.w, "  [X]", msg) }
