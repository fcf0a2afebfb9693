package roomcore

import (
	"context"
	"fmt"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Loading texts of the submit flow.
const (
	StatusIdle     = ""
	StatusCreating = "Creating..."
	StatusWaiting  = "Waiting for confirmation..."
)

// Notification texts of the submit flow.
const (
	MsgPending = "Creating room..."
	MsgSuccess = "Room created successfully"
)

// MethodWriteRoom is the marketplace function that lists a room.
const MethodWriteRoom = "writeRoom"

// PendingTx is a sent transaction that can be awaited.
type PendingTx interface {
	Hash() common.Hash
	Wait(ctx context.Context) (*types.Receipt, error)
}

// WriteFunc sends one prepared contract call.
type WriteFunc func(ctx context.Context) (PendingTx, error)

// Preparer binds a contract method and arguments into a WriteFunc.
// It returns nil when the call cannot be made, e.g. no wallet is connected.
type Preparer interface {
	Prepare(method string, args ...any) WriteFunc
}

// LivePreparer looks up the write capability on every use. A wallet that
// connects or reconnects after the form opened is picked up this way.
type LivePreparer func() Preparer

// Prepare resolves the current Preparer and delegates to it.
func (l LivePreparer) Prepare(method string, args ...any) WriteFunc {
	p := l.current()
	if p == nil {
		return nil
	}
	return p.Prepare(method, args...)
}

// Available reports whether a Preparer is resolvable right now.
func (l LivePreparer) Available() bool { return l.current() != nil }

func (l LivePreparer) current() Preparer {
	if l == nil {
		return nil
	}
	return l()
}

// Notifier shows submission progress to the user.
type Notifier interface {
	Pending(msg string)
	Success(msg string)
	Error(msg string)
}

// Result describes a confirmed room listing.
type Result struct {
	Fields   Fields
	PriceWei *big.Int
	TxHash   common.Hash
	Receipt  *types.Receipt
}

// Submitter runs the Add Room flow:
// Idle -> Creating -> WaitingForConfirmation -> Idle.
type Submitter struct {
	Form   *Form
	Writer Preparer
	Notify Notifier

	OnStatus func(status string)  // optional, fired on every status change
	OnDone   func(res Result)     // optional, fired after confirmation (closes the modal)
	Logf     func(string, ...any) // optional

	busy atomic.Bool
}

// CanSubmit mirrors the enabled state of the Create button.
func (s *Submitter) CanSubmit() bool {
	return s.canWrite() && !s.busy.Load() && !s.Form.Loading() && s.Form.IsComplete()
}

// Submit lists the form's room on the marketplace and waits for confirmation.
// Errors are reported through Notify and returned. ErrBusy is returned
// without notification when another Submit is running.
func (s *Submitter) Submit(ctx context.Context) (*Result, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	s.notifyPending(MsgPending)
	res, err := s.create(ctx)
	s.setStatus(StatusIdle)
	if err != nil {
		s.logf("create room failed: %v", err)
		s.notifyError(UserMessage(err))
		return nil, err
	}
	s.logf("room %q confirmed in block %v tx=%s", res.Fields.Name, blockOf(res.Receipt), res.TxHash.Hex())
	s.notifySuccess(MsgSuccess)
	return res, nil
}

func (s *Submitter) create(ctx context.Context) (*Result, error) {
	if !s.canWrite() {
		return nil, ErrNoWriter
	}
	s.setStatus(StatusCreating)
	if !s.Form.IsComplete() {
		return nil, ErrIncomplete
	}

	s.Form.Flush()
	fields := s.Form.Debounced()
	priceWei, err := fields.PriceWei()
	if err != nil {
		return nil, err
	}
	write := s.Writer.Prepare(MethodWriteRoom, fields.Name, fields.ImageURL, fields.Description, fields.Location, priceWei)
	if write == nil {
		return nil, ErrNoWriter
	}

	s.logf("writeRoom: name=%q location=%q priceWei=%s", fields.Name, fields.Location, priceWei.String())
	tx, err := write(ctx)
	if err != nil {
		return nil, err
	}
	s.setStatus(StatusWaiting)
	s.logf("sent tx=%s, waiting for confirmation", tx.Hash().Hex())

	rcpt, err := tx.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if rcpt != nil && rcpt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: tx %s", ErrReverted, tx.Hash().Hex())
	}

	res := Result{Fields: fields, PriceWei: priceWei, TxHash: tx.Hash(), Receipt: rcpt}
	if s.OnDone != nil {
		s.OnDone(res)
	}
	s.Form.Clear()
	return &res, nil
}

// canWrite asks Writers that track a connection whether one is up.
func (s *Submitter) canWrite() bool {
	if s.Writer == nil {
		return false
	}
	if a, ok := s.Writer.(interface{ Available() bool }); ok {
		return a.Available()
	}
	return true
}

func (s *Submitter) setStatus(st string) {
	s.Form.setStatus(st)
	if s.OnStatus != nil {
		s.OnStatus(st)
	}
}

func (s *Submitter) logf(format string, a ...any) {
	if s.Logf != nil {
		s.Logf(format, a...)
	}
}

func (s *Submitter) notifyPending(msg string) {
	if s.Notify != nil {
		s.Notify.Pending(msg)
	}
}

func (s *Submitter) notifySuccess(msg string) {
	if s.Notify != nil {
		s.Notify.Success(msg)
	}
}

func (s *Submitter) notifyError(msg string) {
	if s.Notify != nil {
		s.Notify.Error(msg)
	}
}

func blockOf(r *types.Receipt) any {
	if r == nil || r.BlockNumber == nil {
		return "?"
	}
	return r.BlockNumber
}
