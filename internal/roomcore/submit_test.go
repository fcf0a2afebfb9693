package roomcore

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	hash    common.Hash
	receipt *types.Receipt
	err     error
	release chan struct{} // Wait blocks until closed when set
}

func (f *fakeTx) Hash() common.Hash { return f.hash }

func (f *fakeTx) Wait(ctx context.Context) (*types.Receipt, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.receipt, f.err
}

type fakeWriter struct {
	mu       sync.Mutex
	calls    int
	method   string
	args     []any
	sendErr  error
	tx       *fakeTx
	noWriter bool
}

func (w *fakeWriter) Prepare(method string, args ...any) WriteFunc {
	if w.noWriter {
		return nil
	}
	return func(ctx context.Context) (PendingTx, error) {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.calls++
		w.method = method
		w.args = args
		if w.sendErr != nil {
			return nil, w.sendErr
		}
		return w.tx, nil
	}
}

func (w *fakeWriter) callCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls
}

type recNotifier struct {
	mu      sync.Mutex
	pending []string
	success []string
	errs    []string
}

func (n *recNotifier) Pending(m string) { n.mu.Lock(); n.pending = append(n.pending, m); n.mu.Unlock() }
func (n *recNotifier) Success(m string) { n.mu.Lock(); n.success = append(n.success, m); n.mu.Unlock() }
func (n *recNotifier) Error(m string)   { n.mu.Lock(); n.errs = append(n.errs, m); n.mu.Unlock() }

type statusLog struct {
	mu  sync.Mutex
	seq []string
}

func (l *statusLog) add(s string) { l.mu.Lock(); l.seq = append(l.seq, s); l.mu.Unlock() }

func (l *statusLog) idleCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, s := range l.seq {
		if s == StatusIdle {
			n++
		}
	}
	return n
}

func okTx() *fakeTx {
	return &fakeTx{
		hash:    common.HexToHash("0xabc1"),
		receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(7)},
	}
}

func newTestSubmitter(t *testing.T, w Preparer) (*Submitter, *recNotifier, *statusLog) {
	t.Helper()
	form := NewForm(time.Hour)
	t.Cleanup(form.Close)
	n := &recNotifier{}
	st := &statusLog{}
	s := &Submitter{Form: form, Writer: w, Notify: n, OnStatus: st.add, Logf: t.Logf}
	return s, n, st
}

func TestSubmitSuccess(t *testing.T) {
	w := &fakeWriter{tx: okTx()}
	s, n, st := newTestSubmitter(t, w)
	var done []Result
	s.OnDone = func(r Result) { done = append(done, r) }

	// Values are still inside the debounce window; Submit must use the final ones.
	s.Form.SetFields(fullFields())
	require.True(t, s.CanSubmit())

	res, err := s.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, MethodWriteRoom, w.method)
	require.Len(t, w.args, 5)
	assert.Equal(t, "Sea view loft", w.args[0])
	assert.Equal(t, "https://example.com/loft.jpg", w.args[1])
	assert.Equal(t, "Two beds, balcony", w.args[2])
	assert.Equal(t, "Lisbon", w.args[3])
	assert.Equal(t, 0, wei("1500000000000000000").Cmp(w.args[4].(*big.Int)))

	assert.Equal(t, common.HexToHash("0xabc1"), res.TxHash)
	assert.Equal(t, fullFields(), res.Fields)
	require.Len(t, done, 1)

	assert.Equal(t, []string{StatusCreating, StatusWaiting, StatusIdle}, st.seq)
	assert.Equal(t, []string{MsgPending}, n.pending)
	assert.Equal(t, []string{MsgSuccess}, n.success)
	assert.Empty(t, n.errs)

	assert.Equal(t, EmptyFields(), s.Form.Fields())
	assert.Equal(t, EmptyFields(), s.Form.Debounced())
	assert.False(t, s.Form.Loading())
}

func TestSubmitIncompleteNeverWrites(t *testing.T) {
	w := &fakeWriter{tx: okTx()}
	s, n, st := newTestSubmitter(t, w)

	f := fullFields()
	f.Location = ""
	s.Form.SetFields(f)
	assert.False(t, s.CanSubmit())

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Zero(t, w.callCount())
	assert.Equal(t, []string{"Please fill all fields"}, n.errs)
	assert.Equal(t, []string{StatusCreating, StatusIdle}, st.seq)
	assert.Equal(t, f, s.Form.Fields())
}

func TestSubmitWithoutWriter(t *testing.T) {
	s, n, st := newTestSubmitter(t, nil)
	s.Form.SetFields(fullFields())
	assert.False(t, s.CanSubmit())

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoWriter)
	assert.Equal(t, []string{"Failed to create room"}, n.errs)
	assert.Equal(t, 1, st.idleCount())
	assert.Equal(t, []string{StatusIdle}, st.seq)
}

func TestSubmitUnpreparedWrite(t *testing.T) {
	w := &fakeWriter{noWriter: true}
	s, n, _ := newTestSubmitter(t, w)
	s.Form.SetFields(fullFields())

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoWriter)
	assert.Equal(t, []string{"Failed to create room"}, n.errs)
}

func TestSubmitRejections(t *testing.T) {
	cases := []struct {
		name    string
		writer  *fakeWriter
		price   string
		wantMsg string
		wantErr error
	}{
		{
			name:    "send rejected",
			writer:  &fakeWriter{sendErr: errors.New("user rejected transaction")},
			wantMsg: "user rejected transaction",
		},
		{
			name:    "empty message",
			writer:  &fakeWriter{sendErr: errors.New("")},
			wantMsg: FallbackMessage,
		},
		{
			name:    "wait failed",
			writer:  &fakeWriter{tx: &fakeTx{hash: common.HexToHash("0x1"), err: errors.New("receipt lookup failed")}},
			wantMsg: "receipt lookup failed",
		},
		{
			name:    "reverted",
			writer:  &fakeWriter{tx: &fakeTx{hash: common.HexToHash("0x2"), receipt: &types.Receipt{Status: types.ReceiptStatusFailed}}},
			wantErr: ErrReverted,
		},
		{
			name:    "bad price",
			writer:  &fakeWriter{tx: okTx()},
			price:   "12 EUR",
			wantErr: ErrInvalidPrice,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, n, st := newTestSubmitter(t, c.writer)
			f := fullFields()
			if c.price != "" {
				f.Price = c.price
			}
			s.Form.SetFields(f)
			doneCalled := false
			s.OnDone = func(Result) { doneCalled = true }

			_, err := s.Submit(context.Background())
			require.Error(t, err)
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
			}
			require.Len(t, n.errs, 1)
			if c.wantMsg != "" {
				assert.Equal(t, c.wantMsg, n.errs[0])
			}
			assert.Empty(t, n.success)
			assert.Equal(t, 1, st.idleCount())
			assert.False(t, s.Form.Loading())
			assert.False(t, doneCalled)
			assert.Equal(t, f, s.Form.Fields(), "form keeps input after a failure")
		})
	}
}

func TestSubmitBusyGuard(t *testing.T) {
	tx := okTx()
	tx.release = make(chan struct{})
	w := &fakeWriter{tx: tx}
	s, n, _ := newTestSubmitter(t, w)
	s.Form.SetFields(fullFields())

	errc := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		errc <- err
	}()

	require.Eventually(t, func() bool { return s.Form.Status() == StatusWaiting }, 2*time.Second, 5*time.Millisecond)
	assert.False(t, s.CanSubmit())

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	close(tx.release)
	require.NoError(t, <-errc)
	assert.Equal(t, 1, w.callCount())
	assert.Empty(t, n.errs)
	assert.Equal(t, []string{MsgPending}, n.pending)
}

func TestSubmitWaitHonoursContext(t *testing.T) {
	tx := okTx()
	tx.release = make(chan struct{})
	s, n, _ := newTestSubmitter(t, &fakeWriter{tx: tx})
	s.Form.SetFields(fullFields())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.Submit(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{context.DeadlineExceeded.Error()}, n.errs)
	assert.False(t, s.Form.Loading())
}

func TestSubmitFollowsLiveWriter(t *testing.T) {
	var mu sync.Mutex
	var current Preparer
	live := LivePreparer(func() Preparer {
		mu.Lock()
		defer mu.Unlock()
		return current
	})
	swap := func(p Preparer) { mu.Lock(); current = p; mu.Unlock() }

	s, n, _ := newTestSubmitter(t, live)
	s.Form.SetFields(fullFields())
	assert.False(t, s.CanSubmit(), "no wallet connected yet")

	first := &fakeWriter{tx: okTx()}
	swap(first)
	assert.True(t, s.CanSubmit(), "wallet connected after the form opened")

	// Reconnect: the next write must go through the new connection.
	second := &fakeWriter{tx: okTx()}
	swap(second)
	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.Zero(t, first.callCount())
	assert.Equal(t, 1, second.callCount())

	swap(nil)
	s.Form.SetFields(fullFields())
	assert.False(t, s.CanSubmit())
	_, err = s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoWriter)
	assert.Equal(t, []string{"Failed to create room"}, n.errs)
}

func TestLivePreparerNil(t *testing.T) {
	var live LivePreparer
	assert.False(t, live.Available())
	assert.Nil(t, live.Prepare(MethodWriteRoom))
}
