package roomcore

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settleLog struct {
	mu   sync.Mutex
	vals []string
}

func (l *settleLog) add(v string) {
	l.mu.Lock()
	l.vals = append(l.vals, v)
	l.mu.Unlock()
}

func (l *settleLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.vals...)
}

func TestDebouncedSettlesAfterQuiet(t *testing.T) {
	var log settleLog
	d := NewDebounced("", 200*time.Millisecond, log.add)
	defer d.Stop()

	d.Set("a")
	time.Sleep(20 * time.Millisecond)
	d.Set("ab")
	time.Sleep(20 * time.Millisecond)
	d.Set("abc")

	assert.Equal(t, "", d.Value())
	assert.True(t, d.Pending())

	require.Eventually(t, func() bool { return d.Value() == "abc" }, 2*time.Second, 5*time.Millisecond)
	assert.False(t, d.Pending())
	assert.Equal(t, []string{"abc"}, log.get())
}

func TestDebouncedFlush(t *testing.T) {
	var log settleLog
	d := NewDebounced("x", time.Hour, log.add)
	defer d.Stop()

	assert.False(t, d.Flush())
	d.Set("y")
	assert.Equal(t, "x", d.Value())
	assert.True(t, d.Flush())
	assert.Equal(t, "y", d.Value())
	assert.False(t, d.Flush())
	assert.Equal(t, []string{"y"}, log.get())
}

func TestDebouncedResetDropsPending(t *testing.T) {
	var log settleLog
	d := NewDebounced("", 30*time.Millisecond, log.add)

	d.Set("typed")
	d.Reset("")
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, "", d.Value())
	assert.False(t, d.Pending())
	assert.Empty(t, log.get())
}

func TestDebouncedStop(t *testing.T) {
	d := NewDebounced(1, 30*time.Millisecond, nil)
	d.Set(2)
	d.Stop()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, d.Value())
}

func TestDebouncedZeroDelayIsImmediate(t *testing.T) {
	var log settleLog
	d := NewDebounced("", 0, log.add)
	d.Set("now")
	assert.Equal(t, "now", d.Value())
	assert.Equal(t, []string{"now"}, log.get())
}

func TestDebouncedFlushWhileTyping(t *testing.T) {
	d := NewDebounced(0, time.Hour, nil)
	defer d.Stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= 500; i++ {
			d.Set(i)
		}
	}()
	go func() {
		defer wg.Done()
		last := 0
		for i := 0; i < 500; i++ {
			d.Flush()
			v := d.Value()
			assert.GreaterOrEqual(t, v, last, "settled value never goes back")
			last = v
		}
	}()
	wg.Wait()

	d.Flush()
	assert.Equal(t, 500, d.Value())
	assert.False(t, d.Pending())
}

func TestDebouncedFlushTakesLatestSet(t *testing.T) {
	var log settleLog
	d := NewDebounced("", time.Hour, log.add)
	defer d.Stop()

	d.Set("a")
	d.Set("ab")
	require.True(t, d.Flush())
	assert.Equal(t, "ab", d.Value())
	assert.Equal(t, []string{"ab"}, log.get())
}
