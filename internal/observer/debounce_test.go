package observer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestDebouncer_CollapsesBurst(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { fired.Add(1) })
	defer d.Stop()

	// A burst of rapid triggers must produce exactly one callback
	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(time.Millisecond)
	}

	assert.Eventually(t, func() bool { return fired.Load() == 1 },
		500*time.Millisecond, 10*time.Millisecond)

	// And it stays at one once settled
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { fired.Add(1) })
	defer d.Stop()

	d.Trigger()
	assert.Eventually(t, func() bool { return fired.Load() == 1 },
		500*time.Millisecond, 5*time.Millisecond)

	d.Trigger()
	assert.Eventually(t, func() bool { return fired.Load() == 2 },
		500*time.Millisecond, 5*time.Millisecond)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	// Triggers after Stop are rejected
	d.Trigger()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebouncer_DefaultInterval(t *testing.T) {
	d := NewDebouncer(0, func() {})
	defer d.Stop()
	assert.Equal(t, DefaultDebounce, d.interval)
}
