package analysis

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := NewPool(2)

	var running, peak, done atomic.Int32
	tasks := make([]func() error, 10)
	for i := range tasks {
		tasks[i] = func() error {
			cur := running.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			done.Add(1)
			return nil
		}
	}

	assert.NoError(t, pool.Run(tasks...))
	assert.Equal(t, int32(10), done.Load())
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestPoolRunReturnsError(t *testing.T) {
	pool := NewPool(4)
	boom := errors.New("boom")

	var ran atomic.Int32
	err := pool.Run(
		func() error { ran.Add(1); return nil },
		func() error { ran.Add(1); return boom },
		func() error { ran.Add(1); return nil },
	)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(3), ran.Load())
}

func TestNewPoolDefaultSize(t *testing.T) {
	assert.Equal(t, DefaultWorkers, NewPool(0).Size())
	assert.Equal(t, 7, NewPool(7).Size())
	assert.NoError(t, NewPool(1).Run())
}
