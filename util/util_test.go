package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUnsafeConversions(t *testing.T) {
	s := "2015-01-01T12:10:30"
	b := StringToByteUnsafe(s)
	assert.Equal(t, len(s), len(b))
	assert.Equal(t, len(s), cap(b))
	assert.Equal(t, s, ByteToStringUnsafe(b))

	assert.Equal(t, "", ByteToStringUnsafe(nil))
}

func TestMsTsToESFormat(t *testing.T) {
	// rendering happens in the local zone, so build the reference there
	ts := time.Date(2015, 1, 1, 12, 10, 30, int(42*time.Millisecond), time.Local)
	assert.Equal(t, ts.Format("2006-01-02 15:04:05.999"), MsTsToESFormat(uint64(ts.UnixMilli())))
}

func TestRunEvery(t *testing.T) {
	done := make(chan struct{})
	calls := make(chan struct{}, 4)

	go RunEvery(done, time.Millisecond, func() {
		select {
		case calls <- struct{}{}:
		default:
		}
	})

	// first run fires immediately, the rest on ticks
	<-calls
	<-calls
	close(done)
}
