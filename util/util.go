package util

import (
	"reflect"
	"time"
	"unsafe"

	"github.com/c2h5oh/datasize"

	"github.com/seqmap/seqmap/consts"
)

func ByteToStringUnsafe(b []byte) string {
	return *(*string)(unsafe.Pointer(&b))
}

func StringToByteUnsafe(str string) []byte { // this works fine
	var buf = *(*[]byte)(unsafe.Pointer(&str))
	(*reflect.SliceHeader)(unsafe.Pointer(&buf)).Cap = len(str)
	return buf
}

func SizeStr(bytes uint64) string {
	return datasize.ByteSize(bytes).HR()
}

func RunEvery(done <-chan struct{}, runInterval time.Duration, actionFn func()) {
	runTicker := time.NewTicker(runInterval)
	defer runTicker.Stop()

	actionFn() // first launch without delay

	for {
		select {
		case <-done:
			return
		case <-runTicker.C:
			actionFn()
		}
	}
}

// MsTsToESFormat converts timestamp in milliseconds to ES time format string.
func MsTsToESFormat(ts uint64) string {
	return time.UnixMilli(int64(ts)).Format(consts.ESTimeFormat)
}
