package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func TestRangeMatches(t *testing.T) {
	tests := []struct {
		name string
		r    *Range
		in   []int64
		out  []int64
	}{
		{
			name: "inclusive both",
			r:    NewRange("ts", 4, ptr(10), ptr(20), true, true),
			in:   []int64{10, 15, 20},
			out:  []int64{9, 21},
		},
		{
			name: "exclusive both",
			r:    NewRange("ts", 4, ptr(10), ptr(20), false, false),
			in:   []int64{11, 19},
			out:  []int64{10, 20},
		},
		{
			name: "open lower",
			r:    NewRange("ts", 4, nil, ptr(0), true, true),
			in:   []int64{-1 << 62, -1, 0},
			out:  []int64{1},
		},
		{
			name: "open upper",
			r:    NewRange("ts", 4, ptr(0), nil, false, true),
			in:   []int64{1, 1 << 62},
			out:  []int64{0, -5},
		},
		{
			name: "open both",
			r:    NewRange("ts", 4, nil, nil, true, true),
			in:   []int64{-1 << 62, 0, 1 << 62},
		},
		{
			name: "single point",
			r:    NewRange("ts", 4, ptr(7), ptr(7), true, true),
			in:   []int64{7},
			out:  []int64{6, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range tt.in {
				assert.True(t, tt.r.Matches(v), "%d must match %s", v, tt.r)
			}
			for _, v := range tt.out {
				assert.False(t, tt.r.Matches(v), "%d must not match %s", v, tt.r)
			}
		})
	}
}

func TestRangeString(t *testing.T) {
	assert.Equal(t, "ts:[10 TO 20]", NewRange("ts", 4, ptr(10), ptr(20), true, true).String())
	assert.Equal(t, "ts:{10 TO 20}", NewRange("ts", 4, ptr(10), ptr(20), false, false).String())
	assert.Equal(t, "ts:[* TO 0]", NewRange("ts", 4, nil, ptr(0), true, true).String())
	assert.Equal(t, "ts:{-5 TO *]", NewRange("ts", 4, ptr(-5), nil, false, true).String())
}
