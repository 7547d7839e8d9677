package util

import (
	"go.uber.org/zap"
)

// ZapUint64AsSizeStr forms string zap.Field with val converted to size string.
func ZapUint64AsSizeStr(key string, val uint64) zap.Field {
	return zap.String(key, SizeStr(val))
}

// ZapMsTsAsESTimeStr converts timestamp in milliseconds to ES time format
// string and forms string zap.Field.
func ZapMsTsAsESTimeStr(key string, ts uint64) zap.Field {
	return zap.String(key, MsTsToESFormat(ts))
}
