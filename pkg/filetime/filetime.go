// Package filetime encodes timestamps as Windows file times: the number of
// 100-nanosecond intervals elapsed since 1601-01-01 00:00:00 UTC.
package filetime

import (
	"strconv"
	"time"
)

// unix epoch expressed in file-time ticks
const epochDelta = 116444736000000000

func FromTime(t time.Time) int64 {
	return t.UTC().UnixNano()/100 + epochDelta
}

func ToTime(ft int64) time.Time {
	return time.Unix(0, (ft-epochDelta)*100).UTC()
}

// String renders t the way clients receive timestamps: a decimal file time.
func String(t time.Time) string {
	return strconv.FormatInt(FromTime(t), 10)
}
