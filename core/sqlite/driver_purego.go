//go:build !cgo_sqlite

package sqlite

import (
	"strconv"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const (
	driverName = "sqlite"
	driverType = "purego"
)

func busyTimeoutParam(ms int64) string {
	return "_pragma=busy_timeout(" + strconv.FormatInt(ms, 10) + ")"
}
