// Package clock provides the monotonic millisecond time source the cache
// uses for lazy TTL expiry.
package clock

import "time"

// Clock returns milliseconds since an arbitrary monotonic epoch.
// Tests substitute a fake implementation to avoid timing flakiness;
// production code uses Monotonic.
type Clock interface {
	NowMillis() int64
}

// Monotonic is the default Clock, backed by time.Now.
// It reads the wall clock once, when the package is initialised, and
// advances from there by the monotonic reading time.Now carries, so a later
// wall-clock step does not move it.
type Monotonic struct{}

var (
	start       = time.Now()
	startMillis = start.UnixMilli()
)

func (Monotonic) NowMillis() int64 { return startMillis + time.Since(start).Milliseconds() }
