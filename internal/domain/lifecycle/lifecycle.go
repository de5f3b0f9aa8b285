// Package lifecycle holds shared constants for application startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown steps such as the
// initial database ping and draining the HTTP server.
const DefaultTimeout = 10 * time.Second
