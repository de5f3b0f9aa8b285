// Package delivery defines the contract every transport entry point
// implements, so the application core stays independent of how
// requests arrive.
package delivery

import "context"

// Delivery is a long-running request entry point, such as an HTTP server.
type Delivery interface {
	// Serve blocks and handles requests until the context is done or
	// the server is shut down.
	Serve(ctx context.Context) error
}
