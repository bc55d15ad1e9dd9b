package repository

import "context"

// Pinger is implemented by store and cache connections that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}
