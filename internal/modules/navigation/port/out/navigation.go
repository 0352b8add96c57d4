package out

import "context"

// FlagStore persists named booleans across process restarts. A key that was
// never written reads as false.
type FlagStore interface {
	ReadFlag(ctx context.Context, key string) (bool, error)
	WriteFlag(ctx context.Context, key string, value bool) error
}
