package storage

import "context"

// Stager makes a local video reachable by URL so the Graph API can fetch it.
type Stager interface {
	Stage(ctx context.Context, localPath string) (string, error)
}
