package storage

import "context"

// SnapshotStorage defines the interface for uploading state snapshots to
// object storage. The state file is the only durable copy of the user's data,
// so an off-device backup is the one piece of remote storage this app has.
type SnapshotStorage interface {
	// UploadSnapshot stores one serialized state blob under the given key.
	UploadSnapshot(ctx context.Context, objectKey string, data []byte) error
}
