package storage

import "context"

// ObjectStore abstracts the object-storage calls used for SQLite snapshots.
type ObjectStore interface {
	// DownloadIfNeeded copies object to dest; a missing object yields an empty dest file.
	DownloadIfNeeded(ctx context.Context, bucket, object, dest string) error
	// UploadTwoPhaseWithBackup uploads localPath to a tmp object, copies it over
	// currentObject and backupObject, then removes the tmp.
	UploadTwoPhaseWithBackup(ctx context.Context, bucket, currentObject, backupObject, localPath string) error
}
