package datastore

import "context"

// SnapshotStrategy はドライバに依存したスナップショットの復元/永続化フックを表します。
// - SQLite では VACUUM INTO + オブジェクトストレージへの二相アップロードを実装
// - Restore は起動時、Persist は終了時と定期バックアップ時に呼ばれます。
type SnapshotStrategy interface {
	Restore(ctx context.Context, dbPath string) error
	Persist(ctx context.Context, dbPath string) error
}

// NoopSnapshotStrategy は何もしない実装です。
type NoopSnapshotStrategy struct{}

func (NoopSnapshotStrategy) Restore(ctx context.Context, dbPath string) error { return nil }
func (NoopSnapshotStrategy) Persist(ctx context.Context, dbPath string) error { return nil }
