package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"cloud.google.com/go/storage"

	storageif "github.com/kawabatas/songbook/internal/infra/storage"
	"github.com/kawabatas/songbook/internal/util/clock"
)

// Adapter implements storage.ObjectStore on Google Cloud Storage.
// The client is created on first use and reused until Close.
type Adapter struct {
	mu     sync.Mutex
	client *storage.Client
}

var _ storageif.ObjectStore = (*Adapter)(nil)

func (a *Adapter) bucket(ctx context.Context, name string) (*storage.BucketHandle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client == nil {
		c, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		a.client = c
	}
	return a.client.Bucket(name), nil
}

// Close releases the underlying client, if any.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client == nil {
		return nil
	}
	err := a.client.Close()
	a.client = nil
	return err
}

func (a *Adapter) DownloadIfNeeded(ctx context.Context, bucket, object, dest string) error {
	b, err := a.bucket(ctx, bucket)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	rc, err := b.Object(object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		// 初回起動: 空ファイルから始める
		slog.WarnContext(ctx, "snapshot object not found, starting empty", slog.String("bucket", bucket), slog.String("object", object))
		f, err := os.Create(dest)
		if err != nil {
			return err
		}
		return f.Close()
	}
	if err != nil {
		return fmt.Errorf("open %s/%s: %w", bucket, object, err)
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf("download %s/%s: %w", bucket, object, err)
	}
	slog.InfoContext(ctx, "snapshot restored", slog.String("bucket", bucket), slog.String("object", object))
	return out.Close()
}

func (a *Adapter) UploadTwoPhaseWithBackup(ctx context.Context, bucket, currentObject, backupObject, localPath string) error {
	b, err := a.bucket(ctx, bucket)
	if err != nil {
		return err
	}
	tmp := b.Object(currentObject + ".tmp-" + clock.NowUTCFormatted("20060102-150405"))

	if err := upload(ctx, tmp, localPath); err != nil {
		return err
	}
	if backupObject == "" {
		backupObject = "backups/" + clock.NowUTCFormatted("2006-01-02") + "/" + clock.NowUTCFormatted("150405") + "-" + filepath.Base(currentObject)
	}
	// tmp -> current, tmp -> backup の順にコピーし、失敗時は tmp を掃除する
	for _, name := range []string{currentObject, backupObject} {
		if _, err := b.Object(name).CopierFrom(tmp).Run(ctx); err != nil {
			_ = tmp.Delete(ctx)
			return fmt.Errorf("copy to %s: %w", name, err)
		}
	}
	return tmp.Delete(ctx)
}

func upload(ctx context.Context, obj *storage.ObjectHandle, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()
	wc := obj.NewWriter(ctx)
	if _, err := io.Copy(wc, f); err != nil {
		_ = wc.Close()
		return fmt.Errorf("upload %s: %w", obj.ObjectName(), err)
	}
	return wc.Close()
}
