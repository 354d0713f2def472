package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"
)

// ObjectStore is the slice of the managed object-storage service the
// deliverable workflow needs: durable puts and short-lived signed download
// links.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	PresignDownload(ctx context.Context, key, downloadName string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey builds the bucket key for an uploaded file, scoped by the owning
// user: {userID}/{timestamp}.{ext}.
func ObjectKey(userID, fileName string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("%s/%d%s", userID, time.Now().UnixNano(), ext)
}
