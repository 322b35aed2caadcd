//go:build !windows

package output

import (
	"context"
	"fmt"
	"os"

	"github.com/google/renameio/v2"

	"github.com/oshokin/fastforge-configs/internal/logger"
)

// replaceFile writes data to a pending file next to path, fsyncs it and renames it over path.
func replaceFile(ctx context.Context, path string, data []byte, mode os.FileMode) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(mode))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}

	// No-op once the file has been committed.
	defer func() {
		if cleanupErr := pendingFile.Cleanup(); cleanupErr != nil {
			logger.DebugKV(ctx, "Cleanup of pending file failed", "path", path, "error", cleanupErr)
		}
	}()

	if _, err = pendingFile.Write(data); err != nil {
		return fmt.Errorf("write pending file: %w", err)
	}

	if err = pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace: %w", err)
	}

	return nil
}
