//go:build windows

package output

import (
	"context"
	"os"

	"github.com/oshokin/fastforge-configs/internal/logger"
)

// replaceFile falls back to a plain write: renameio does not support Windows.
func replaceFile(ctx context.Context, path string, data []byte, mode os.FileMode) error {
	logger.DebugKV(ctx, "Atomic replace is unavailable on Windows, writing in place", "path", path)

	return os.WriteFile(path, data, mode)
}
