package emitter

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/fastforge-configs/internal/domain/fastforge"
	"github.com/oshokin/fastforge-configs/internal/logger"
	"github.com/oshokin/fastforge-configs/internal/repository/output"
)

// ErrNoTemplates is returned when there is nothing to write.
var ErrNoTemplates = errors.New("template set is empty")

// CreateConfigs writes every entry of templates in order and returns the written relative paths.
// The first failure aborts the run; files written before it are left in place.
func CreateConfigs(ctx context.Context, templates *fastforge.TemplateSet, w output.Writer) (fastforge.WrittenFileList, error) {
	if templates.Len() == 0 {
		return nil, ErrNoTemplates
	}

	written := make(fastforge.WrittenFileList, 0, templates.Len())

	for _, entry := range templates.Entries() {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		logger.DebugKV(ctx, "Writing config file",
			"path", entry.RelativePath,
			"destination", w.Destination(entry.RelativePath),
			"bytes", len(entry.Content))

		if err := w.Write(ctx, entry); err != nil {
			return written, fmt.Errorf("create %s: %w", entry.RelativePath, err)
		}

		written = append(written, entry.RelativePath)
	}

	return written, nil
}
