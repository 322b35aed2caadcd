package templates

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/oshokin/fastforge-configs/internal/domain/fastforge"
)

// embedRoot is the directory inside Files that mirrors the output root.
const embedRoot = "fastforge"

// Files holds the raw packaging configs.
//
//go:embed fastforge
var Files embed.FS

// catalogPaths lists the configs in the order they are written and reported.
//
//nolint:gochecknoglobals // Fixed catalog, never mutated.
var catalogPaths = []string{
	"linux/packaging/appimage/make_config.yaml",
	"linux/packaging/deb/make_config.yaml",
	"linux/packaging/rpm/make_config.yaml",
	"windows/packaging/exe/make_config.yaml",
	"windows/packaging/msix/make_config.yaml",
	"macos/packaging/dmg/make_config.yaml",
	"macos/packaging/pkg/make_config.yaml",
}

// Paths returns the relative paths of the catalog in write order.
func Paths() []string {
	return append([]string(nil), catalogPaths...)
}

// Default builds the catalog as a TemplateSet.
func Default() (*fastforge.TemplateSet, error) {
	return Load(Files, embedRoot, catalogPaths)
}

// Load reads the named files from fsys below dir and returns them as an ordered set.
func Load(fsys fs.FS, dir string, paths []string) (*fastforge.TemplateSet, error) {
	var set fastforge.TemplateSet

	for _, rel := range paths {
		contents, err := fs.ReadFile(fsys, dir+"/"+rel)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", rel, err)
		}

		err = set.Add(fastforge.TemplateEntry{
			RelativePath: rel,
			Content:      string(contents),
		})
		if err != nil {
			return nil, err
		}
	}

	return &set, nil
}
