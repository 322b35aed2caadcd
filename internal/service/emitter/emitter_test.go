package emitter

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/fastforge-configs/internal/domain/fastforge"
	"github.com/oshokin/fastforge-configs/internal/repository/output"
	"github.com/oshokin/fastforge-configs/internal/templates"
)

var errDiskFull = errors.New("no space left on device")

// failingWriter records writes and fails on the entry at failAt.
type failingWriter struct {
	failAt  int
	written []string
}

func (w *failingWriter) Destination(relativePath string) string {
	return "/virtual/" + relativePath
}

func (w *failingWriter) Write(_ context.Context, entry fastforge.TemplateEntry) error {
	if len(w.written) == w.failAt {
		return &output.FilesystemError{Op: output.OpWrite, Path: w.Destination(entry.RelativePath), Err: errDiskFull}
	}

	w.written = append(w.written, entry.RelativePath)

	return nil
}

// snapshot returns relative path -> content for every regular file below root.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	files := make(map[string]string)

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		contents, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		files[filepath.ToSlash(rel)] = string(contents)

		return nil
	})
	require.NoError(t, err)

	return files
}

func catalog(t *testing.T) *fastforge.TemplateSet {
	t.Helper()

	set, err := templates.Default()
	require.NoError(t, err)

	return set
}

func expected(set *fastforge.TemplateSet) map[string]string {
	files := make(map[string]string, set.Len())
	for _, entry := range set.Entries() {
		files[entry.RelativePath] = entry.Content
	}

	return files
}

// TestCreateConfigs_WritesCatalogVerbatim covers completeness, byte fidelity and directory creation.
func TestCreateConfigs_WritesCatalogVerbatim(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "fresh", "project")
	set := catalog(t)

	written, err := CreateConfigs(context.Background(), set, output.NewFileWriter(root))
	require.NoError(t, err)
	require.Equal(t, set.Paths(), []string(written))

	if diff := cmp.Diff(expected(set), snapshot(t, root)); diff != "" {
		t.Fatalf("written tree mismatch (-want +got):\n%s", diff)
	}

	for _, dir := range []string{
		"linux/packaging/appimage",
		"windows/packaging/msix",
		"macos/packaging/dmg",
	} {
		info, statErr := os.Stat(filepath.Join(root, filepath.FromSlash(dir)))
		require.NoError(t, statErr)
		require.True(t, info.IsDir(), dir)
	}
}

// TestCreateConfigs_Idempotent verifies a second run leaves the same tree behind.
func TestCreateConfigs_Idempotent(t *testing.T) {
	t.Parallel()

	for _, atomic := range []bool{false, true} {
		root := t.TempDir()
		set := catalog(t)
		w := output.NewFileWriter(root, output.WithAtomicReplace(atomic))

		_, err := CreateConfigs(context.Background(), set, w)
		require.NoError(t, err)

		first := snapshot(t, root)

		_, err = CreateConfigs(context.Background(), set, w)
		require.NoError(t, err)

		if diff := cmp.Diff(first, snapshot(t, root)); diff != "" {
			t.Fatalf("second run changed the tree (atomic=%v) (-first +second):\n%s", atomic, diff)
		}
	}
}

// TestCreateConfigs_OverwritesExisting ensures stale content is replaced, not appended to.
func TestCreateConfigs_OverwritesExisting(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	set := catalog(t)
	stale := filepath.Join(root, "windows", "packaging", "msix", "make_config.yaml")

	require.NoError(t, os.MkdirAll(filepath.Dir(stale), output.DefaultDirMode))
	require.NoError(t, os.WriteFile(stale, []byte(strings.Repeat("stale: true\n", 100)), output.DefaultFileMode))

	_, err := CreateConfigs(context.Background(), set, output.NewFileWriter(root))
	require.NoError(t, err)

	want, ok := set.Get("windows/packaging/msix/make_config.yaml")
	require.True(t, ok)

	got, err := os.ReadFile(stale)
	require.NoError(t, err)
	require.Equal(t, want.Content, string(got))
}

// TestCreateConfigs_OrderIndependent checks the resulting tree does not depend on write order.
func TestCreateConfigs_OrderIndependent(t *testing.T) {
	t.Parallel()

	set := catalog(t)

	entries := set.Entries()
	slices.Reverse(entries)

	reversed, err := fastforge.NewTemplateSet(entries...)
	require.NoError(t, err)

	forwardRoot, reverseRoot := t.TempDir(), t.TempDir()

	_, err = CreateConfigs(context.Background(), set, output.NewFileWriter(forwardRoot))
	require.NoError(t, err)

	written, err := CreateConfigs(context.Background(), reversed, output.NewFileWriter(reverseRoot))
	require.NoError(t, err)
	require.Equal(t, reversed.Paths(), []string(written))

	require.Equal(t, snapshot(t, forwardRoot), snapshot(t, reverseRoot))
}

// TestCreateConfigs_StopsAtFirstFailure verifies earlier writes are kept and later ones skipped.
func TestCreateConfigs_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	set := catalog(t)
	w := &failingWriter{failAt: 3}

	written, err := CreateConfigs(context.Background(), set, w)
	require.ErrorIs(t, err, errDiskFull)
	require.True(t, output.IsFilesystemError(err))
	require.Contains(t, err.Error(), "windows/packaging/exe/make_config.yaml")
	require.Equal(t, set.Paths()[:3], []string(written))
	require.Equal(t, set.Paths()[:3], w.written)
}

// TestCreateConfigs_RealFailureKeepsEarlierFiles blocks the windows tree with a plain file.
func TestCreateConfigs_RealFailureKeepsEarlierFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "windows"), []byte("blocker"), output.DefaultFileMode))

	_, err := CreateConfigs(context.Background(), catalog(t), output.NewFileWriter(root))
	require.True(t, output.IsFilesystemError(err))

	files := snapshot(t, root)
	require.Contains(t, files, "linux/packaging/rpm/make_config.yaml")
	require.NotContains(t, files, "macos/packaging/dmg/make_config.yaml")
}

// TestCreateConfigs_EmptySet rejects a set with nothing to write.
func TestCreateConfigs_EmptySet(t *testing.T) {
	t.Parallel()

	_, err := CreateConfigs(context.Background(), new(fastforge.TemplateSet), &failingWriter{failAt: -1})
	require.ErrorIs(t, err, ErrNoTemplates)

	_, err = CreateConfigs(context.Background(), nil, &failingWriter{failAt: -1})
	require.ErrorIs(t, err, ErrNoTemplates)
}

// TestCreateConfigs_Canceled stops before writing anything once the context is done.
func TestCreateConfigs_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &failingWriter{failAt: -1}

	written, err := CreateConfigs(ctx, catalog(t), w)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, written)
	require.Empty(t, w.written)
}

// TestRun_PrintsReport covers the banner and report correctness.
func TestRun_PrintsReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	root := t.TempDir()
	err := Run(context.Background(), &Options{Root: root, Output: &buf})
	require.NoError(t, err)

	want := "\nGenerated Fastforge config files for PI Task Watch:\n" +
		"An employee tracking tool developed by Primacy Infotech, Odoo official partner\n" +
		"Features: Screenshot capture, keyboard/mouse tracking, website activity monitoring, active window tracking\n" +
		"\nFiles created:\n" +
		"  - linux/packaging/appimage/make_config.yaml\n" +
		"  - linux/packaging/deb/make_config.yaml\n" +
		"  - linux/packaging/rpm/make_config.yaml\n" +
		"  - windows/packaging/exe/make_config.yaml\n" +
		"  - windows/packaging/msix/make_config.yaml\n" +
		"  - macos/packaging/dmg/make_config.yaml\n" +
		"  - macos/packaging/pkg/make_config.yaml\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, snapshot(t, root), 7)
}

// TestRun_DryRun lists the planned files and writes nothing.
func TestRun_DryRun(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	root := filepath.Join(t.TempDir(), "untouched")
	require.NoError(t, Run(context.Background(), &Options{Root: root, DryRun: true, Output: &buf}))

	require.Contains(t, buf.String(), "Files to be created:\n")
	require.Contains(t, buf.String(), "  - macos/packaging/pkg/make_config.yaml\n")

	_, err := os.Stat(root)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestRun_ReadOnlyRoot fails without printing a report.
func TestRun_ReadOnlyRoot(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("read-only directories are not enforced for this user")
	}

	root := t.TempDir()
	require.NoError(t, os.Chmod(root, 0o555))

	t.Cleanup(func() {
		_ = os.Chmod(root, 0o755) //nolint:gosec // Restore so TempDir cleanup can remove it.
	})

	var buf bytes.Buffer

	err := Run(context.Background(), &Options{Root: root, Output: &buf})
	require.ErrorIs(t, err, fs.ErrPermission)
	require.True(t, output.IsFilesystemError(err))
	require.Empty(t, buf.String())
}

// TestRun_BlockedRoot fails without printing a report even when running as root.
func TestRun_BlockedRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("not a directory"), output.DefaultFileMode))

	var buf bytes.Buffer

	err := Run(context.Background(), &Options{Root: root, Output: &buf})
	require.True(t, output.IsFilesystemError(err))
	require.Empty(t, buf.String())
}

// TestRun_SettingsFile takes root and atomic mode from a settings file, with the flag winning for root.
func TestRun_SettingsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	settings := filepath.Join(dir, "fastforge-configs.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("root: from-file\natomic_writes: true\nlog_level: warn\n"), 0o600))

	var buf bytes.Buffer

	require.NoError(t, Run(context.Background(), &Options{ConfigPath: settings, Output: &buf}))
	require.Len(t, snapshot(t, filepath.Join(dir, "from-file")), 7)

	override := filepath.Join(dir, "from-flag")
	require.NoError(t, Run(context.Background(), &Options{ConfigPath: settings, Root: override, Output: &buf}))
	require.Len(t, snapshot(t, override), 7)
}

// TestRun_InvalidSettings returns configuration errors before any write.
func TestRun_InvalidSettings(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "out")

	err := Run(context.Background(), &Options{Root: root, LogLevel: "chatty", Output: new(bytes.Buffer)})
	require.Error(t, err)

	err = Run(context.Background(), &Options{ConfigPath: filepath.Join(root, "missing.yaml"), Output: new(bytes.Buffer)})
	require.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(root)
	require.ErrorIs(t, statErr, os.ErrNotExist)
}
