// Package output writes template entries below an output root.
//
// FileWriter is the only code in the project that touches the filesystem.
// Each write creates missing parent directories and then replaces the target
// file, either in place or atomically via renameio. Failures are reported as
// *FilesystemError naming the operation and the absolute path.
package output
