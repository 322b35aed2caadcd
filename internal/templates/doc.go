// Package templates holds the Fastforge packaging configs compiled into the binary.
//
// The files under fastforge/ are embedded verbatim via //go:embed and are laid
// out exactly as they must appear below the output root. Default returns them
// as an ordered set: Linux, then Windows, then macOS.
package templates
