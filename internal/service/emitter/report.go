package emitter

import (
	"io"
	"strings"

	"github.com/oshokin/fastforge-configs/internal/domain/fastforge"
)

const (
	productName = "PI Task Watch"
	productLine = "An employee tracking tool developed by Primacy Infotech, Odoo official partner"
	featureLine = "Features: Screenshot capture, keyboard/mouse tracking, website activity monitoring, active window tracking"

	createdHeading = "Files created:"
	plannedHeading = "Files to be created:"
)

// writeReport prints the product banner followed by the list of paths.
func writeReport(w io.Writer, heading string, paths fastforge.WrittenFileList) error {
	var builder strings.Builder

	builder.WriteString("\nGenerated Fastforge config files for ")
	builder.WriteString(productName)
	builder.WriteString(":\n")
	builder.WriteString(productLine)
	builder.WriteString("\n")
	builder.WriteString(featureLine)
	builder.WriteString("\n\n")
	builder.WriteString(heading)
	builder.WriteString("\n")

	for _, p := range paths {
		builder.WriteString("  - ")
		builder.WriteString(p)
		builder.WriteString("\n")
	}

	_, err := io.WriteString(w, builder.String())

	return err
}
