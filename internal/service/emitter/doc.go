// Package emitter writes the Fastforge packaging configs of PI Task Watch.
//
// Run resolves settings, writes every catalog entry below the output root and
// prints a report of the files it created. CreateConfigs is the reusable core:
// it writes an arbitrary TemplateSet through an output.Writer and stops at the
// first failure.
package emitter
