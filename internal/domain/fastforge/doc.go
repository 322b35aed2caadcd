// Package fastforge contains the core types of the config emitter.
//
// It defines TemplateEntry (a relative path with its literal content),
// TemplateSet (an insertion-ordered collection of entries keyed by path)
// and WrittenFileList (what a single run put on disk).
package fastforge
