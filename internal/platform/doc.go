// Package platform provides the filesystem capability used by the shadow
// tooling. FS is a small interface over directory checks, JSON and file
// read/write, and verbatim file copies; the default implementation is backed
// by spf13/afero so tests can run against an in-memory filesystem.
package platform
