// Package runtime runs the external programs a shadow install depends on:
// the package installer and the manifest formatter. Runner is the seam the
// installer uses; ExecRunner is the os/exec implementation.
package runtime
