// Package workspace reads the set of member packages that make up a
// multi-package workspace.
package workspace
