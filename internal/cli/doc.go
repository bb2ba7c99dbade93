// Package cli defines the Cobra command tree for the shadowpkg CLI. Each file
// registers one top-level command (install, generate, list, etc.). Commands
// only parse flags, load the workspace configuration, and format output;
// resolution and installation live in internal/shadow.
package cli
