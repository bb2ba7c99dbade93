// Package config resolves the workspace layout and subprocess settings used by
// every shadow operation. Values come from built-in defaults, an optional
// .shadowpkg.yaml at the workspace root, and SHADOWPKG_* environment
// variables, in increasing order of precedence. The result is an explicit
// *Config passed to each component; nothing is read from global state.
package config
