// Package manifest models package manifests in a multi-package workspace:
// the root manifest that pins versions, member manifests with their optional
// "shadow" declaration, and the concrete manifests produced from them. Member
// manifests are validated against an embedded JSON Schema before use.
package manifest
