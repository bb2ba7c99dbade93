// Package shadow turns a workspace member into a standalone "shadow package".
//
// Builder resolves a member manifest plus its shadow declaration into a
// concrete manifest whose every dependency is pinned from the root manifest.
// Installer materializes that manifest into an empty directory, copies the
// root lockfile next to it, runs the package installer, and finalizes the
// manifest. Stages run strictly in order and stop at the first failure; no
// rollback is attempted.
package shadow
