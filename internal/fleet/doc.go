// Package fleet provides high-level environment lifecycle operations.
//
// This package orchestrates the lower-level components (loader,
// vagrantfile, vagrant, metadata, status) to provide manifest-driven
// operations for managing vagrant environments.
//
// The main operations are:
//   - Up: render the Vagrantfile for a manifest, install any missing
//     boxes and bring every machine up
//   - Down: halt or destroy every machine in a manifest's environment
//   - Status: report per-machine state, cross-checked against the
//     manifest
//   - Info: merge live machine state with the identity vagrant records
//     on disk
//
// Error Handling:
//
// Operations fail on errors that prevent the requested state change
// and degrade to warnings for follow-up reads that only affect
// reporting. A halt that succeeds is a success even when the status
// read afterwards fails.
//
// Context Support:
//
// All operations accept a context.Context for cancellation support.
// Cancellation interrupts the underlying vagrant subprocess.
package fleet
