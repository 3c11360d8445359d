// Package vagrant provides a typed binding around the vagrant CLI.
//
// This package never talks to hypervisors or the Vagrant Cloud
// directly; its only external interface is the vagrant executable,
// invoked as a subprocess in the environment directory a Client is
// bound to. The value it adds is turning vagrant's machine-readable
// and human-oriented output into typed records with a strict error
// taxonomy.
//
// The main surfaces are:
//   - Lifecycle: Up, Provision, Reload, Suspend, Resume, Halt, Destroy,
//     Package, Init, Validate, SSH
//   - Inspection: Status, BoxList, PluginList, SSHConfig, Version
//   - Box management: BoxAdd, BoxUpdate, BoxRemove
//   - Snapshots: SnapshotPush, SnapshotPop, SnapshotSave,
//     SnapshotRestore, SnapshotList, SnapshotDelete
//   - Sandbox: a capability bound to the same environment, backed by
//     the sahara plugin
//
// Error Handling:
//
// A missing vagrant executable surfaces as *runner.ExecutableNotFoundError
// before any subprocess starts. A non-zero exit surfaces as
// *runner.CommandError carrying the exit code and captured stderr.
// Output that does not match the expected grammar surfaces as
// *ParseError naming the offending line; parse failures are never
// silently coerced to defaults. Nothing is retried.
//
// Context Support:
//
// Every operation that runs vagrant accepts a context.Context.
// Cancellation terminates the subprocess.
package vagrant
