// Package store provides SQLite-backed durable storage for repair audit
// trails.
//
// The store records:
//   - Runs: one row per pipeline invocation (validity, failure code,
//     input/output content hashes, fix flags)
//   - Repairs: field-level RepairRecords in emission order
//   - Deletions: FieldDeletionEvents in emission order
//   - Warnings: residual structural warnings in emission order
//
// Writes are transactional and idempotent per run id: re-writing a run that
// already exists is a no-op for the run row and all child rows.
//
// All reads order child rows by their emission sequence so a persisted
// audit trail replays in exactly the order the engine produced it.
package store
