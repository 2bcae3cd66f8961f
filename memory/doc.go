// Package memory provides minimal conversation persistence across sessions.
//
// Persistence model:
//   - Only text messages are stored (role + text). Tool blocks are transient
//     and get re-created when tools run again.
//   - The store lives under the workspace's .sage directory, which the file
//     tools cannot reach.
package memory
