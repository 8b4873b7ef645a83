// Package internal holds helpers that are private to ntcrypt.
//
// # Sub-packages
//
//   - audit — async event dispatch (Dispatcher + Sink implementations)
//   - rate — Redis-backed fixed-window limiter for failed verifications
//
// # What this package must NOT do
//
//   - Export types that appear in the public ntcrypt API.
//   - Be imported by any package outside the ntcrypt module.
package internal
