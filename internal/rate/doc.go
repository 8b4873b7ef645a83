// Package rate provides the Redis-backed fixed-window counter used to throttle
// NT-hash verification attempts per identifier.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Keys are
// "<prefix>:vf:<identifier>". An attempt is reserved before the password is
// compared and the counter is deleted on a match, so only failures survive
// in a window.
//
// # What this package must NOT do
//
//   - See passwords, digests or encoded hashes.
//   - Be imported outside the ntcrypt module.
package rate
