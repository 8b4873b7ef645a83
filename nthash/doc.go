// Package nthash implements the legacy "$3$" NT-hash crypt scheme.
//
// # Output format
//
// Hashes are encoded as the scheme tag followed by the lowercase hex MD4
// digest of the widened password:
//
//	$3$<32 lowercase hex digits>
//
// [Crypt] writes the encoding NUL-terminated into a caller buffer of at least
// [OutputSize] bytes. [GenSalt] writes the only valid setting, "$3$".
//
// The scheme has no salt and no cost factor. Each password byte is widened
// to one 16-bit unit with the byte in the high octet, stored big-endian, and
// at most [MaxUnits] units are hashed. Longer passwords are truncated
// silently so that digests stay identical to those already stored by other
// implementations.
//
// # Architecture boundaries
//
// This package owns the digest computation, the setting generator and the
// encoded-hash codec. Verification policy, metrics and rate limiting live in
// the root ntcrypt package.
//
// # What this package must NOT do
//
//   - Retain or cache caller buffers between calls.
//   - Log passwords, widened buffers or digests.
//   - Import any other ntcrypt package.
package nthash
