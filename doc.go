// Package ntcrypt provides a concurrency-safe facade over the legacy "$3$"
// NT-hash crypt scheme implemented in [github.com/MrEthical07/ntcrypt/nthash].
//
// A [Hasher] is assembled through [Builder]:
//
//	h, err := ntcrypt.New().
//		WithConfig(cfg).
//		WithRedis(rdb).
//		Build()
//
// It computes canonical encodings, verifies passwords against stored hashes
// in either the canonical "$3$<hex>" or the legacy "$3$$<hex>" form, counts
// outcomes in lock-free metrics and optionally throttles failed
// verifications per identifier in Redis.
//
// # Architecture boundaries
//
// ntcrypt is the public surface. The digest computation, the setting
// generator and the encoding codec live in nthash and are pure. Rate limiting
// and audit dispatch live under internal/ and are never exported.
//
// # What this package must NOT do
//
//   - Salt, stretch or otherwise "improve" the scheme; digests must match
//     hashes already stored by other implementations.
//   - Log passwords, widened buffers or digests.
//   - Close the Redis client it was given.
//
// NT hashes offer no resistance to offline guessing. Use this package to
// read and check existing credentials, and migrate them to a modern scheme.
package ntcrypt
