// Package verifier implements JWS signature verification on the tick
// scheduler.
//
// RS256 computes signature^e mod n with Montgomery multiplication using the
// material of an rsakey.PreparedKey, processing a bounded number of exponent
// bits per tick, and compares the result with the EMSA-PKCS1-v1_5 encoding of
// SHA-256(header "." payload). Verify returns an async.Future that resolves
// exactly once, never in the tick Verify was called from.
//
// Keys are swapped with SetPublicKey or SetPreparedKey. The key is captured
// when Verify starts, so a replacement only affects later calls.
package verifier
