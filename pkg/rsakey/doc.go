// Package rsakey prepares RSA public keys for the tick-driven RS256 verifier.
//
// The verifier performs modular exponentiation with Montgomery multiplication,
// which needs the modulus split into 32-bit words, the precomputed inverse
// n' = -n^-1 mod R and the word count k of R = 2^(32k). PreparedKey carries
// that material as an opaque, immutable value so callers outside the verifier
// never deal with Montgomery internals.
//
// Keys are usually prepared offline from PEM text:
//
//	key, err := rsakey.PreparePEM(pemBytes)
//	out, err := rsakey.MarshalMaterialYAML(key.Material())
//
// and loaded back at runtime with ParseMaterialYAML or LoadMaterialFile.
// FromMontgomery accepts the raw fields and checks that n * n' = -1 (mod R)
// before trusting them.
package rsakey
