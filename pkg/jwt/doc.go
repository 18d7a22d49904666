// Package jwt decodes compact JSON Web Tokens and verifies their signatures on
// a cooperative tick scheduler.
//
// A Decoder splits the token into its three segments, normalizes each from
// base64url to padded standard base64, parses the header and payload as JSON
// and hands the signing input to a verifier. RS256 is the only supported
// algorithm; the verifier spreads its modular exponentiation across ticks so
// a host loop never stalls on one token.
//
// # Completion
//
// Decode never completes synchronously. Every call returns a *Request and
// delivers it to the callback exactly once, one tick after the decision
// point: one tick after a structural failure, or one tick after the verifier
// finishes. The same Result is available through Request.Wait, which returns
// an async future resolved just before the callback runs.
//
// Each Request moves through received, verifying and then verified or
// rejected. Failures before dispatch go straight from received to rejected.
//
// # Usage
//
//	sched := scheduler.New()
//	dec, err := jwt.New(sched, jwt.WithSigningInput(jwt.SigningInputCompact))
//	if err != nil {
//	    return err
//	}
//	key, err := rsakey.PreparePEM(pemBytes)
//	if err != nil {
//	    return err
//	}
//	if err := dec.SetPublicKey(key); err != nil {
//	    return err
//	}
//
//	dec.Decode(ctx, token, func(r *jwt.Request) {
//	    if r.Success() {
//	        sub, _ := r.Payload().Get("sub").Str()
//	        fmt.Println("verified token for", sub)
//	    }
//	})
//	go sched.Run(ctx)
//
// # Signing input
//
// By default the verifier receives the normalized segments. Tokens issued by
// standard JWS signers are signed over the segments as they appear in the
// token, so use WithSigningInput(SigningInputCompact) for those.
//
// # Error Handling
//
// Result.Err carries a sentinel such as ErrMalformedToken, ErrInvalidHeader,
// ErrUnsupportedAlgorithm or ErrSignatureMismatch, possibly wrapped, and can
// be tested with errors.Is. The Decoder also keeps a snapshot of the last
// dispatched header and payload and the last verification outcome for hosts
// that poll instead of using callbacks.
package jwt
