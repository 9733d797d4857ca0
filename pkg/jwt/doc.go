// Package jwt issues and verifies the HS256 tokens used for sessions and
// password resets.
//
// A Codec signs two kinds of payload: SessionClaims (user id, email, name)
// with the configured TTL, and ResetClaims (name, email, reset token) with a
// fixed 15 minute lifetime. Verify returns the decoded Claims or one of two
// errors: ErrExpired for a genuine token past its expiry, ErrInvalidSignature
// for everything else. Only HS256 is accepted.
//
//	codec, err := jwt.New(jwt.Config{Secret: secret, TTL: time.Hour})
//	token, err := codec.SignSession(jwt.SessionClaims{ID: id, Email: email})
//	claims, err := codec.Verify(token)
//	if s, ok := claims.(jwt.SessionClaims); ok {
//		// s.ID
//	}
//
// Extractors locate the raw token on an incoming request (bearer header,
// query parameter, cookie) and ChainExtractors combines them by precedence.
package jwt
