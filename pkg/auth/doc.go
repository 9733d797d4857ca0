// Package auth implements the account credential lifecycle.
//
// Service covers signup, login, profile reads and updates, and the password
// reset handshake:
//
//	ForgotPassword(email)          stores a random reset token on the user and
//	                               returns it inside a signed 15 minute token
//	VerifyToken(token)             checks signature, expiry and that email and
//	                               reset token still match the stored user
//	ChangePassword(token, pass)    same checks, then stores the new hash and
//	                               clears the reset token
//
// A second ForgotPassword overwrites the stored reset token, so only the most
// recent reset token can be used, and only once.
//
// Passwords go through a Hasher (bcrypt by default). Tokens come from a
// TokenCodec, normally *jwt.Codec. Persistence is behind Storage;
// MemoryStorage is provided for tests and local runs.
//
// Middleware guards routes that need a signed-in user. It reads the token from
// the Authorization bearer header, the "token" query parameter or the "token"
// cookie, in that order, and puts the user into the request context where
// UserFromContext finds it.
//
// Failures are *Error values carrying a kind (ErrMissingField, ErrNotFound,
// ErrInvalidCredentials, ...) usable with errors.Is and a client-facing message.
package auth
