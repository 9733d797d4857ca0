// Package account exposes signup, login, profile and the password reset
// handshake over HTTP.
//
// Router wires auth.Service behind JSON handlers and protects /profile with
// auth.Middleware. MongoStorage is the production auth.Storage and
// ResetMailer delivers reset tokens by email.
//
//	svc := auth.NewService(storage, codec, auth.WithResetHook(hook))
//	r.Mount("/", account.Router(svc, account.WithErrorHandler(errHandler)))
package account
