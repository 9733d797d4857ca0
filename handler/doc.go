// Package handler turns typed request handlers into http.HandlerFunc values.
//
// Wrap decodes the request with the configured binders, optionally validates
// it, calls the HandlerFunc and renders the returned Response. Successful
// responses use the JSON envelope
//
//	{"success": true, "message": "...", "data": {...}}
//
// and failures are routed to an ErrorHandler. NewErrorHandler builds the
// standard one: domain Classifiers pick the status code and message, the
// request id from pkg/requestid is added to the body as "requestId", and 5xx
// responses carry only a generic message.
package handler
