// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a client supplied X-Request-ID header when it is short and
// made of [a-zA-Z0-9_-] only; otherwise it generates a UUID. The id is stored
// in the request context (FromContext), echoed in the response header, added
// to log records through LoggerExtractor and returned in error envelopes so a
// client report can be matched to server logs.
package requestid
