// Package clientip resolves the caller's IP address from proxy headers or the
// connection and makes it available to handlers and log records.
package clientip
