// Package mongo connects to MongoDB with bounded retries and provides the
// small helpers the storage layers share: unique index creation, duplicate
// key and no-document error classification, and a readiness check.
package mongo
