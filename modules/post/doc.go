// Package post implements the post resource: titled content with create,
// update, get, delete and list operations. Titles are unique. Mutating routes
// require a session token and record the caller as the author on create.
package post
