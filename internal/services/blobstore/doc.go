// Package blobstore provides the client for the object storage backend that
// absorbs uploads too large for inline request bodies.
//
// Upload is deliberately a single attempt with no internal retry: the caller
// surfaces the failure to the user, and partially written objects are left to
// the storage provider's own lifecycle rules. Handle URLs stay valid only as
// long as the provider retains the object; no expiry is modeled here.
package blobstore
