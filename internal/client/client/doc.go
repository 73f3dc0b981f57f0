// Package client is a small HTTP client for the dog catalog API. It keeps
// the session token returned by Login and attaches it, or a configured API
// key, to mutating requests.
//
// Transport failures surface as ErrUnavailable. Read-only requests are
// retried with exponential backoff before giving up; writes are sent once.
package client
