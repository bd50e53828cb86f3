// Package internal holds the engine plumbing that is not part of the public
// API: logging, bounded string buffers and the decoded bitmap cache.
package internal
