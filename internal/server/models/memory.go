// Package models contains persistence-level entities shared by server
// repositories and services.
package models

import "time"

// BlobRef points at a stored blob: a public URL for playback and the
// object-store key used to delete it later.
type BlobRef struct {
	URL string
	Key string
}

// Memory is one persisted recording: metadata plus references to a required
// audio blob and an optional photo blob.
//
// Invariant: Audio is always populated; Photo is either nil or has both URL
// and Key set.
type Memory struct {
	ID          string
	Title       string
	Description string
	Audio       BlobRef
	Photo       *BlobRef
	SortOrder   int64
	CreatedAt   time.Time
}
