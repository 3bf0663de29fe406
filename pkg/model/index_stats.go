package model

import "fmt"

// IndexStats describes one storage bucket. Result collections may
// hold fewer documents than keys since every row is stored under a
// sequence-suffixed key.
type IndexStats struct {
	// Documents number of documents in the bucket
	Documents uint64
	// Keys number of keys in the bucket
	Keys uint64
	// Used number of bytes used
	Used uint64
	// Allocated number of bytes allocated
	Allocated uint64
}

func (s IndexStats) String() string {
	return fmt.Sprintf("<Stats docs=%d keys=%d used=%d allocated=%d>",
		s.Documents, s.Keys, s.Used, s.Allocated)
}
