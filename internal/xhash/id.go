// Package xhash provides the hash function used to accelerate field-name
// lookups in an IDX descriptor.
package xhash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
