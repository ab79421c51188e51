package graph

import (
	"fmt"

	"github.com/minio/highwayhash"
)

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// FragmentID returns the node ID for a fragment text. Identical texts share
// an ID.
func FragmentID(text string) string {
	return fmt.Sprintf("%016x", highwayhash.Sum64([]byte(text), hashKey))
}
