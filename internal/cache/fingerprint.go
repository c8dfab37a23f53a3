package cache

import (
	"encoding/binary"
	"hash/fnv"
	"sort"

	"github.com/hyperjump/eiga/internal/models"
)

// Fingerprint hashes the sorted document ids and corpus size. Bundles store
// it at build time; a loaded bundle whose fingerprint does not match the
// current corpus is treated as stale and rebuilt, instead of trusting bare
// file existence.
func Fingerprint(docs []models.Document) uint64 {
	ids := make([]int, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	sort.Ints(ids)

	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(ids)))
	_, _ = h.Write(buf[:])
	for _, id := range ids {
		binary.LittleEndian.PutUint64(buf[:], uint64(id))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
