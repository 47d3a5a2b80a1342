package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/technelab/techne/core"
)

// Key prefixes for different data types. Primary records and index entries
// use disjoint prefixes so prefix scans never have to skip foreign keys.
const (
	chunkRecordPrefix = "chkrec"
	chunkDomainPrefix = "chkdom"
)

// makeChunkRecordKey generates a key for a chunk record by ID.
func makeChunkRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", chunkRecordPrefix, id))
}

// makeChunkDomainKey generates a composite key for the domain index.
// Format: prefix:domain:id
func makeChunkDomainKey(domain string, id core.ID) []byte {
	prefix := chunkDomainPrefix + ":" + domain + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// BigEndian so lexicographic sort matches numeric order
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialChunkDomainKey generates the prefix for scanning a domain.
func makePartialChunkDomainKey(domain string) []byte {
	return []byte(chunkDomainPrefix + ":" + domain + ":")
}
