package badger

import (
	"encoding/binary"
	"fmt"
)

// Key prefixes for the collection registry and document records.
// Collection names never contain ':' (enforced by core validation), so the
// trailing delimiter keeps one collection's keyspace from capturing
// another's.
const (
	collectionMetaPrefix = "colmeta"
	documentPrefix       = "coldoc"
	documentSeqPrefix    = "colseq"
)

// makeCollectionMetaKey generates the registry key for a collection.
func makeCollectionMetaKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", collectionMetaPrefix, name))
}

// collectionMetaScanPrefix is the prefix for iterating the whole registry.
func collectionMetaScanPrefix() []byte {
	return []byte(collectionMetaPrefix + ":")
}

// makeDocumentKey generates a key for a document within a collection.
// Format: prefix:name:id with the ID in BigEndian order so lexicographic
// iteration visits documents in insertion order.
func makeDocumentKey(name string, id uint64) []byte {
	prefix := fmt.Sprintf("%s:%s:", documentPrefix, name)
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], id)
	return buf
}

// makeDocumentScanPrefix generates the prefix for iterating one collection's
// documents.
func makeDocumentScanPrefix(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", documentPrefix, name))
}

// documentSeqName generates the sequence name for a collection's document IDs.
func documentSeqName(name string) string {
	return fmt.Sprintf("%s:%s", documentSeqPrefix, name)
}
