package schema

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash is the content digest of one schema revision, computed over the
// declared type and the payload bytes. User, timestamp and properties do not
// contribute to the hash: two revisions with equal hashes are the same schema
// for deduplication purposes.
type Hash [sha256.Size]byte

// HashOf computes the content hash of a schema revision.
func HashOf(d Data) Hash {
	h := sha256.New()
	h.Write([]byte{byte(d.Type)})
	h.Write(d.Payload)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// Equal reports whether two hashes are identical.
func (h Hash) Equal(other Hash) bool { return h == other }

// Bytes returns the digest as a byte slice, suitable for use as the dedup
// context of a conditional append.
func (h Hash) Bytes() []byte {
	out := make([]byte, len(h))
	copy(out, h[:])
	return out
}

// String returns the hex form of the digest, used in logs.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }
