package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/Aleph-Alpha/schema-registry/v1/schema"
)

// versionLen is the size of the encoded version: one int64, big-endian.
const versionLen = 8

// EncodeVersion serializes a revision number into its opaque byte form.
func EncodeVersion(revision int64) schema.Version {
	buf := make([]byte, versionLen)
	binary.BigEndian.PutUint64(buf, uint64(revision))
	return schema.Version(buf)
}

// DecodeVersion is the round-trip inverse of EncodeVersion.
func DecodeVersion(version []byte) (int64, error) {
	if len(version) != versionLen {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d", ErrBadVersion, versionLen, len(version))
	}
	return int64(binary.BigEndian.Uint64(version)), nil
}
