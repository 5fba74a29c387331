package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// hashKey returns prefix + ":" + the SHA-256 of fields. Each field is
// length-prefixed so ("ab", "c") and ("a", "bc") hash differently.
func hashKey(prefix string, fields ...string) string {
	h := sha256.New()
	var n [8]byte
	for _, f := range fields {
		binary.BigEndian.PutUint64(n[:], uint64(len(f)))
		h.Write(n[:])
		h.Write([]byte(f))
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. The file cache names entries by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
