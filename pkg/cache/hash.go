package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// keyVersion is folded into every derived key. Bump it when the cached
// tree JSON or an artifact encoding changes shape, so old entries miss
// instead of decoding into the wrong thing.
const keyVersion = "v1"

// hashKey returns "prefix:<sha256>" over keyVersion and parts. Each part
// is length-prefixed, so ("ab", "c") and ("a", "bc") never collide.
func hashKey(prefix string, parts ...string) string {
	h := sha256.New()
	var n [8]byte
	for _, p := range append([]string{keyVersion}, parts...) {
		binary.BigEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write([]byte(p))
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
