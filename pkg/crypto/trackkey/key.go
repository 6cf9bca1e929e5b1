package trackkey

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/yndnr/tunevault-go/pkg/cmap"
)

// Size is the length of a derived key in bytes.
const Size = 16

// sharedSecret is mixed into every derived key.
var sharedSecret = [Size]byte([]byte("g4el58wc0zvf9na1"))

// Key is a derived Blowfish key.
type Key [Size]byte

// Bytes returns the key as a slice suitable for blowfish.NewCipher.
func (k Key) Bytes() []byte {
	return k[:]
}

// Derive computes the key for an asset identifier.
func Derive(assetID string) Key {
	sum := md5.Sum([]byte(assetID))

	var digest [2 * md5.Size]byte
	hex.Encode(digest[:], sum[:])

	var k Key
	for i := 0; i < Size; i++ {
		k[i] = digest[i] ^ digest[i+Size] ^ sharedSecret[i]
	}
	return k
}

// Deriver memoizes Derive per asset identifier.
// It is safe for concurrent use.
type Deriver struct {
	cache *cmap.Map[Key]
}

// NewDeriver creates a Deriver with an empty cache.
func NewDeriver() *Deriver {
	return &Deriver{cache: cmap.New[Key]()}
}

// Key returns the key for assetID, deriving it on first use.
// Entries are never evicted: the derivation is pure.
func (d *Deriver) Key(assetID string) Key {
	return d.cache.GetOrCompute(assetID, Derive)
}

// Len returns the number of cached keys.
func (d *Deriver) Len() int {
	return d.cache.Count()
}
