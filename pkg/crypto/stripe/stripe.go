package stripe

import (
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/blowfish"
)

const (
	// Name is the cipher identifier used when requesting media sources.
	Name = "BF_CBC_STRIPE"

	// ChunkSize is the size of a stripe chunk in bytes.
	ChunkSize = 2048

	// Stride selects every Stride-th chunk for encipherment.
	Stride = 3
)

// iv is copied by cipher.NewCBC*, never written.
var iv = [blowfish.BlockSize]byte{0, 1, 2, 3, 4, 5, 6, 7}

// Enciphered reports whether the chunk at index with the given length is
// enciphered on the wire.
func Enciphered(index, length int) bool {
	return index%Stride == 0 && length == ChunkSize
}

// Decrypt returns a deciphered copy of payload. The input is not modified
// and the output has the same length.
func Decrypt(payload, key []byte) ([]byte, error) {
	block, err := blowfish.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("stripe: %w", err)
	}

	out := make([]byte, len(payload))
	copy(out, payload)
	apply(out, func(chunk []byte) {
		cipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(chunk, chunk)
	})
	return out, nil
}

// Encrypt is the inverse of Decrypt. The upstream store produces stripe
// payloads; Encrypt exists to build fixtures and fake sources.
func Encrypt(payload, key []byte) ([]byte, error) {
	block, err := blowfish.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("stripe: %w", err)
	}

	out := make([]byte, len(payload))
	copy(out, payload)
	apply(out, func(chunk []byte) {
		cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(chunk, chunk)
	})
	return out, nil
}

// apply runs fn in place over every enciphered chunk of buf.
func apply(buf []byte, fn func(chunk []byte)) {
	for i, off := 0, 0; off < len(buf); i, off = i+1, off+ChunkSize {
		end := min(off+ChunkSize, len(buf))
		if Enciphered(i, end-off) {
			fn(buf[off:end])
		}
	}
}
