// Package stripe implements the BF_CBC_STRIPE media cipher.
//
// The upstream media store splits a file into 2048-byte chunks and
// enciphers only every third full chunk with Blowfish in CBC mode. The
// remaining chunks, and a trailing short chunk, are stored in the clear:
//
//	chunk:   0    1    2    3    4    5    6 (short)
//	cipher:  BF   -    -    BF   -    -    -
//
// The IV is the fixed sequence 00 01 02 03 04 05 06 07 and is reset for
// every enciphered chunk, so chunks can be processed independently.
//
// Chunk size, stride and IV are dictated by the wire format.
package stripe
