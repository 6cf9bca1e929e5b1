// Package trackkey derives per-asset Blowfish keys.
//
// Every catalogue asset is enciphered under a key that is a pure function
// of the asset identifier and a shared secret published by the upstream
// service:
//
//	hex    = lowercase hex MD5 of the UTF-8 identifier (32 characters)
//	key[i] = hex[i] ^ hex[i+16] ^ secret[i]    for i in [0, 16)
//
// The construction is a wire-format requirement for interoperating with the
// upstream media store. It is not a security boundary.
//
// Usage:
//
//	d := trackkey.NewDeriver()
//	key := d.Key("3135556")
//	plain, err := stripe.Decrypt(payload, key.Bytes())
package trackkey
