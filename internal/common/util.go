// Package common contains small helpers shared across Galaxyterm packages.
package common

// WipeByteArray overwrites the buffer with zeros. Used to scrub passwords
// from memory once the request that needed them has been sent.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
