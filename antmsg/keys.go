package antmsg

import (
	crand "crypto/rand"
	mrand "math/rand"
	"time"
)

// GenerateNetworkKey returns a cryptographically random 8-byte ANT
// network key for use with SetNetworkKey. Grounded on the teacher's
// protocol/crypto.go GeneratePairingKey: try crypto/rand first, fall back
// to a time-seeded math/rand source on the rare host where crypto/rand
// fails.
func GenerateNetworkKey() [8]byte {
	var b [8]byte
	if _, err := crand.Read(b[:]); err == nil {
		return b
	}
	src := mrand.NewSource(time.Now().UnixNano())
	r := mrand.New(src)
	for i := range b {
		b[i] = byte(r.Intn(256))
	}
	return b
}

// GenerateEncryptionKey returns a cryptographically random 16-byte AES key
// for use with SetEncryptionKey, with the same fallback policy as
// GenerateNetworkKey.
func GenerateEncryptionKey() [16]byte {
	var b [16]byte
	if _, err := crand.Read(b[:]); err == nil {
		return b
	}
	src := mrand.NewSource(time.Now().UnixNano())
	r := mrand.New(src)
	for i := range b {
		b[i] = byte(r.Intn(256))
	}
	return b
}
