package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Useful for removing passwords and keys from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
