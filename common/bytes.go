package common

// CopyBytes returns an exact copy of the provided bytes.
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	copied := make([]byte, len(b))
	copy(copied, b)
	return copied
}

// FromHex returns the bytes represented by the hex string s, which may be
// 0x-prefixed.
func FromHex(s string) []byte { return fromHex(s) }
