package wire

// StringHash is a stable case-insensitive 32-bit name hash. It is the map and
// wire key for every named animation track, so the recurrence must never
// change between releases.
type StringHash uint32

// Hash computes the SDBM hash of s over lowercased bytes.
func Hash(s string) StringHash {
	var h uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		h = uint32(c) + 65599*h
	}
	return StringHash(h)
}
