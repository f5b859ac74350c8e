package bitmap

// Bitmap tracks claimed leaf ids. Bit id%8 of byte id/8 is set once the leaf is claimed. The
// backing array only grows; ids past its end read as unclaimed.
type Bitmap []byte

func byteIndex(id uint32) int {
	return int(id / 8)
}

func mask(id uint32) byte {
	return 1 << (id % 8)
}

// IsClaimed reports whether the id is set.
func (b Bitmap) IsClaimed(id uint32) bool {
	i := byteIndex(id)
	if i >= len(b) {
		return false
	}
	return b[i]&mask(id) != 0
}

// RequiredLen is the byte length the bitmap needs to hold id.
func RequiredLen(id uint32) int {
	return byteIndex(id) + 1
}

// SetClaimed grows the bitmap when needed and sets the id. It returns the number of bytes the
// bitmap grew by.
func (b *Bitmap) SetClaimed(id uint32) int {
	grown := 0
	if need := RequiredLen(id); need > len(*b) {
		grown = need - len(*b)
		*b = append(*b, make([]byte, grown)...)
	}
	(*b)[byteIndex(id)] |= mask(id)
	return grown
}

// Claimed lists every set id in ascending order.
func (b Bitmap) Claimed() []uint32 {
	ids := make([]uint32, 0)
	for i, v := range b {
		for bit := 0; bit < 8; bit++ {
			if v&(1<<bit) != 0 {
				ids = append(ids, uint32(i*8+bit))
			}
		}
	}
	return ids
}
