package decoder

// Word builds an instruction word from its two memory bytes, high byte first.
func Word(high, low byte) uint16 {
	return uint16(high)<<8 | uint16(low)
}

// Family returns the top nibble of an instruction word.
func Family(word uint16) uint8 {
	return uint8((word & 0xF000) >> 12)
}

// X extracts the first register selector.
func X(word uint16) uint8 {
	return uint8((word & 0x0F00) >> 8)
}

// Y extracts the second register selector.
func Y(word uint16) uint8 {
	return uint8((word & 0x00F0) >> 4)
}

// N extracts the 4-bit immediate.
func N(word uint16) uint8 {
	return uint8(word & 0x000F)
}

// NN extracts the 8-bit immediate.
func NN(word uint16) uint8 {
	return uint8(word & 0x00FF)
}

// NNN extracts the 12-bit address.
func NNN(word uint16) uint16 {
	return word & 0x0FFF
}
