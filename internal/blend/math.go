package blend

// mulDiv255 multiplies two byte values and divides by 255 with proper rounding.
// Formula: (a * b + 127) / 255
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addDiv255 adds two byte values with clamping to 255.
func addDiv255(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

// lerp255 moves from a towards b by t/255.
func lerp255(a, b, t byte) byte {
	if t == 255 {
		return b
	}
	if t == 0 {
		return a
	}
	v := int(a)*(255-int(t)) + int(b)*int(t)
	return byte((v + 127) / 255)
}

// maxByte returns the larger of two bytes.
func maxByte(a, b byte) byte {
	if a > b {
		return a
	}
	return b
}
