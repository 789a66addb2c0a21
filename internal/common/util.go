package common

// WipeByteArray zeroes buf in place. Used to scrub password material once
// it has been handed off.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
