package stream

import (
	"hash/crc32"
	"strconv"
)

// crcDigits is the width of the crc= header value.
const crcDigits = 8

// ComputeCRC returns the CRC-32 (IEEE) of a frame's value bytes.
func ComputeCRC(value []byte) uint32 {
	return crc32.ChecksumIEEE(value)
}

// VerifyCRC reports whether value hashes to want.
func VerifyCRC(value []byte, want uint32) bool {
	return crc32.ChecksumIEEE(value) == want
}

// appendCRC appends crc as exactly eight lower-case hex digits.
func appendCRC(dst []byte, crc uint32) []byte {
	hex := strconv.FormatUint(uint64(crc), 16)
	for i := len(hex); i < crcDigits; i++ {
		dst = append(dst, '0')
	}
	return append(dst, hex...)
}

// parseCRC reads the crc= header value written by appendCRC. Upper-case
// digits are accepted.
func parseCRC(s string) (uint32, bool) {
	if len(s) != crcDigits {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
