// Package stream implements CR1 (Cell Record stream v1) framing.
//
// CR1 carries canonical cell records between processes as text:
//   - Record boundaries via an explicit payload length
//   - Ordering via sequence numbers (seq)
//   - Integrity via optional CRC-32 of the value bytes
//
// One frame holds one record:
//
//	@cell{v=1 seq=N type=T len=N [url=true] [cache=true] [crc=XXXXXXXX]}\n
//	<value bytes>\n
//
// The null cell is written with type=null and len=0. Values are written
// exactly as stored, so they may contain newlines.
package stream

import (
	"fmt"

	"github.com/megabites2013/n-cube/cell"
)

// Version is the CR1 protocol version.
const Version uint8 = 1

// Frame is a single CR1 frame.
type Frame struct {
	Version uint8  // Protocol version (must be 1)
	Seq     uint64 // Sequence number, monotonic per stream
	Record  cell.Record

	CRC *uint32 // CRC-32 of the value bytes (nil if not present)
}

// HasCRC returns true if CRC is present.
func (f *Frame) HasCRC() bool {
	return f.CRC != nil
}

// MaxPayloadSize is the default maximum value size (64 MiB).
const MaxPayloadSize = 64 * 1024 * 1024

// ParseError reports a malformed frame.
type ParseError struct {
	Reason string
	Offset int
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("cr1: %s at offset %d", e.Reason, e.Offset)
	}
	return fmt.Sprintf("cr1: %s", e.Reason)
}

// CRCMismatchError is returned when CRC verification fails.
type CRCMismatchError struct {
	Seq      uint64
	Expected uint32
	Got      uint32
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("cr1: CRC mismatch in frame %d: expected %08x, got %08x", e.Seq, e.Expected, e.Got)
}

// SequenceError is returned by a Reader with sequence checking enabled when
// a frame does not follow the previous one.
type SequenceError struct {
	Expected uint64
	Got      uint64
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("cr1: out of sequence: expected seq=%d, got seq=%d", e.Expected, e.Got)
}
