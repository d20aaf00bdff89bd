package stream

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/megabites2013/n-cube/cell"
)

// Writer writes CR1 frames to an io.Writer. It is not safe for concurrent
// use.
type Writer struct {
	w       io.Writer
	withCRC bool // Whether to compute and include CRC
	seq     uint64
}

// NewWriter creates a new CR1 frame writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// NewWriterWithCRC creates a writer that computes CRC for each frame.
func NewWriterWithCRC(w io.Writer) *Writer {
	return &Writer{w: w, withCRC: true}
}

// WriteRecord writes rec as the next frame in sequence, starting at 0.
func (w *Writer) WriteRecord(rec cell.Record) error {
	if err := w.WriteFrame(&Frame{Version: Version, Seq: w.seq, Record: rec}); err != nil {
		return err
	}
	w.seq++
	return nil
}

// WriteValue encodes v and writes it as the next frame.
func (w *Writer) WriteValue(v any) error {
	rec, err := cell.Encode(v)
	if err != nil {
		return err
	}
	return w.WriteRecord(rec)
}

// WriteFrame writes a single frame. The record is validated first; invalid
// records are never put on the wire.
func (w *Writer) WriteFrame(f *Frame) error {
	rec := f.Record
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("frame %d: %w", f.Seq, err)
	}
	payload := []byte(rec.Value)

	var header strings.Builder
	header.WriteString("@cell{v=")
	if f.Version == 0 {
		header.WriteByte('1')
	} else {
		header.WriteString(strconv.Itoa(int(f.Version)))
	}

	header.WriteString(" seq=")
	header.WriteString(strconv.FormatUint(f.Seq, 10))

	header.WriteString(" type=")
	header.WriteString(rec.Type.String())

	header.WriteString(" len=")
	header.WriteString(strconv.Itoa(len(payload)))

	if rec.URL {
		header.WriteString(" url=true")
	}
	if rec.Cacheable {
		header.WriteString(" cache=true")
	}

	crc := f.CRC
	if crc == nil && w.withCRC && len(payload) > 0 {
		computed := ComputeCRC(payload)
		crc = &computed
	}
	if crc != nil {
		header.WriteString(" crc=")
		header.Write(appendCRC(nil, *crc))
	}

	header.WriteString("}\n")

	if _, err := io.WriteString(w.w, header.String()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(payload) > 0 {
		if _, err := w.w.Write(payload); err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
	}
	if _, err := io.WriteString(w.w, "\n"); err != nil {
		return fmt.Errorf("write trailing newline: %w", err)
	}
	return nil
}
