package stream

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/megabites2013/n-cube/cell"
)

// Reader reads CR1 frames from an io.Reader. It is not safe for concurrent
// use.
type Reader struct {
	r          *bufio.Reader
	maxPayload int
	verifyCRC  bool
	checkSeq   bool

	nextSeq uint64
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxPayload sets the maximum value size (default: 64 MiB).
func WithMaxPayload(max int) ReaderOption {
	return func(r *Reader) {
		r.maxPayload = max
	}
}

// WithCRCVerification enables or disables CRC verification. It is enabled
// by default.
func WithCRCVerification(on bool) ReaderOption {
	return func(r *Reader) {
		r.verifyCRC = on
	}
}

// WithSequenceCheck requires frames to be numbered 0, 1, 2, ... with no gaps.
func WithSequenceCheck() ReaderOption {
	return func(r *Reader) {
		r.checkSeq = true
	}
}

// NewReader creates a new CR1 frame reader.
func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	reader := &Reader{
		r:          bufio.NewReader(r),
		maxPayload: MaxPayloadSize,
		verifyCRC:  true,
	}
	for _, opt := range opts {
		opt(reader)
	}
	return reader
}

// Next reads and returns the next frame.
// Returns io.EOF when no more frames are available.
func (r *Reader) Next() (*Frame, error) {
	headerLine, err := r.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && headerLine == "" {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	frame, payloadLen, err := r.parseHeader(headerLine)
	if err != nil {
		return nil, err
	}
	if payloadLen > r.maxPayload {
		return nil, &ParseError{Reason: fmt.Sprintf("payload too large: %d > %d", payloadLen, r.maxPayload), Offset: -1}
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	// Consume trailing newline (optional at EOF)
	if b, err := r.r.ReadByte(); err == nil && b != '\n' {
		_ = r.r.UnreadByte()
	}

	if r.verifyCRC && frame.CRC != nil {
		if !VerifyCRC(payload, *frame.CRC) {
			return nil, &CRCMismatchError{Seq: frame.Seq, Expected: *frame.CRC, Got: ComputeCRC(payload)}
		}
	}

	frame.Record.Value = string(payload)
	if err := frame.Record.Validate(); err != nil {
		return nil, fmt.Errorf("frame %d: %w", frame.Seq, err)
	}

	if r.checkSeq {
		if frame.Seq != r.nextSeq {
			return nil, &SequenceError{Expected: r.nextSeq, Got: frame.Seq}
		}
		r.nextSeq++
	}
	return frame, nil
}

// parseHeader parses the @cell{...} header line and returns the frame with
// its value still unread, plus the value length.
func (r *Reader) parseHeader(line string) (*Frame, int, error) {
	line = strings.TrimSpace(line)

	const prefix = "@cell{"
	if !strings.HasPrefix(line, prefix) {
		return nil, 0, &ParseError{Reason: "expected " + prefix, Offset: 0}
	}
	endIdx := strings.LastIndex(line, "}")
	if endIdx < 0 {
		return nil, 0, &ParseError{Reason: "missing closing }", Offset: len(line)}
	}
	content := line[len(prefix):endIdx]

	frame := &Frame{Version: Version}
	payloadLen := -1
	sawType := false

	for _, field := range strings.Fields(content) {
		key, val, ok := strings.Cut(field, "=")
		if !ok {
			return nil, 0, &ParseError{Reason: "expected key=value, got " + field, Offset: -1}
		}

		switch key {
		case "v":
			v, err := strconv.ParseUint(val, 10, 8)
			if err != nil {
				return nil, 0, &ParseError{Reason: "invalid version", Offset: -1}
			}
			if uint8(v) != Version {
				return nil, 0, &ParseError{Reason: "unsupported version " + val, Offset: -1}
			}
			frame.Version = uint8(v)

		case "seq":
			seq, err := strconv.ParseUint(val, 10, 64)
			if err != nil {
				return nil, 0, &ParseError{Reason: "invalid seq", Offset: -1}
			}
			frame.Seq = seq

		case "type":
			tag, err := cell.ParseTag(val)
			if err != nil {
				return nil, 0, &ParseError{Reason: err.Error(), Offset: -1}
			}
			frame.Record.Type = tag
			sawType = true

		case "len":
			l, err := strconv.ParseUint(val, 10, 32)
			if err != nil {
				return nil, 0, &ParseError{Reason: "invalid len", Offset: -1}
			}
			payloadLen = int(l)

		case "url":
			frame.Record.URL = val == "true" || val == "1"

		case "cache":
			frame.Record.Cacheable = val == "true" || val == "1"

		case "crc":
			crc, ok := parseCRC(val)
			if !ok {
				return nil, 0, &ParseError{Reason: "invalid crc: " + val, Offset: -1}
			}
			frame.CRC = &crc
		}
	}

	if !sawType {
		return nil, 0, &ParseError{Reason: "missing type", Offset: -1}
	}
	if payloadLen < 0 {
		return nil, 0, &ParseError{Reason: "missing len", Offset: -1}
	}
	return frame, payloadLen, nil
}

// ReadAll reads all frames until EOF.
func (r *Reader) ReadAll() ([]*Frame, error) {
	var frames []*Frame
	for {
		frame, err := r.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, frame)
	}
}

// ReadValues reads every remaining frame and decodes its record with d.
func (r *Reader) ReadValues(d *cell.Decoder) ([]any, error) {
	var values []any
	for {
		frame, err := r.Next()
		if err == io.EOF {
			return values, nil
		}
		if err != nil {
			return values, err
		}
		v, err := d.DecodeRecord(frame.Record)
		if err != nil {
			return values, fmt.Errorf("frame %d: %w", frame.Seq, err)
		}
		values = append(values, v)
	}
}
