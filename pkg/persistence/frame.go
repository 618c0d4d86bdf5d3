// Package persistence implements the binary framing used for network
// snapshots on disk. A frame wraps an opaque payload with a magic byte,
// a format version and a CRC32 checksum, so a reader can tell apart a
// foreign file, a future format and plain corruption.
package persistence

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
)

const (
	// MagicByte marks the start of a molnet snapshot frame.
	MagicByte = 0xA7

	// FormatVersion is bumped whenever the payload schema changes
	// incompatibly. Readers reject anything newer.
	FormatVersion = 0x01

	// headerSize is 1 (magic) + 1 (version) + 4 (length) + 4 (crc32).
	headerSize = 10
)

var (
	// ErrInvalidMagic indicates the stream is not a molnet snapshot.
	ErrInvalidMagic = errors.New("invalid magic byte")
	// ErrUnsupportedVersion indicates the snapshot was written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	// ErrChecksumMismatch indicates payload corruption.
	ErrChecksumMismatch = errors.New("crc32 checksum mismatch")
	// ErrIncompleteFrame indicates the stream ended mid-frame.
	ErrIncompleteFrame = errors.New("incomplete frame")
)

// WriteFrame writes one frame holding payload.
// Layout: [Magic(1)][Version(1)][Length(4)][CRC32(4)][Payload(N)], little endian.
func WriteFrame(w io.Writer, payload []byte) error {
	buf := make([]byte, headerSize+len(payload))
	buf[0] = MagicByte
	buf[1] = FormatVersion
	binary.LittleEndian.PutUint32(buf[2:6], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[6:10], crc32.ChecksumIEEE(payload))
	copy(buf[headerSize:], payload)

	// Single write keeps header and payload in one syscall when w is
	// an *os.File, so a partial frame can only come from a torn write.
	_, err := w.Write(buf)
	return err
}

// ReadFrame reads and validates the next frame, returning its payload.
// io.EOF is returned only when the stream ends cleanly before a frame.
func ReadFrame(r io.Reader) ([]byte, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, ErrIncompleteFrame
	}

	if header[0] != MagicByte {
		return nil, ErrInvalidMagic
	}
	if header[1] > FormatVersion {
		return nil, ErrUnsupportedVersion
	}

	length := binary.LittleEndian.Uint32(header[2:6])
	want := binary.LittleEndian.Uint32(header[6:10])

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, ErrIncompleteFrame
	}
	if crc32.ChecksumIEEE(payload) != want {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}
