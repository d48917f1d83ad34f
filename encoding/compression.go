package encoding

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Compression selects how snapshot streams are compressed
type Compression int

const (
	// LZ4 favours encoding speed, and is the default
	LZ4 Compression = iota
	// Zstd produces smaller snapshots
	Zstd
)

// snapshots begin with one byte naming their compression
const (
	lz4Header  byte = 'L'
	zstdHeader byte = 'Z'
)

// String returns the name of this Compression
func (c Compression) String() string {
	switch c {
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	}
	return fmt.Sprintf("Compression(%d)", int(c))
}

// compress writes the header for c to w, and wraps w in the matching compressor
func (c Compression) compress(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case LZ4:
		if _, err := w.Write([]byte{lz4Header}); err != nil {
			return nil, err
		}
		return lz4.NewWriter(w), nil
	case Zstd:
		if _, err := w.Write([]byte{zstdHeader}); err != nil {
			return nil, err
		}
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	}
	return nil, fmt.Errorf("Unknown snapshot compression %s", c)
}

// decompress reads the header of a snapshot and returns a reader of its
// decompressed contents. release must be called once reading is done.
func decompress(r io.Reader) (data io.Reader, release func(), err error) {
	br := bufio.NewReader(r)
	header, err := br.ReadByte()
	if err != nil {
		return nil, nil, err
	}
	switch header {
	case lz4Header:
		return lz4.NewReader(br), func() {}, nil
	case zstdHeader:
		dec, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	}
	return nil, nil, fmt.Errorf("Unknown snapshot header %q", header)
}
