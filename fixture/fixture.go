// Package fixture generates and (de)serializes interval batches for
// benchmarks and tests. Batches are stored as one compressed block holding
// the SoA payload (all mins, then all maxs), so a million-triangle fixture
// loads in one read.
package fixture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the block compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

var (
	// ErrBadMagic indicates the reader input is not a fixture stream.
	ErrBadMagic = errors.New("bad fixture magic")
	// ErrCorrupt indicates a structurally damaged fixture stream.
	ErrCorrupt = errors.New("corrupt fixture")
)

// Stream layout:
// [magic "SKFX"][version u8][compression u8][count u32]
// [uncompressedSize u32][compressedSize u32][block...]
// compressedSize == 0 means the block is stored uncompressed.
var magic = [4]byte{'S', 'K', 'F', 'X'}

const (
	formatVersion = 1
	headerSize    = 4 + 1 + 1 + 4
	blockHdrSize  = 8
)

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Batch is a scan input fixture: equal-length min/max extent slices.
type Batch struct {
	Mins []float32
	Maxs []float32
}

// Len returns the number of intervals in the batch.
func (b *Batch) Len() int { return len(b.Mins) }

// Generate builds a deterministic batch of n intervals with mins drawn
// uniformly from [0, 10) and spans up to span. The same seed always yields
// the same batch.
func Generate(n int, seed int64, span float32) *Batch {
	rng := rand.New(rand.NewSource(seed))
	b := &Batch{
		Mins: make([]float32, n),
		Maxs: make([]float32, n),
	}
	for i := 0; i < n; i++ {
		b.Mins[i] = rng.Float32() * 10
		b.Maxs[i] = b.Mins[i] + rng.Float32()*span
	}
	return b
}

// Write serializes the batch to w using the given compression.
func Write(w io.Writer, b *Batch, c Compression) error {
	if len(b.Mins) != len(b.Maxs) {
		return fmt.Errorf("%w: %d mins, %d maxs", ErrCorrupt, len(b.Mins), len(b.Maxs))
	}

	payload := make([]byte, 8*len(b.Mins))
	off := 0
	for _, v := range b.Mins {
		binary.LittleEndian.PutUint32(payload[off:], math.Float32bits(v))
		off += 4
	}
	for _, v := range b.Maxs {
		binary.LittleEndian.PutUint32(payload[off:], math.Float32bits(v))
		off += 4
	}

	block, err := compressBlock(payload, c)
	if err != nil {
		return err
	}

	header := make([]byte, headerSize)
	copy(header, magic[:])
	header[4] = formatVersion
	header[5] = byte(c)
	binary.LittleEndian.PutUint32(header[6:], uint32(len(b.Mins)))

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(block)
	return err
}

// Read deserializes a batch written by Write.
func Read(r io.Reader) (*Batch, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if [4]byte(header[:4]) != magic {
		return nil, ErrBadMagic
	}
	if header[4] != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, header[4])
	}
	c := Compression(header[5])
	count := binary.LittleEndian.Uint32(header[6:])

	block, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	payload, err := decompressBlock(block, c)
	if err != nil {
		return nil, err
	}
	if uint32(len(payload)) != 8*count {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d", ErrCorrupt, len(payload), 8*count)
	}

	b := &Batch{
		Mins: make([]float32, count),
		Maxs: make([]float32, count),
	}
	off := 0
	for i := range b.Mins {
		b.Mins[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[off:]))
		off += 4
	}
	for i := range b.Maxs {
		b.Maxs[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[off:]))
		off += 4
	}
	return b, nil
}

// WriteFile writes the batch to path.
func WriteFile(path string, b *Batch, c Compression) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, b, c); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a batch from path.
func ReadFile(path string) (*Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// compressBlock compresses the payload. Returns the block with its header;
// if compression does not help, the payload is stored uncompressed.
func compressBlock(payload []byte, c Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressLZ4(payload)
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(payload, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrCorrupt, c)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || len(compressed) >= len(payload) {
		block := make([]byte, blockHdrSize+len(payload))
		binary.LittleEndian.PutUint32(block[0:], uint32(len(payload)))
		binary.LittleEndian.PutUint32(block[4:], 0) // 0 = uncompressed
		copy(block[blockHdrSize:], payload)
		return block, nil
	}

	block := make([]byte, blockHdrSize+len(compressed))
	binary.LittleEndian.PutUint32(block[0:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(block[4:], uint32(len(compressed)))
	copy(block[blockHdrSize:], compressed)
	return block, nil
}

func compressLZ4(payload []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(payload)))
	n, err := lz4.CompressBlock(payload, dst, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return dst[:n], nil
}

func decompressBlock(block []byte, c Compression) ([]byte, error) {
	if len(block) < blockHdrSize {
		return nil, fmt.Errorf("%w: block too small for header", ErrCorrupt)
	}
	uncompressedSize := binary.LittleEndian.Uint32(block[0:])
	compressedSize := binary.LittleEndian.Uint32(block[4:])

	if compressedSize == 0 {
		if uint32(len(block)) < blockHdrSize+uncompressedSize {
			return nil, fmt.Errorf("%w: truncated uncompressed block", ErrCorrupt)
		}
		return block[blockHdrSize : blockHdrSize+uncompressedSize], nil
	}
	if uint32(len(block)) < blockHdrSize+compressedSize {
		return nil, fmt.Errorf("%w: truncated compressed block", ErrCorrupt)
	}
	data := block[blockHdrSize : blockHdrSize+compressedSize]

	switch c {
	case CompressionLZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		out, err := dec.DecodeAll(data, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrCorrupt, c)
	}
}
