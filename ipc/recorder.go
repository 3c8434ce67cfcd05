package ipc

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Recorder keeps a zstd-compressed copy of everything the referee sends, so a
// match can be replayed offline against a changed strategy.
type Recorder struct {
	f   io.Closer
	enc *zstd.Encoder
}

// NewRecorder compresses into w. The caller keeps ownership of w.
func NewRecorder(w io.Writer) (*Recorder, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("create zstd writer: %w", err)
	}
	return &Recorder{enc: enc}, nil
}

// CreateRecorder records into a new file at path.
func CreateRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create record file: %w", err)
	}
	rec, err := NewRecorder(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	rec.f = f
	return rec, nil
}

// Write compresses p and flushes a frame, so a crash loses at most the
// chunk being read.
func (r *Recorder) Write(p []byte) (int, error) {
	n, err := r.enc.Write(p)
	if err != nil {
		return n, err
	}
	return n, r.enc.Flush()
}

// Tee returns a reader that records everything read from src.
func (r *Recorder) Tee(src io.Reader) io.Reader {
	return io.TeeReader(src, r)
}

func (r *Recorder) Close() error {
	err := r.enc.Close()
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// replay decompresses a recorded match and closes the file with the decoder.
type replay struct {
	dec *zstd.Decoder
	f   *os.File
}

func (r *replay) Read(p []byte) (int, error) { return r.dec.Read(p) }

func (r *replay) Close() error {
	r.dec.Close()
	return r.f.Close()
}

// OpenReplay opens a file written by a Recorder for use as turn input.
func OpenReplay(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	return &replay{dec: dec, f: f}, nil
}
