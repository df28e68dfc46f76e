// Package container implements the ALZW container format: a 32-bit
// seq_count, that many null-terminated sequence names, and a single token
// stream. File opening uses xopen so containers may be transparently
// gzip/xz/zstd compressed.
package container

import (
	"fmt"
	"io"

	"github.com/shenwei356/xopen"

	"github.com/operutka/alzw/bitio"
)

const maxNameLen = 4096

// Create opens path for writing (xopen.Wopen handles "-" as stdout and any
// supported compression extension) and returns a bit writer ready for
// WriteHeader followed by token-stream writes.
func Create(path string) (*bitio.Writer, io.Closer, error) {
	f, err := xopen.Wopen(path)
	if err != nil {
		return nil, nil, fmt.Errorf("container: create %s: %w", path, err)
	}
	return bitio.NewWriter(f), f, nil
}

// Open opens path for reading and returns a bit reader ready for
// ReadHeader followed by token-stream reads.
func Open(path string) (*bitio.Reader, io.Closer, error) {
	f, err := xopen.Ropen(path)
	if err != nil {
		return nil, nil, fmt.Errorf("container: open %s: %w", path, err)
	}
	return bitio.NewReader(f), f, nil
}

// WriteHeader writes seq_count and the sequence names. An empty names
// slice writes seq_count=0, "single anonymous sequence".
func WriteHeader(w *bitio.Writer, names []string) error {
	if err := w.Write(uint64(len(names)), 32); err != nil {
		return err
	}
	for _, name := range names {
		if len(name) >= maxNameLen {
			return fmt.Errorf("container: sequence name %q exceeds %d bytes", name, maxNameLen-1)
		}
		if err := w.WriteString(name); err != nil {
			return err
		}
	}
	return nil
}

// ReadHeader reads seq_count and that many names. A seq_count of 0 returns
// a single empty name (anonymous sequence).
func ReadHeader(r *bitio.Reader) ([]string, error) {
	count, err := r.ReadInt()
	if err != nil {
		return nil, fmt.Errorf("container: read seq_count: %w", err)
	}
	if count == 0 {
		return []string{""}, nil
	}

	names := make([]string, count)
	buf := make([]byte, maxNameLen)
	for i := uint32(0); i < count; i++ {
		n, err := r.ReadString(buf)
		if err != nil {
			return nil, fmt.Errorf("container: read sequence name %d: %w", i, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("container: sequence name %d longer than %d bytes", i, maxNameLen-1)
		}
		names[i] = string(buf[:n])
	}
	return names, nil
}
