// Package rom reads CHIP-8 program images.
package rom

import (
	"errors"
	"fmt"

	"chyp8/emu/memory"

	"github.com/spf13/afero"
)

// MaxSize is the room between the program start and the end of memory.
const MaxSize = memory.Size - memory.ProgramStart

var (
	ErrTooLarge = errors.New("ROM too large")
	ErrEmpty    = errors.New("ROM is empty")
)

// Load reads the image at path from fs. The file is a raw stream of
// big-endian 16-bit opcodes.
func Load(fs afero.Fs, path string) ([]byte, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening ROM: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("opening ROM: %s is a directory", path)
	}
	if info.Size() > MaxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrTooLarge, path, info.Size(), MaxSize)
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	return data, nil
}
