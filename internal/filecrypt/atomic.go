package filecrypt

import (
	"fmt"
	"os"
	"path/filepath"
)

// atomicWrite stages output in a temp file next to the destination so a
// failed operation never leaves a partial result behind. File permissions,
// including the executable bits, carry over from the source.
type atomicWrite struct {
	outPath string
	tmpName string
	mode    os.FileMode
}

func newAtomicWrite(filename, outPath string) (*atomicWrite, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("getting file info for %q: %w", filename, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrIsDirectory, filename)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".litecrypt-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return nil, fmt.Errorf("closing temporary file: %w", err)
	}

	const ownerReadWrite = 0o600

	mode := os.FileMode(ownerReadWrite)
	if info.Mode()&0o111 != 0 {
		mode |= 0o111
	}

	return &atomicWrite{
		outPath: outPath,
		tmpName: tmp.Name(),
		mode:    mode,
	}, nil
}

// commit writes the content to the temp file and renames it into place,
// returning the output size.
func (aw *atomicWrite) commit(content []byte) (int64, error) {
	if err := os.WriteFile(aw.tmpName, content, aw.mode); err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}

	if err := os.Chmod(aw.tmpName, aw.mode); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := os.Rename(aw.tmpName, aw.outPath); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	return int64(len(content)), nil
}

// cleanupOnError removes the temp file if the operation failed.
func (aw *atomicWrite) cleanupOnError(errp *error) {
	if *errp != nil {
		os.Remove(aw.tmpName)
	}
}
