package filecrypt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/AshGw/litecrypt/internal/config"
	"github.com/AshGw/litecrypt/internal/crypt"
)

// Result represents the outcome of processing a single file.
type Result struct {
	// Input file path
	Input string

	// Output file path
	Output string

	// Output file size in bytes
	OutputSize int64

	// Any error that occurred during processing
	Error error
}

// Processor encrypts or decrypts a batch of files through the envelope core.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// key is the validated, trimmed hex key
	key string

	// params carries the derivation settings recorded in every envelope
	params crypt.Params

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// NewProcessor validates the key up front and returns a Processor ready to
// run. Iteration bounds are enforced again inside the core on every call.
func NewProcessor(cfg *config.Config, key string) (*Processor, error) {
	key, err := crypt.CheckKey(key)
	if err != nil {
		return nil, err
	}

	params := crypt.DefaultParams()
	params.Iterations = cfg.Iterations

	if cfg.Intensive {
		params.Algorithm = crypt.AlgorithmIntensive
	}

	return &Processor{
		cfg:     cfg,
		key:     key,
		params:  params,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles runs the batch with cfg.Parallel workers, draining results on
// the calling goroutine. It returns the number of files processed and errored
// and the total output size. With cfg.Stats set, a one-line summary follows
// the per-file output.
func (p *Processor) ProcessFiles() (processed, errored int, totalSize int64, err error) {
	start := time.Now()

	group := errgroup.Group{}
	group.SetLimit(p.cfg.Parallel)

	go func() {
		for _, file := range p.cfg.Files {
			group.Go(func() error {
				outPath, err := p.outputPath(file)
				if err == nil {
					var size int64

					size, err = p.processFile(file, outPath)
					if err == nil {
						p.results <- Result{Input: file, Output: outPath, OutputSize: size}

						return nil
					}
				}

				p.results <- Result{Input: file, Error: err}

				return err
			})
		}

		// Every failure also arrives as a Result; the aggregate error is
		// redundant here.
		_ = group.Wait()

		close(p.results)
	}()

	var firstErr error

	for result := range p.results {
		if result.Error != nil {
			errored++

			if firstErr == nil {
				firstErr = result.Error
			}

			fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", result.Input, result.Error)

			continue
		}

		processed++

		totalSize += result.OutputSize

		if !p.cfg.Quiet {
			fmt.Printf("Processed %q -> %q\n", result.Input, result.Output)
		}

		if p.cfg.Delete {
			if err := os.Remove(result.Input); err != nil {
				fmt.Fprintf(os.Stderr, "Error deleting %q: %v\n", result.Input, err)
			} else if !p.cfg.Quiet {
				fmt.Printf("Deleted %q\n", result.Input)
			}
		}
	}

	if p.cfg.Stats {
		fmt.Printf("Processed %d file(s), %d error(s), %s written in %s\n",
			processed, errored, humanize.Bytes(uint64(totalSize)), time.Since(start).Round(time.Millisecond))
	}

	if firstErr != nil {
		return processed, errored, totalSize, fmt.Errorf("processing files: %w", firstErr)
	}

	return processed, errored, totalSize, nil
}

// processFile transforms one file. The whole content moves through a single
// envelope, matching the wire format: no streaming, no chunking.
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	aw, err := newAtomicWrite(filename, outPath)
	if err != nil {
		return 0, err
	}

	defer aw.cleanupOnError(&err)

	input, err := os.ReadFile(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("reading input file: %w", err)
	}

	var output []byte

	if p.cfg.Decrypt {
		output, err = crypt.Decrypt(input, p.key)
		if err != nil {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}
	} else {
		output, err = crypt.Encrypt(input, p.key, p.params)
		if err != nil {
			return 0, fmt.Errorf("encrypting file: %w", err)
		}
	}

	return aw.commit(output)
}

// outputPath derives the destination from the encrypted-file suffix and
// rejects operations that would apply the same transformation twice.
func (p *Processor) outputPath(filename string) (string, error) {
	suffix := p.cfg.Suffix

	if p.cfg.Decrypt {
		if !strings.HasSuffix(filename, suffix) {
			return "", fmt.Errorf("%w: %q", ErrNotEncrypted, filename)
		}

		return strings.TrimSuffix(filename, suffix), nil
	}

	if strings.HasSuffix(filename, suffix) {
		return "", fmt.Errorf("%w: %q", ErrAlreadyEncrypted, filename)
	}

	return filename + suffix, nil
}
