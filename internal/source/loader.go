package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/shinji-kodama/dotenv-prompt/internal/logging"
)

const (
	// DefaultPrimaryPath is the .env file reconciled when no path is given.
	DefaultPrimaryPath = ".env"

	// DefaultSamplePath is the template consulted when no path is given.
	DefaultSamplePath = ".env.sample"
)

// Sources holds the raw texts of both files along with the paths they
// were read from. An empty text means the file was missing or empty.
type Sources struct {
	PrimaryPath string
	SamplePath  string
	Primary     string
	Sample      string
}

// Load reads the primary and sample files concurrently.
//
// Empty paths fall back to DefaultPrimaryPath and DefaultSamplePath.
// A file that does not exist yields an empty string. Any other error
// aborts the load and is returned wrapped with the offending path.
func Load(ctx context.Context, primaryPath, samplePath string) (*Sources, error) {
	if primaryPath == "" {
		primaryPath = DefaultPrimaryPath
	}
	if samplePath == "" {
		samplePath = DefaultSamplePath
	}

	src := &Sources{PrimaryPath: primaryPath, SamplePath: samplePath}

	// The two reads share nothing, so they may run in parallel. Each
	// goroutine writes only its own field.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := readOptional(gctx, primaryPath)
		src.Primary = text
		return err
	})
	g.Go(func() error {
		text, err := readOptional(gctx, samplePath)
		src.Sample = text
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return src, nil
}

// readOptional reads path as text, treating a missing file as empty.
func readOptional(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	log := logging.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", path).Msg("file not found, treating as empty")
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("file loaded")
	return string(data), nil
}
