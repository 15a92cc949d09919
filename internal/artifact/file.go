package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/SW2PDEPLOY/front/internal/generator"
)

// FileSink writes delivered archives into a directory. Data goes through a
// temp file renamed into place on success, so a half-written archive never
// survives a failed delivery.
type FileSink struct {
	Dir string
}

func (s FileSink) Deliver(a *generator.Artifact) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, a.Name+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close artifact file: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(dir, a.Name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}

	return nil
}
