// Package exporter writes rendered configuration files to a local directory
// for inspection, mirroring the repository layout of the published change.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/provision-dev/provision/pkg/models"
)

// Service writes publishable files under a base output directory.
type Service struct {
	outputDir string
}

// NewService creates an exporter rooted at outputDir.
func NewService(outputDir string) *Service {
	return &Service{outputDir: outputDir}
}

// Export writes each file to disk, creating directories as needed. The file's
// repository path is reused relative to the output directory so the local tree
// matches what lands in the change request.
func (s *Service) Export(files []models.PublishableFile) error {
	for _, file := range files {
		target := filepath.Join(s.outputDir, filepath.FromSlash(file.Path))

		if err := ensureDir(target); err != nil {
			return err
		}
		if err := os.WriteFile(target, []byte(file.Content), 0o644); err != nil {
			return fmt.Errorf("failed to write export file %s: %w", target, err)
		}
	}
	return nil
}

func ensureDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory %s: %w", dir, err)
	}
	return nil
}
