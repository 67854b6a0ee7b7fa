package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files. Each file goes to outputDir when it
// is set, otherwise next to its record (GeneratedFile.Dir). Directories are
// created as needed.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	written := make([]string, 0, len(files))

	for _, file := range files {
		dir := file.Dir
		if outputDir != "" {
			dir = outputDir
		}

		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory %s: %w", dir, err)
		}

		outputPath := filepath.Join(dir, file.Filename)
		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", outputPath, err)
		}

		written = append(written, outputPath)
	}

	return written, nil
}
