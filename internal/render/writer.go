package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// The db and proto artifacts are plain text inputs for the IOC build,
// so they get the usual non-executable mode. The output directory may
// be shared with other build products.
const (
	outputDirPerm = 0o755
	artifactPerm  = 0o644
)

// WriteFiles persists the rendered artifacts under dir, creating it
// when needed. An artifact with no content is skipped, so a proto file
// requested for a run that produced no stubs never lands as an empty
// file.
func WriteFiles(files []GeneratedFile, dir string) error {
	if err := os.MkdirAll(dir, outputDirPerm); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	for _, file := range files {
		if len(file.Content) == 0 {
			continue
		}

		path := filepath.Join(dir, file.Filename)
		if err := os.WriteFile(path, file.Content, artifactPerm); err != nil {
			return fmt.Errorf("writing artifact %s: %w", file.Filename, err)
		}
	}

	return nil
}
