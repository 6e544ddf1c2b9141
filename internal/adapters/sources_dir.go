package adapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-sources/internal/ports"
)

const sourcesExtension = ".sources"

type SourcesDirAdapter struct{}

func NewSourcesDirAdapter() SourcesDirAdapter {
	return SourcesDirAdapter{}
}

func (a SourcesDirAdapter) ListSources(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sources directory is empty")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ioError(err, "failed to read sources directory "+dir)
	}
	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if !isSourcesName(name) {
			continue
		}
		path := filepath.Join(dir, name)
		if isDirectory(entry, path) {
			log.Debug().Str("path", path).Msg("skipping directory with sources extension")
			continue
		}
		paths = append(paths, path)
	}
	log.Debug().
		Str("dir", dir).
		Int("entries", len(entries)).
		Int("sources", len(paths)).
		Msg("sources directory scanned")
	return paths, nil
}

// isSourcesName matches "<stem>.sources" with a non-empty stem. A bare
// ".sources" is a dotfile without an extension.
func isSourcesName(name string) bool {
	return strings.HasSuffix(name, sourcesExtension) && len(name) > len(sourcesExtension)
}

func isDirectory(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var _ ports.SourcesDirPort = SourcesDirAdapter{}
