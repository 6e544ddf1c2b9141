package ports

import (
	"context"

	"apt-sources/internal/deb822"
)

// SourcesDirPort lists the repository definition files of a directory.
type SourcesDirPort interface {
	// ListSources returns the paths of the regular entries of dir whose name
	// ends in ".sources" (exact, case-sensitive), sorted by name.
	ListSources(ctx context.Context, dir string) ([]string, error)
}

// SourceFilePort reads and writes whole .sources files.
type SourceFilePort interface {
	// Read loads and parses path.
	Read(ctx context.Context, path string) (*deb822.Document, error)

	// Write replaces the full content of path with data.
	Write(ctx context.Context, path string, data []byte) error
}
