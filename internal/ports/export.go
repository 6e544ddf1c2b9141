package ports

import (
	"context"

	"apt-sources/internal/types"
)

// RecordExportPort renders a set of records into one output file. An empty
// path writes to standard output.
type RecordExportPort interface {
	Export(ctx context.Context, path string, records []types.RepositoryRecord) error
	Format() string
}
