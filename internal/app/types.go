package app

import "apt-sources/internal/types"

// WriteMode selects how a record reaches disk.
type WriteMode string

const (
	// WriteModeOverwrite replaces the file with the canonical rendering of
	// the record. Comments, unknown fields and other paragraphs are lost.
	WriteModeOverwrite WriteMode = "overwrite"
	// WriteModePatch applies the record onto the first paragraph of the
	// existing file and keeps everything else.
	WriteModePatch WriteMode = "patch"
)

type LoadAllRequest struct {
	Dir string
}

type LoadAllResult struct {
	Dir     string
	Results []types.SourceLoadResult
}

// Records returns the records of every file that loaded, in scan order.
func (r LoadAllResult) Records() []types.RepositoryRecord {
	var records []types.RepositoryRecord
	for _, result := range r.Results {
		if result.OK() {
			records = append(records, *result.Record)
		}
	}
	return records
}

// Failures returns the results of every file that did not load.
func (r LoadAllResult) Failures() []types.SourceLoadResult {
	var failures []types.SourceLoadResult
	for _, result := range r.Results {
		if !result.OK() {
			failures = append(failures, result)
		}
	}
	return failures
}

type LoadRequest struct {
	Path string
}

type WriteRequest struct {
	Record types.RepositoryRecord
	// Path defaults to Record.Path.
	Path string
	// Mode defaults to WriteModeOverwrite.
	Mode WriteMode
}

type WriteResult struct {
	Path  string
	Mode  WriteMode
	Bytes int
}

type EditRequest struct {
	Path  string
	Set   map[types.SourceField]string
	Clear []types.SourceField
	// Mode defaults to WriteModePatch.
	Mode WriteMode
}

type EditResult struct {
	Record  types.RepositoryRecord
	Changed bool
}

type ExportRequest struct {
	Dir    string
	Output string
	Format string
}

type ExportResult struct {
	Format   string
	Exported int
	Failures []types.SourceLoadResult
}

type CheckRequest struct {
	Dir string
}

type CheckResult struct {
	Files    []types.SourceLoadResult
	Failures int
}
