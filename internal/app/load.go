package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-sources/internal/core"
	"apt-sources/internal/types"
)

// LoadAll loads the first paragraph of every .sources file in req.Dir. A
// directory that cannot be listed fails the call; a file that cannot be
// loaded is recorded in the result and the scan continues.
func (s Service) LoadAll(ctx context.Context, req LoadAllRequest) (LoadAllResult, error) {
	dir := strings.TrimSpace(req.Dir)
	if dir == "" {
		return LoadAllResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sources directory is required")
	}
	paths, err := s.SourcesDir.ListSources(ctx, dir)
	if err != nil {
		return LoadAllResult{}, err
	}
	result := LoadAllResult{Dir: dir, Results: make([]types.SourceLoadResult, 0, len(paths))}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return LoadAllResult{}, err
		}
		loaded := s.loadFile(ctx, path)
		if !loaded.OK() {
			log.Warn().
				Err(loaded.Err).
				Str("path", path).
				Str("kind", string(loaded.Kind)).
				Msg("skipping sources file")
		}
		result.Results = append(result.Results, loaded)
	}
	log.Debug().
		Str("dir", dir).
		Int("files", len(paths)).
		Int("failed", len(result.Failures())).
		Msg("sources loaded")
	return result, nil
}

// Load reads the record of a single .sources file.
func (s Service) Load(ctx context.Context, req LoadRequest) (types.RepositoryRecord, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return types.RepositoryRecord{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sources file path is required")
	}
	loaded := s.loadFile(ctx, path)
	if loaded.Err != nil {
		return types.RepositoryRecord{}, loaded.Err
	}
	return *loaded.Record, nil
}

func (s Service) loadFile(ctx context.Context, path string) types.SourceLoadResult {
	doc, err := s.SourceFile.Read(ctx, path)
	if err != nil {
		kind := types.LoadFailureIO
		if errbuilder.CodeOf(err) == errbuilder.CodeInvalidArgument {
			kind = types.LoadFailureParse
		}
		return types.SourceLoadResult{Path: path, Err: err, Kind: kind}
	}
	record, err := core.RecordFromDocument(doc, path)
	if err != nil {
		return types.SourceLoadResult{Path: path, Err: err, Kind: types.LoadFailureEmpty}
	}
	return types.SourceLoadResult{Path: path, Record: &record}
}
