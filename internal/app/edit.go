package app

import (
	"bytes"
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-sources/internal/core"
	"apt-sources/internal/types"
)

// Edit loads the record of req.Path, sets and clears the requested fields
// and writes the result back. Patch mode (the default) only rewrites the
// lines of the fields that changed. Nothing is written when the output
// would be identical to the current file.
func (s Service) Edit(ctx context.Context, req EditRequest) (EditResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return EditResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sources file path is required")
	}
	if len(req.Set) == 0 && len(req.Clear) == 0 {
		return EditResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("nothing to edit")
	}
	mode, err := normalizeMode(req.Mode, WriteModePatch)
	if err != nil {
		return EditResult{}, err
	}
	for field := range req.Set {
		if !field.Valid() {
			return EditResult{}, unknownFieldError(field)
		}
	}
	for _, field := range req.Clear {
		if !field.Valid() {
			return EditResult{}, unknownFieldError(field)
		}
		if _, ok := req.Set[field]; ok {
			return EditResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("field " + field.Label() + " is both set and cleared")
		}
	}

	doc, err := s.SourceFile.Read(ctx, path)
	if err != nil {
		return EditResult{}, err
	}
	original := doc.Bytes()
	record, err := core.RecordFromDocument(doc, path)
	if err != nil {
		return EditResult{}, err
	}
	for field, value := range req.Set {
		record.Set(field, value)
	}
	for _, field := range req.Clear {
		record.Clear(field)
	}

	var data []byte
	if mode == WriteModePatch {
		if err := patchDocument(doc, record, path); err != nil {
			return EditResult{}, err
		}
		data = doc.Bytes()
	} else {
		data, err = core.FormatRecord(record)
		if err != nil {
			return EditResult{}, err
		}
	}
	if bytes.Equal(original, data) {
		log.Debug().Str("path", path).Msg("sources file unchanged")
		return EditResult{Record: record, Changed: false}, nil
	}
	if err := s.writeFile(ctx, path, data); err != nil {
		return EditResult{}, err
	}
	log.Info().
		Str("path", path).
		Str("mode", string(mode)).
		Int("set", len(req.Set)).
		Int("cleared", len(req.Clear)).
		Msg("sources file updated")
	return EditResult{Record: record, Changed: true}, nil
}

func unknownFieldError(field types.SourceField) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("unknown source field " + field.String())
}
