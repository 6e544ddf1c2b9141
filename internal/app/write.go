package app

import (
	"context"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"apt-sources/internal/core"
	"apt-sources/internal/deb822"
	"apt-sources/internal/types"
)

// Write persists req.Record. In overwrite mode the file becomes exactly the
// canonical rendering of the record; in patch mode the record is applied to
// the first paragraph of the existing file (created when missing).
func (s Service) Write(ctx context.Context, req WriteRequest) (WriteResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		path = strings.TrimSpace(req.Record.Path)
	}
	if path == "" {
		return WriteResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sources file path is required")
	}
	mode, err := normalizeMode(req.Mode, WriteModeOverwrite)
	if err != nil {
		return WriteResult{}, err
	}

	var data []byte
	switch mode {
	case WriteModePatch:
		doc, err := s.readForPatch(ctx, path)
		if err != nil {
			return WriteResult{}, err
		}
		if err := patchDocument(doc, req.Record, path); err != nil {
			return WriteResult{}, err
		}
		data = doc.Bytes()
	default:
		data, err = core.FormatRecord(req.Record)
		if err != nil {
			return WriteResult{}, err
		}
	}

	if err := s.writeFile(ctx, path, data); err != nil {
		return WriteResult{}, err
	}
	log.Debug().
		Str("path", path).
		Str("mode", string(mode)).
		Int("fields", req.Record.Len()).
		Msg("record written")
	return WriteResult{Path: path, Mode: mode, Bytes: len(data)}, nil
}

// readForPatch returns the current document at path, or an empty one when
// the file does not exist yet.
func (s Service) readForPatch(ctx context.Context, path string) (*deb822.Document, error) {
	doc, err := s.SourceFile.Read(ctx, path)
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
			return &deb822.Document{}, nil
		}
		return nil, err
	}
	return doc, nil
}

// patchDocument applies record to the first paragraph of doc, appending a
// paragraph when the document has none. The first paragraph must keep at
// least one field.
func patchDocument(doc *deb822.Document, record types.RepositoryRecord, path string) error {
	p, err := doc.First()
	if err != nil {
		if record.Len() == 0 {
			return nil
		}
		p, err := core.ParagraphFromRecord(record)
		if err != nil {
			return err
		}
		doc.Append(p)
		return nil
	}
	if err := core.ApplyRecord(p, record); err != nil {
		return err
	}
	if p.Len() == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("patch would remove every field of the first paragraph of " + path + "; use overwrite mode to empty it")
	}
	return nil
}

func (s Service) writeFile(ctx context.Context, path string, data []byte) error {
	assert.NotEmpty(ctx, path, "write path must be resolved before writing")
	return s.SourceFile.Write(ctx, path, data)
}

func normalizeMode(mode WriteMode, fallback WriteMode) (WriteMode, error) {
	switch WriteMode(strings.ToLower(strings.TrimSpace(string(mode)))) {
	case "":
		return fallback, nil
	case WriteModeOverwrite:
		return WriteModeOverwrite, nil
	case WriteModePatch:
		return WriteModePatch, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown write mode '" + string(mode) + "'")
	}
}
