package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Export loads every .sources file of req.Dir and renders the records that
// loaded in req.Format. Files that fail to load are reported, not exported.
func (s Service) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	exporter, err := s.Exporter(req.Format)
	if err != nil {
		return ExportResult{}, err
	}
	loaded, err := s.LoadAll(ctx, LoadAllRequest{Dir: req.Dir})
	if err != nil {
		return ExportResult{}, err
	}
	records := loaded.Records()
	if err := exporter.Export(ctx, req.Output, records); err != nil {
		return ExportResult{}, err
	}
	log.Debug().
		Str("format", exporter.Format()).
		Str("output", req.Output).
		Int("records", len(records)).
		Msg("records exported")
	return ExportResult{
		Format:   exporter.Format(),
		Exported: len(records),
		Failures: loaded.Failures(),
	}, nil
}

// Check loads every .sources file of req.Dir and reports which ones could
// not be turned into a record.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	loaded, err := s.LoadAll(ctx, LoadAllRequest{Dir: req.Dir})
	if err != nil {
		return CheckResult{}, err
	}
	return CheckResult{
		Files:    loaded.Results,
		Failures: len(loaded.Failures()),
	}, nil
}
