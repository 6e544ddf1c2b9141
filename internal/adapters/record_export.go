package adapters

import (
	"context"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"apt-sources/internal/core"
	"apt-sources/internal/ports"
	"apt-sources/internal/types"
)

const (
	ExportFormatYAML   = "yaml"
	ExportFormatTOML   = "toml"
	ExportFormatDeb822 = "deb822"
)

// NewRecordExportAdapter returns the exporter for format.
func NewRecordExportAdapter(format string) (ports.RecordExportPort, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case ExportFormatYAML, "":
		return YAMLExportAdapter{}, nil
	case ExportFormatTOML:
		return TOMLExportAdapter{}, nil
	case ExportFormatDeb822:
		return Deb822ExportAdapter{}, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown export format '" + format + "'")
	}
}

// YAMLExportAdapter writes a sequence of {path, fields} mappings. Fields
// keep schema order.
type YAMLExportAdapter struct{}

func (a YAMLExportAdapter) Format() string {
	return ExportFormatYAML
}

func (a YAMLExportAdapter) Export(ctx context.Context, path string, records []types.RepositoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	root := &yaml.Node{Kind: yaml.SequenceNode}
	for _, record := range records {
		fields := &yaml.Node{Kind: yaml.MappingNode}
		for _, entry := range record.Entries() {
			fields.Content = append(fields.Content, yamlString(entry.Label), yamlString(entry.Value))
		}
		item := &yaml.Node{Kind: yaml.MappingNode}
		item.Content = append(item.Content,
			yamlString("path"), yamlString(record.Path),
			yamlString("fields"), fields,
		)
		root.Content = append(root.Content, item)
	}
	data, err := yaml.Marshal(root)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode yaml export").
			WithCause(err)
	}
	return writeExport(path, data)
}

func yamlString(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

type tomlExport struct {
	Sources []tomlSource `toml:"sources"`
}

type tomlSource struct {
	Path   string      `toml:"path"`
	Fields []tomlField `toml:"field"`
}

type tomlField struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

// TOMLExportAdapter writes [[sources]] tables with their fields as an
// ordered [[sources.field]] array.
type TOMLExportAdapter struct{}

func (a TOMLExportAdapter) Format() string {
	return ExportFormatTOML
}

func (a TOMLExportAdapter) Export(ctx context.Context, path string, records []types.RepositoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	export := tomlExport{Sources: make([]tomlSource, 0, len(records))}
	for _, record := range records {
		source := tomlSource{Path: record.Path}
		for _, entry := range record.Entries() {
			source.Fields = append(source.Fields, tomlField{Name: entry.Label, Value: entry.Value})
		}
		export.Sources = append(export.Sources, source)
	}
	data, err := toml.Marshal(export)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode toml export").
			WithCause(err)
	}
	return writeExport(path, data)
}

// Deb822ExportAdapter writes every record as one paragraph of a single
// deb822 document.
type Deb822ExportAdapter struct{}

func (a Deb822ExportAdapter) Format() string {
	return ExportFormatDeb822
}

func (a Deb822ExportAdapter) Export(ctx context.Context, path string, records []types.RepositoryRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := core.FormatRecords(records)
	if err != nil {
		return err
	}
	return writeExport(path, data)
}

func writeExport(path string, data []byte) error {
	if strings.TrimSpace(path) == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write export").
				WithCause(err)
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ioError(err, "failed to write export "+path)
	}
	return nil
}

var _ ports.RecordExportPort = YAMLExportAdapter{}
var _ ports.RecordExportPort = TOMLExportAdapter{}
var _ ports.RecordExportPort = Deb822ExportAdapter{}
