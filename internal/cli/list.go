package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"apt-sources/internal/app"
	"apt-sources/internal/types"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the repositories defined in the sources directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}
}

func runList(cmd *cobra.Command) error {
	service := newAppService()
	result, err := service.LoadAll(cmd.Context(), app.LoadAllRequest{Dir: sourcesDir(cmd)})
	if err != nil {
		return err
	}

	headers := []string{"FILE", "NAME", "ENABLED", "TYPES", "URIS", "SUITES"}
	rows := make([][]string, 0, len(result.Results))
	for _, loaded := range result.Results {
		if !loaded.OK() {
			rows = append(rows, []string{filepath.Base(loaded.Path), "", "", "", "", "error: " + string(loaded.Kind)})
			continue
		}
		rows = append(rows, listRow(*loaded.Record))
	}

	out := cmd.OutOrStdout()
	if isTerminal(out) {
		fmt.Fprintln(out, renderTable(headers, rows))
		return nil
	}
	fmt.Fprintln(out, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(out, strings.Join(row, "\t"))
	}
	return nil
}

func listRow(record types.RepositoryRecord) []string {
	enabled := "yes"
	if !record.Enabled() {
		enabled = "no"
	}
	name, _ := record.Get(types.FieldRepolibName)
	return []string{
		filepath.Base(record.Path),
		name,
		enabled,
		strings.Join(record.List(types.FieldTypes), " "),
		strings.Join(record.List(types.FieldURIs), " "),
		strings.Join(record.List(types.FieldSuites), " "),
	}
}
