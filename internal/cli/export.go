package cli

import (
	"fmt"
	"strconv"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"apt-sources/internal/app"
)

type exportOptions struct {
	Format string
	Output string
}

func newExportCommand() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every repository of the sources directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "yaml", "Export format (yaml, toml, deb822)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output file (stdout when empty)")
	_ = viper.BindPFlag("export_format", cmd.Flags().Lookup("format"))
	return cmd
}

func runExport(cmd *cobra.Command, opts exportOptions) error {
	service := newAppService()
	result, err := service.Export(cmd.Context(), app.ExportRequest{
		Dir:    sourcesDir(cmd),
		Output: opts.Output,
		Format: resolveString(cmd, opts.Format, "export_format", "format"),
	})
	if err != nil {
		return err
	}
	for _, failure := range result.Failures {
		log.Warn().Str("path", failure.Path).Err(failure.Err).Msg("not exported")
	}
	if opts.Output != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d records to %s (%s)\n", result.Exported, opts.Output, result.Format)
	}
	return nil
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every .sources file of the sources directory loads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd)
		},
	}
}

func runCheck(cmd *cobra.Command) error {
	service := newAppService()
	result, err := service.Check(cmd.Context(), app.CheckRequest{Dir: sourcesDir(cmd)})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, file := range result.Files {
		if file.OK() {
			fmt.Fprintf(out, "ok     %s\n", file.Path)
			continue
		}
		fmt.Fprintf(out, "%-6s %s: %s\n", file.Kind, file.Path, errorMessage(file.Err))
	}
	if result.Failures > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(strconv.Itoa(result.Failures) + " of " + strconv.Itoa(len(result.Files)) + " sources files failed to load")
	}
	return nil
}
