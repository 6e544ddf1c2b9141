package cli

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"apt-sources/internal/app"
	"apt-sources/internal/types"
)

type editOptions struct {
	Overwrite bool
}

func newSetCommand() *cobra.Command {
	opts := editOptions{}
	cmd := &cobra.Command{
		Use:   "set PATH FIELD=VALUE...",
		Short: "Set fields of a .sources file",
		Long: "Set fields of a .sources file. Only the lines of changed fields are rewritten " +
			"unless --overwrite is given, which replaces the file with the recognized fields only.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			return runEdit(cmd, opts, app.EditRequest{Path: args[0], Set: set})
		},
	}
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "Replace the file with the canonical rendering of the record")
	return cmd
}

func newUnsetCommand() *cobra.Command {
	opts := editOptions{}
	cmd := &cobra.Command{
		Use:   "unset PATH FIELD...",
		Short: "Remove fields from a .sources file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFields(args[1:])
			if err != nil {
				return err
			}
			return runEdit(cmd, opts, app.EditRequest{Path: args[0], Clear: fields})
		},
	}
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "Replace the file with the canonical rendering of the record")
	return cmd
}

func runEdit(cmd *cobra.Command, opts editOptions, req app.EditRequest) error {
	req.Mode = app.WriteModePatch
	if resolveBool(cmd, opts.Overwrite, "overwrite", "overwrite") {
		req.Mode = app.WriteModeOverwrite
	}
	service := newAppService()
	result, err := service.Edit(cmd.Context(), req)
	if err != nil {
		return err
	}
	if result.Changed {
		fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", req.Path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already up to date\n", req.Path)
	}
	return nil
}

func parseAssignments(args []string) (map[types.SourceField]string, error) {
	set := make(map[types.SourceField]string, len(args))
	for _, arg := range args {
		label, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("expected FIELD=VALUE, got '" + arg + "'")
		}
		field, err := parseField(label)
		if err != nil {
			return nil, err
		}
		set[field] = strings.TrimSpace(value)
	}
	return set, nil
}

func parseFields(args []string) ([]types.SourceField, error) {
	fields := make([]types.SourceField, 0, len(args))
	for _, arg := range args {
		field, err := parseField(arg)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func parseField(label string) (types.SourceField, error) {
	field, ok := types.ParseSourceField(strings.TrimSpace(label))
	if !ok {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown source field '" + label + "'")
	}
	return field, nil
}
