package cli

import (
	"github.com/spf13/cobra"

	"apt-sources/internal/app"
	"apt-sources/internal/core"
)

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show PATH",
		Short: "Print the recognized fields of a .sources file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, path string) error {
	service := newAppService()
	record, err := service.Load(cmd.Context(), app.LoadRequest{Path: path})
	if err != nil {
		return err
	}
	data, err := core.FormatRecord(record)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
