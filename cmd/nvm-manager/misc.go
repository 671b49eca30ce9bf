package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	configpkg "nvm-manager/internal/config"
	"nvm-manager/internal/doctor"
	"nvm-manager/internal/version"
)

func newDoctorCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the version manager and release index are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			report := doctor.Check(cmd.Context(), e.client, e.fetcher)
			if err := render(cmd, opts.output, report, func(t table.Writer) {
				t.AppendHeader(table.Row{"Check", "Result", "Detail"})
				for _, r := range report.Results {
					result := "ok"
					if !r.OK {
						result = "FAIL"
					}
					t.AppendRow(table.Row{r.Name, result, r.Detail})
				}
			}); err != nil {
				return err
			}
			if err := report.Err(); err != nil {
				if opts.output == formatTable {
					return err
				}
				return errReported
			}
			if opts.output == formatTable {
				fmt.Fprintln(cmd.OutOrStdout(), "doctor: ok")
			}
			return nil
		},
	}
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := configpkg.Path()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			format := opts.output
			if format == formatTable {
				format = formatJSON
			}
			return render(cmd, format, cfg, nil)
		},
	})
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the nvm-manager version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Value)
		},
	}
}
