package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"nvm-manager/internal/engine"
	"nvm-manager/internal/nvm"
	"nvm-manager/internal/versions"
)

func newLsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List installed Node.js versions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			res := e.engine.ListInstalled(cmd.Context())
			versions.SortDescending(res.Versions, func(v nvm.InstalledVersion) string { return v.Version })
			if err := render(cmd, opts.output, res, func(t table.Writer) {
				t.AppendHeader(table.Row{"", "Version", "Status"})
				for _, v := range res.Versions {
					badge, status := "", string(nvm.StatusInstalled)
					if v.IsCurrent {
						badge, status = "*", "Current"
					}
					t.AppendRow(table.Row{badge, v.Version, status})
				}
			}); err != nil {
				return err
			}
			return listOutcome(cmd, opts, res.Success, res.Message)
		},
	}
}

func newAvailableCmd(opts *options) *cobra.Command {
	var (
		all     bool
		limit   int
		ltsOnly bool
	)
	cmd := &cobra.Command{
		Use:     "available",
		Aliases: []string{"ls-remote"},
		Short:   "List released Node.js versions and whether each is installed",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}
			e, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			res := e.engine.ListAvailable(cmd.Context())
			res.Versions = selectAvailable(res.Versions, ltsOnly, all, limit)
			if err := render(cmd, opts.output, res, func(t table.Writer) {
				appendAvailableTable(t, res.Versions)
			}); err != nil {
				return err
			}
			return listOutcome(cmd, opts, res.Success, res.Message)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Show every release instead of the newest ones")
	cmd.Flags().IntVar(&limit, "limit", 20, "Number of releases to show when --all is not set")
	cmd.Flags().BoolVar(&ltsOnly, "lts", false, "Only show LTS releases")
	return cmd
}

// selectAvailable sorts newest first, then applies the LTS filter and limit.
func selectAvailable(list []nvm.AvailableVersion, ltsOnly, all bool, limit int) []nvm.AvailableVersion {
	out := make([]nvm.AvailableVersion, 0, len(list))
	for _, v := range list {
		if ltsOnly && v.LTS == "" {
			continue
		}
		out = append(out, v)
	}
	versions.SortDescending(out, func(v nvm.AvailableVersion) string { return v.Version })
	if !all && limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func appendAvailableTable(t table.Writer, list []nvm.AvailableVersion) {
	npmKnown := false
	for _, v := range list {
		if v.NpmVersion != "" && v.NpmVersion != nvm.UnknownNpm {
			npmKnown = true
			break
		}
	}
	if npmKnown {
		t.AppendHeader(table.Row{"Version", "npm", "LTS", "Date", "Status"})
	} else {
		t.AppendHeader(table.Row{"Version", "LTS", "Date", "Status"})
	}
	for _, v := range list {
		if npmKnown {
			t.AppendRow(table.Row{v.Version, v.NpmVersion, v.LTS, v.Date, string(v.Status)})
			continue
		}
		t.AppendRow(table.Row{v.Version, v.LTS, v.Date, string(v.Status)})
	}
}

// listOutcome reports the envelope message. In table mode it goes to stderr
// so stdout stays a clean table.
func listOutcome(cmd *cobra.Command, opts *options, success bool, message string) error {
	if opts.output == formatTable && message != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), message)
	}
	if !success {
		return errReported
	}
	return nil
}

func newInstallCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "install <version>",
		Short: "Install a Node.js version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			return reportAction(cmd, opts, e.engine.Install(cmd.Context(), strings.TrimSpace(args[0])))
		},
	}
}

func newUninstallCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "uninstall <version>",
		Short: "Uninstall a Node.js version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := strings.TrimSpace(args[0])
			if !yes {
				ok, err := opts.confirm(v)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), "Uninstall canceled")
					return nil
				}
			}
			e, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			return reportAction(cmd, opts, e.engine.Uninstall(cmd.Context(), v))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newUseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "use <version>",
		Aliases: []string{"switch"},
		Short:   "Switch the active Node.js version",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			return reportAction(cmd, opts, e.engine.Switch(cmd.Context(), strings.TrimSpace(args[0])))
		},
	}
}

func reportAction(cmd *cobra.Command, opts *options, res engine.ActionResult) error {
	if opts.output != formatTable {
		if err := render(cmd, opts.output, res, nil); err != nil {
			return err
		}
		if !res.Success {
			return errReported
		}
		return nil
	}
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

type statusReport struct {
	Active          string `json:"active" yaml:"active"`
	Installed       int    `json:"installed" yaml:"installed"`
	Available       int    `json:"available" yaml:"available"`
	Latest          string `json:"latest" yaml:"latest"`
	LatestLTS       string `json:"latestLts,omitempty" yaml:"latestLts,omitempty"`
	Source          string `json:"source" yaml:"source"`
	InstalledError  string `json:"installedError,omitempty" yaml:"installedError,omitempty"`
	AvailableNotice string `json:"availableNotice,omitempty" yaml:"availableNotice,omitempty"`
}

func buildStatus(installed engine.InstalledResult, available engine.AvailableResult) statusReport {
	rep := statusReport{
		Active:          "none",
		Installed:       len(installed.Versions),
		Available:       len(available.Versions),
		Source:          "catalog",
		AvailableNotice: available.Message,
	}
	if !installed.Success {
		rep.InstalledError = installed.Message
	}
	if available.Degraded {
		rep.Source = "ls-remote"
	}
	for _, v := range installed.Versions {
		if v.IsCurrent {
			rep.Active = v.Version
		}
	}
	sorted := append([]nvm.AvailableVersion(nil), available.Versions...)
	versions.SortDescending(sorted, func(v nvm.AvailableVersion) string { return v.Version })
	for _, v := range sorted {
		if rep.Latest == "" {
			rep.Latest = v.Version
		}
		if rep.LatestLTS == "" && v.LTS != "" {
			rep.LatestLTS = fmt.Sprintf("%s (%s)", v.Version, v.LTS)
		}
	}
	return rep
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize the active version and both version lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.newEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			installed, available := e.engine.Snapshot(cmd.Context())
			rep := buildStatus(installed, available)
			if err := render(cmd, opts.output, rep, func(t table.Writer) {
				t.AppendRows([]table.Row{
					{"Active", rep.Active},
					{"Installed", rep.Installed},
					{"Available", rep.Available},
					{"Latest", rep.Latest},
					{"Latest LTS", orDash(rep.LatestLTS)},
					{"Source", rep.Source},
				})
			}); err != nil {
				return err
			}
			if !installed.Success || !available.Success {
				if opts.output == formatTable {
					for _, msg := range []string{rep.InstalledError, available.Message} {
						if msg != "" {
							fmt.Fprintln(cmd.ErrOrStderr(), msg)
						}
					}
				}
				return errReported
			}
			return listOutcome(cmd, opts, true, available.Message)
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
