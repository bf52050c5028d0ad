package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/xlttj/pypisrc/pkg/pip"
	"github.com/xlttj/pypisrc/pkg/source"
)

type sessionRunner func(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the preset mirrors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("#", "KEY", "NAME", "URL")
			for i, p := range source.Presets() {
				t.Row(fmt.Sprintf("%d", i+1), p.Key, p.Label, p.URL)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newUseCommand(with sessionRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "use <preset|url>",
		Short: "Switch pip to a preset mirror or a custom index URL",
		Args:  cobra.ExactArgs(1),
		RunE: with(func(cmd *cobra.Command, args []string, s *session) error {
			preset, err := source.Resolve(args[0])
			if err != nil {
				return err
			}
			return resultError(cmd.OutOrStdout(), s.actions.Apply(cmd.Context(), s.mode, preset))
		}),
	}
}

func newBackupCommand(with sessionRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy pip's config file to a backup next to it",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, s *session) error {
			return resultError(cmd.OutOrStdout(), s.actions.Backup())
		}),
	}
}

func newOpenCommand(with sessionRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open pip's config file with the default application",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, s *session) error {
			return resultError(cmd.OutOrStdout(), s.actions.OpenConfig())
		}),
	}
}

func newExportCommand(with sessionRunner) *cobra.Command {
	var format string
	var stdout bool

	c := &cobra.Command{
		Use:   "export",
		Short: "Export the preset mirrors (JSON to clipboard by default)",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, s *session) error {
			format = strings.ToLower(format)
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if !stdout && format == "json" {
				return resultError(cmd.OutOrStdout(), s.actions.Export())
			}

			var data []byte
			var err error
			if format == "yaml" {
				data, err = source.ExportYAML(s.actions.Presets())
			} else {
				data, err = source.ExportJSON(s.actions.Presets())
			}
			if err != nil {
				return err
			}
			out := string(data)
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			s.logs.Record("exported %d mirror presets as %s", len(s.actions.Presets()), format)
			return nil
		}),
	}
	c.Flags().StringVar(&format, "format", "json", "json or yaml (yaml implies --stdout)")
	c.Flags().BoolVar(&stdout, "stdout", false, "print instead of copying to the clipboard")
	return c
}

func newCurrentCommand(with sessionRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the index URL in pip's config file",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, s *session) error {
			url, err := s.editor.CurrentSource()
			if err != nil {
				return err
			}
			if url == "" {
				url = "(not set)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		}),
	}
}

func newDoctorCommand(with sessionRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Show where pypisrc reads and writes, and check the pip version",
		Args:  cobra.NoArgs,
		RunE: with(func(cmd *cobra.Command, _ []string, s *session) error {
			w := cmd.OutOrStdout()
			paths := s.editor.Paths()

			fmt.Fprintf(w, "config:    %s (exists: %t)\n", paths.File, s.editor.Exists())
			fmt.Fprintf(w, "backup:    %s\n", paths.Backup)
			if paths.TestMode {
				fmt.Fprintf(w, "test mode: writes go to %s\n", paths.TestFile)
			}
			fmt.Fprintf(w, "mode:      %s\n", s.mode)
			fmt.Fprintf(w, "log dir:   %s\n", s.settings.LogDir)

			ctx, cancel := context.WithTimeout(cmd.Context(), s.settings.CommandTimeout)
			defer cancel()
			v, err := s.invoker.Version(ctx)
			if err != nil {
				fmt.Fprintf(w, "tool:      %s not usable: %v\n", s.settings.Tool, err)
				return nil
			}
			if err := pip.CheckVersion(v); err != nil {
				fmt.Fprintf(w, "tool:      %s %s (%v)\n", s.settings.Tool, v, err)
				return nil
			}
			fmt.Fprintf(w, "tool:      %s %s\n", s.settings.Tool, v)
			return nil
		}),
	}
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pypisrc version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if version == "" {
				version = "dev"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pypisrc %s\n", version)
		},
	}
}
