package ollamalink

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewCommand creates the ollamalink Cobra command tree. It can be used as a
// root command or added to a parent CLI.
//
// Commands provided:
//   - link [--force] [--skip-existing] [--source DIR] [--dest DIR]
//   - list [--json]
//   - path
//   - version
//
// Global flags: --verbose, --quiet. Invoked bare, the command prints usage
// and does nothing destructive.
func NewCommand(cfg Config, opts ...ManagerOption) *cobra.Command {
	var (
		verbose bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "ollamalink",
		Short: "Expose Ollama models to LM Studio",
		Long: "Link each locally downloaded Ollama model's weight blob into a\n" +
			"directory layout LM Studio can read. The Ollama store is never modified.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	// newManager folds the persistent flags into the base configuration.
	newManager := func(c Config) (Manager, error) {
		c.Verbose = c.Verbose || verbose
		c.Quiet = c.Quiet || quiet
		return NewManager(c, opts...)
	}

	cmd.AddCommand(linkCmd(cfg, newManager))
	cmd.AddCommand(listCmd(cfg, newManager))
	cmd.AddCommand(pathCmd(cfg, newManager))
	cmd.AddCommand(versionCmd())

	return cmd
}

func linkCmd(cfg Config, newManager func(Config) (Manager, error)) *cobra.Command {
	var (
		sourceDir    string
		destDir      string
		skipExisting bool
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link every Ollama model into the LM Studio directory",
		Long: "Rebuild the destination lmstudio directory and create one link per\n" +
			"model. Without --skip-existing the directory is rebuilt from scratch,\n" +
			"so anything placed there by hand is removed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg
			if sourceDir != "" {
				c.SourceDir = sourceDir
			}
			if destDir != "" {
				c.DestDir = destDir
			}
			c.SkipExisting = c.SkipExisting || skipExisting

			mgr, err := newManager(c)
			if err != nil {
				return err
			}

			// Rebuilding an existing tree is destructive, so it needs
			// explicit confirmation unless the run preserves entries.
			if !force && !c.SkipExisting {
				if entries, err := os.ReadDir(mgr.DestDir()); err == nil && len(entries) > 0 {
					return fmt.Errorf("%s already exists and would be rebuilt from scratch; re-run with --force, or use --skip-existing", mgr.DestDir())
				}
			}

			_, err = mgr.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source", "", "Override the Ollama models directory")
	cmd.Flags().StringVar(&destDir, "dest", "", "Override the destination directory")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Keep destination entries from earlier runs")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Rebuild an existing destination tree without asking")

	return cmd
}

func listCmd(cfg Config, newManager func(Config) (Manager, error)) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List models found in the Ollama store",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(cfg)
			if err != nil {
				return err
			}

			models, err := mgr.Models(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(models)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"NAME", "TYPE", "QUANT", "FORMAT", "SIZE"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("    ")
			for _, m := range models {
				size := ""
				if m.Size > 0 {
					size = HumanBytes(m.Size)
				}
				table.Append([]string{m.Name.String(), m.Type, m.Quantization, m.Format, size})
			}
			table.Render()

			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func pathCmd(cfg Config, newManager func(Config) (Manager, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the directory LM Studio should be pointed at",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := newManager(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mgr.DestDir())
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
