package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/skillsearch/pkg/display"
	"github.com/ajxudir/skillsearch/pkg/output"
)

var (
	previewRowsFlag   int
	previewOutputFlag string
	previewOutFlag    string
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Load a file and show its first rows",
	Long: `Load a CSV or xlsx export, confirm it was read and show its first rows,
the row count, the number of distinct Code Mapping Skills and any column
warnings.

` + usageGuide,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVarP(&previewRowsFlag, "rows", "n", 0, "Rows to show (default: display.preview_rows)")
	previewCmd.Flags().StringVarP(&previewOutputFlag, "output", "o", "", "Output format: json, csv, xml, xlsx (default: table)")
	previewCmd.Flags().StringVar(&previewOutFlag, "out", "", "Write structured output to a file")
}

// runPreview executes the preview command.
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: The file to load
//
// Returns:
//   - error: Config, load or write failure
func runPreview(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFlag(previewOutputFlag)
	if err != nil {
		return err
	}

	cfg, err := loadCommandConfig()
	if err != nil {
		return err
	}

	_, t, err := loadSession(cfg, args[0])
	if err != nil {
		return err
	}

	n := previewRowsFlag
	if n <= 0 {
		n = cfg.GetPreviewRows()
	}

	if output.IsStructuredFormat(format) {
		result := output.NewPreviewResult(t, n)
		return writeStructured(previewOutFlag, format, result.Warnings, func(w io.Writer) error {
			return output.WritePreviewResult(w, format, result)
		})
	}

	display.PrintLoaded(os.Stdout, t, n, cfg.GetMaxCellWidth())
	fmt.Printf("\nCode Mapping Skills: %d\n", len(t.Vocabulary()))
	return nil
}
