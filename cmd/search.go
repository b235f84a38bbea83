package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajxudir/skillsearch/pkg/display"
	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/filtering"
	"github.com/ajxudir/skillsearch/pkg/output"
	"github.com/ajxudir/skillsearch/pkg/verbose"
)

var (
	searchIDFlag     string
	searchSkillFlags []string
	searchModeFlag   string
	searchOutputFlag string
	searchOutFlag    string
)

var searchCmd = &cobra.Command{
	Use:   "search <file>",
	Short: "Filter a file by ID and Code Mapping Skill",
	Long: `Load a CSV or xlsx export and return the rows matching the criteria.

  --id     keeps rows whose [ID] equals the value exactly (200027 does not
           match 2000271)
  --skill  keeps rows whose [Code Mapping Skill] contains any of the given
           skills as a whole token (1 does not match "10, 21"); repeat the
           flag or separate skills with commas

Both filters apply together when given. Rows sharing the same [ID] and
OPCode are reported once. At least one of --id and --skill is required.

` + usageGuide,
	Example: `  skillsearch search skills.csv --id 200027
  skillsearch search skills.csv --skill 1 --skill 21
  skillsearch search skills.csv --id 200027 --skill 1,10 -o xlsx --out result.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchIDFlag, "id", "", "Exact [ID] to match")
	searchCmd.Flags().StringArrayVarP(&searchSkillFlags, "skill", "s", nil, "Code Mapping Skill to match (repeatable, comma-separated)")
	searchCmd.Flags().StringVarP(&searchModeFlag, "mode", "m", "", "Skill matching: token, word_boundary (default: matching.mode)")
	searchCmd.Flags().StringVarP(&searchOutputFlag, "output", "o", "", "Output format: json, csv, xml, xlsx (default: table)")
	searchCmd.Flags().StringVar(&searchOutFlag, "out", "", "Write structured output to a file")
}

// runSearch executes the search command as one search action.
//
// It performs the following operations:
//   - Step 1: Validates --output and --mode before loading anything
//   - Step 2: Loads the file into a session
//   - Step 3: Runs the search; empty criteria exit with ExitMissingCriteria
//   - Step 4: Prints the result table or writes structured output
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: The file to search
//
// Returns:
//   - error: ExitError carrying the exit code on failure
func runSearch(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFlag(searchOutputFlag)
	if err != nil {
		return err
	}

	cfg, err := loadCommandConfig()
	if err != nil {
		return err
	}

	criteria := filtering.ParseCriteria(searchIDFlag, strings.Join(searchSkillFlags, ","))

	s, t, err := loadSession(cfg, args[0])
	if err != nil {
		return err
	}
	if searchModeFlag != "" {
		if err := s.SetMatchMode(searchModeFlag); err != nil {
			verbose.WithDocRef("matching", err.Error())
			return errors.NewExitError(errors.ExitConfigError, err)
		}
	}

	res, err := s.Run(criteria)
	if err != nil {
		if errors.IsMissingCriteria(err) && !output.IsStructuredFormat(format) {
			display.MissingCriteria().Fprint(os.Stdout)
		}
		return err
	}

	if output.IsStructuredFormat(format) {
		result := output.NewSearchResult(res.Table, res, res.Mode)
		return writeStructured(searchOutFlag, format, result.Warnings, func(w io.Writer) error {
			return output.WriteSearchResult(w, format, result)
		})
	}

	display.Loaded(t).Fprint(os.Stdout)
	fmt.Println()
	display.PrintResults(os.Stdout, t, res, cfg.GetMaxCellWidth())
	return nil
}
