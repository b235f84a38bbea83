package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/skillsearch/pkg/display"
	"github.com/ajxudir/skillsearch/pkg/output"
)

var (
	skillsOutputFlag string
	skillsOutFlag    string
)

var skillsCmd = &cobra.Command{
	Use:   "skills <file>",
	Short: "List the distinct Code Mapping Skills of a file",
	Long: `List every distinct token of the [Code Mapping Skill] column, sorted.
Cells such as "1, 10; 21" contribute the tokens 1, 10 and 21.`,
	Args: cobra.ExactArgs(1),
	RunE: runSkills,
}

func init() {
	skillsCmd.Flags().StringVarP(&skillsOutputFlag, "output", "o", "", "Output format: json, csv, xml, xlsx (default: table)")
	skillsCmd.Flags().StringVar(&skillsOutFlag, "out", "", "Write structured output to a file")
}

// runSkills executes the skills command.
func runSkills(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFlag(skillsOutputFlag)
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

	result := output.NewSkillsResult(t)
	if output.IsStructuredFormat(format) {
		return writeStructured(skillsOutFlag, format, result.Warnings, func(w io.Writer) error {
			return output.WriteSkillsResult(w, format, result)
		})
	}

	display.PrintSkills(os.Stdout, result.Skills)
	display.PrintWarnings(os.Stdout, result.Warnings)
	return nil
}
