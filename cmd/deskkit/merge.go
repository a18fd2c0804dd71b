// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deskkit/internal/merge"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Append child PDFs onto parent PDFs with the same file name",
	Long: `Merge pairs every PDF in the child directory with the PDF of the same
file name in the parent directory and appends the child's pages after the
parent's. The parent file is replaced only once the merged document has been
written completely. Children without a matching parent are reported and left
alone.

Directories not given by flags are prompted for. Use --backup to keep a copy
of each parent as <name>.pdf.bak before it is replaced.`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func runMerge(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	banner(out, "PDF Merger", "Merges PDFs from a child directory into matching PDFs in a parent directory.")

	fsys := afero.NewOsFs()
	p := prompter(cmd)
	childFlag, _ := cmd.Flags().GetString("child")
	childDir, err := directory(p, fsys, childFlag, "Please enter the child directory path containing PDFs: ")
	if err != nil {
		return err
	}
	parentFlag, _ := cmd.Flags().GetString("parent")
	parentDir, err := directory(p, fsys, parentFlag, "Please enter the parent directory path containing PDFs: ")
	if err != nil {
		return err
	}

	merger := merge.New(merge.NewPDFCPUBackend(), cfg.Merge.Backup, logger)
	result, err := merger.Run(childDir, parentDir)
	if errors.Is(err, merge.ErrNoChildFiles) || errors.Is(err, merge.ErrNoParentFiles) {
		warn(out, "%s", capitalize(err.Error()))
		return nil
	}
	if err != nil {
		return err
	}

	if result.Merged == 0 {
		warn(out, "\nNo PDFs were merged.")
		return nil
	}
	body := fmt.Sprintf("Successfully merged %d PDF files.", result.Merged)
	if len(result.Unmatched) > 0 {
		body += fmt.Sprintf("\n%d without a matching parent.", len(result.Unmatched))
	}
	if len(result.Failed) > 0 {
		body += fmt.Sprintf("\n%d failed, see the log above.", len(result.Failed))
	}
	summary(out, "Summary", body)
	return nil
}

func init() {
	mergeCmd.Flags().String("child", "", "directory holding the PDFs to append")
	mergeCmd.Flags().String("parent", "", "directory holding the PDFs to append to")
	mergeCmd.Flags().Bool("backup", false, "copy each parent to <name>.bak before replacing it")

	viper.BindPFlag("merge.backup", mergeCmd.Flags().Lookup("backup"))

	rootCmd.AddCommand(mergeCmd)
}
