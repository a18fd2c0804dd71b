// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/deskkit/internal/prompt"
	"github.com/pdiddy/deskkit/internal/scan"
)

// prompter returns the interactive input source for cmd, honoring --plain.
// A command builds it once and passes it to every question it asks, since
// the line prompter buffers its input.
func prompter(cmd *cobra.Command) prompt.Prompter {
	plain, _ := cmd.Flags().GetBool("plain")
	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	inFile, inOK := in.(*os.File)
	outFile, outOK := out.(*os.File)
	if inOK && outOK {
		return prompt.Detect(inFile, outFile, plain)
	}
	return prompt.NewLinePrompter(in, out)
}

// directory returns given when set, validated once, or asks p with label
// until the user enters an existing directory.
func directory(p prompt.Prompter, fsys afero.Fs, given, label string) (string, error) {
	if given != "" {
		if err := scan.ValidateDir(fsys, given); err != nil {
			return "", err
		}
		return given, nil
	}
	return prompt.AskDirectory(p, fsys, label)
}
