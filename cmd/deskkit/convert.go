// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/deskkit/internal/convert"
	"github.com/pdiddy/deskkit/internal/scan"
)

var convertCmd = &cobra.Command{
	Use:   "convert [dir]",
	Short: "Convert scanned images to single-page PDFs",
	Long: `Convert finds every image with the chosen extension in a directory,
cleans it up (grayscale, contrast, brightness, sharpening) and writes it as a
one-page PDF into an output subdirectory. Images that cannot be read or
written are reported and skipped.

The directory is prompted for when not given as an argument.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	ext := strings.TrimPrefix(cfg.Convert.Extension, ".")
	if err := convert.CheckFormat(ext); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	banner(out, "Image to PDF Converter", "Enhances scanned images and saves each one as a single-page PDF.")

	var given string
	if len(args) > 0 {
		given = args[0]
	}
	fsys := afero.NewOsFs()
	dir, err := directory(prompter(cmd), fsys, given, "Enter the directory path containing images: ")
	if err != nil {
		return err
	}

	files, err := scan.Find(fsys, dir, ext)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		warn(out, "No %s files found in %s", strings.ToUpper(ext), dir)
		return nil
	}
	info(out, "Found %d %s files.", len(files), strings.ToUpper(ext))

	outDir, created, err := convert.PrepareOutputDir(dir, cfg.Convert.OutputDir)
	if err != nil {
		return err
	}
	if created {
		logger.Info("created output directory", "path", outDir)
	}

	result := convert.New(convert.NewPDFPageWriter(), outDir, logger).ConvertBatch(files)

	body := fmt.Sprintf("Converted %d of %d images.", result.Converted, result.Total())
	if result.HasFailures() {
		body += fmt.Sprintf("\n%d failed, see the log above.", result.Failed)
	}
	body += "\nPDF files are saved in: " + filepath.Clean(outDir)
	summary(out, "Conversion complete!", body)
	return nil
}

func init() {
	convertCmd.Flags().String("ext", "png", "image extension to convert: png, jpg, jpeg, gif, bmp, tiff or webp")
	convertCmd.Flags().String("output-dir", "output", "output subdirectory created inside the input directory")

	viper.BindPFlag("convert.extension", convertCmd.Flags().Lookup("ext"))
	viper.BindPFlag("convert.output_dir", convertCmd.Flags().Lookup("output-dir"))

	rootCmd.AddCommand(convertCmd)
}
