package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"careercoach-backend/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Print the text of a downloaded resume PDF or cover letter",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	mime := extract.MimeText
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		pages, err := extract.ValidatePDF(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d page(s)\n", filepath.Base(path), pages)
		mime = extract.MimePDF
	}

	text, err := extract.TextFromBytes(context.Background(), data, mime)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(text))
	return err
}
