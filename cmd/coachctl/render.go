package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"careercoach-backend/internal/bootstrap"
	"careercoach-backend/internal/shared/config"
	"careercoach-backend/resume/model"
	"careercoach-backend/resume/render"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Print the template data a resume projects to",
	RunE:  runProject,
}

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Print the HTML document used in html render mode",
	RunE:  runHTML,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume to PDF through pdf.co and print the result URL",
	RunE:  runRender,
}

var (
	resumeFile    string
	renderTimeout time.Duration
)

func init() {
	for _, c := range []*cobra.Command{projectCmd, htmlCmd, renderCmd} {
		c.Flags().StringVar(&resumeFile, "resume", "", "Path to resume JSON")
	}
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 2*time.Minute, "Overall render deadline")

	rootCmd.AddCommand(projectCmd, htmlCmd, renderCmd)
}

func loadResume() (model.ResumeData, error) {
	var resume model.ResumeData
	if err := readJSON(resumeFile, &resume); err != nil {
		return model.ResumeData{}, err
	}
	return resume, resume.Validate()
}

func runProject(cmd *cobra.Command, _ []string) error {
	resume, err := loadResume()
	if err != nil {
		return err
	}
	return writeJSON(cmd, render.Project(resume))
}

func runHTML(cmd *cobra.Command, _ []string) error {
	resume, err := loadResume()
	if err != nil {
		return err
	}
	doc, err := render.HTML(resume)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
	return err
}

func runRender(cmd *cobra.Command, _ []string) error {
	resume, err := loadResume()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	url, err := bootstrap.NewRenderer(config.Load()).Render(ctx, resume)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
	return err
}
