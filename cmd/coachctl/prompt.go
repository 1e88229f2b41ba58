package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"careercoach-backend/internal/coverletters"
	"careercoach-backend/internal/jobs"
	"careercoach-backend/internal/llm"
	"careercoach-backend/resume/model"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt sent to the language model",
}

var coverLetterPromptCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Compose a cover letter prompt from a request JSON file",
	RunE:  runCoverLetterPrompt,
}

var optimizePromptCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Compose a resume optimization prompt",
	RunE:  runOptimizePrompt,
}

var (
	promptRequestFile string
	promptResumeFile  string
	promptJobFile     string
	promptToday       string
)

func init() {
	coverLetterPromptCmd.Flags().StringVarP(&promptRequestFile, "in", "i", "", "Path to cover letter request JSON ({job, profile, learningSkills})")
	coverLetterPromptCmd.Flags().StringVar(&promptToday, "today", "", "Date to stamp on the letter (YYYY-MM-DD, default today)")

	optimizePromptCmd.Flags().StringVar(&promptResumeFile, "resume", "", "Path to resume JSON")
	optimizePromptCmd.Flags().StringVar(&promptJobFile, "job", "", "Path to job posting JSON")

	promptCmd.AddCommand(coverLetterPromptCmd, optimizePromptCmd)
	rootCmd.AddCommand(promptCmd)
}

func runCoverLetterPrompt(cmd *cobra.Command, _ []string) error {
	var req coverletters.Request
	if err := readJSON(promptRequestFile, &req); err != nil {
		return err
	}
	if err := req.Job.Validate(); err != nil {
		return err
	}
	if err := req.Profile.Validate(); err != nil {
		return err
	}

	today := time.Now()
	if promptToday != "" {
		parsed, err := time.Parse(time.DateOnly, promptToday)
		if err != nil {
			return fmt.Errorf("invalid --today: %w", err)
		}
		today = parsed
	}

	partition := jobs.PartitionSkills(req.Job.Requirements, req.Profile.Skills, req.LearningSkills)
	_, err := fmt.Fprintln(cmd.OutOrStdout(), llm.ComposeCoverLetterPrompt(coverletters.BuildParams(req, partition, today)))
	return err
}

func runOptimizePrompt(cmd *cobra.Command, _ []string) error {
	var resume model.ResumeData
	if err := readJSON(promptResumeFile, &resume); err != nil {
		return err
	}
	var job jobs.JobPosting
	if err := readJSON(promptJobFile, &job); err != nil {
		return err
	}
	if err := resume.Validate(); err != nil {
		return err
	}
	if err := job.Validate(); err != nil {
		return err
	}

	prompt := llm.ComposeResumeOptimizationPrompt(llm.ResumeOptimizationParams{
		Resume:          resume,
		JobTitle:        job.Title,
		Company:         job.Company,
		Requirements:    job.Requirements,
		EmphasizeSkills: jobs.PartitionSkills(job.Requirements, resume.Skills, nil).UserHas,
	})
	_, err := fmt.Fprintln(cmd.OutOrStdout(), prompt)
	return err
}
