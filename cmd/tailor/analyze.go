package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaushik1064/resume-build/internal/observability"
	"github.com/kaushik1064/resume-build/internal/pipeline"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Run the analyses without generating or compiling anything",
	Long: `Reports domain compatibility per job and the section gap report for the
resume, without tailoring content or invoking the LaTeX compiler. Useful for
previewing what a full run would flag.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeJobsFile   string
	analyzeAPIKey     string
	analyzeVerbose    bool
)

func init() {
	analyzeCommand.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file")
	analyzeCommand.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume text file")
	analyzeCommand.Flags().StringVarP(&analyzeJobsFile, "jobs", "j", "", "Path to JSON file with job postings (optional, skips domain analysis when omitted)")
	analyzeCommand.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	analyzeCommand.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed progress")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// The analyze command shares the run command's config surface; reuse its
	// merge path via the shared flag variables.
	runConfigPath = analyzeConfigPath
	runResume = analyzeResume
	runJobsFile = analyzeJobsFile
	runAPIKey = analyzeAPIKey
	runVerbose = analyzeVerbose

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (or set 'resume' in the config file)")
	}

	resumeText, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	gen, cleanup, err := buildGateway(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	p := pipeline.New(gen)
	printer := observability.NewPrinter(os.Stdout)

	report, err := p.AnalyzeSections(ctx, string(resumeText))
	if err != nil {
		return fmt.Errorf("section analysis failed: %w", err)
	}
	printer.PrintGapReport(report)

	if cfg.JobsFile == "" {
		return nil
	}

	jobs, err := loadJobs(cfg.JobsFile)
	if err != nil {
		return err
	}

	verdicts, anyMismatch, err := p.AnalyzeDomains(ctx, string(resumeText), jobs)
	if err != nil {
		return fmt.Errorf("domain analysis failed: %w", err)
	}
	printer.PrintDomainVerdicts(jobs, verdicts)

	if anyMismatch {
		fmt.Fprintln(os.Stdout, "Domain mismatch detected; consider running with --reconcile.")
	}
	return nil
}
