package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaushik1064/resume-build/internal/compiler"
	"github.com/kaushik1064/resume-build/internal/config"
	"github.com/kaushik1064/resume-build/internal/gateway"
	"github.com/kaushik1064/resume-build/internal/llm"
	"github.com/kaushik1064/resume-build/internal/observability"
	"github.com/kaushik1064/resume-build/internal/pipeline"
	"github.com/kaushik1064/resume-build/internal/tailoring"
	"github.com/kaushik1064/resume-build/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Tailor the resume against every job and compile one PDF per job",
	Long: `Runs the full tailoring session: normalize the resume, extract structured
data, analyze domain compatibility and section gaps, then tailor, render and
compile one PDF per job posting. Jobs fail independently; the session reports
a terminal result for every submitted job.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runTailorCmd,
}

var (
	runConfigPath string
	runResume     string
	runJobsFile   string
	runTemplate   string
	runOutputDir  string
	runAPIKey     string
	runReconcile  bool
	runStrength   string
	runVerbose    bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to resume text file")
	runCommand.Flags().StringVarP(&runJobsFile, "jobs", "j", "", "Path to JSON file with job postings")
	runCommand.Flags().StringVarP(&runTemplate, "template", "t", "", "Path to LaTeX template override")
	runCommand.Flags().StringVarP(&runOutputDir, "output", "o", "", "Directory for compiled PDFs (default ./output)")
	runCommand.Flags().BoolVar(&runReconcile, "reconcile", false, "Reframe content toward the job domain when a mismatch is detected")
	runCommand.Flags().StringVar(&runStrength, "strength", "", "Reframe strength: conservative, moderate or aggressive")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(runCommand)
}

func runTailorCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (or set 'resume' in the config file)")
	}
	if cfg.JobsFile == "" {
		return fmt.Errorf("--jobs is required (or set 'jobs' in the config file)")
	}

	resumeText, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	jobs, err := loadJobs(cfg.JobsFile)
	if err != nil {
		return err
	}

	var template string
	if cfg.Template != "" {
		data, err := os.ReadFile(cfg.Template)
		if err != nil {
			return fmt.Errorf("failed to read template file: %w", err)
		}
		template = string(data)
	}

	gen, cleanup, err := buildGateway(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	printer := observability.NewPrinter(os.Stdout)

	opts := []pipeline.Option{
		pipeline.WithCompiler(compiler.New(cfg.CompilerBinary, time.Duration(cfg.CompileTimeout)*time.Second)),
	}
	if cfg.Verbose {
		opts = append(opts, pipeline.WithProgress(func(job types.JobPosting, state types.JobState) {
			fmt.Fprintf(os.Stdout, "[%s] %s\n", state, job.DisplayName())
		}))
	}

	p := pipeline.New(gen, opts...)

	result, err := p.Run(ctx, pipeline.Request{
		ResumeText:       string(resumeText),
		Jobs:             jobs,
		ReconcileDomains: cfg.ReconcileDomains,
		Strength:         tailoring.ReframeStrength(cfg.Strength),
		Template:         template,
		OutputDir:        cfg.OutputDir,
	})
	if err != nil {
		return fmt.Errorf("tailoring session failed: %w", err)
	}

	if cfg.Verbose {
		printer.PrintProfile(result.Profile)
		printer.PrintDomainVerdicts(jobs, result.Verdicts)
		printer.PrintGapReport(result.GapReport)
	}
	printer.PrintArtifacts(result.Artifacts)

	if result.Succeeded() == 0 {
		return fmt.Errorf("no job produced a PDF")
	}
	return nil
}

// loadMergedConfig loads the optional config file, applies explicit CLI
// overrides, fills defaults and validates.
func loadMergedConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if runConfigPath != "" {
		loaded, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
		if runVerbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Only override when the flag was explicitly set.
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("jobs") {
		cfg.JobsFile = runJobsFile
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = runTemplate
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("reconcile") {
		cfg.ReconcileDomains = runReconcile
	}
	if cmd.Flags().Changed("strength") {
		cfg.Strength = runStrength
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		OutputDir: "output",
		Strength:  string(tailoring.StrengthModerate),
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// jobFile is the on-disk shape of one posting in the jobs JSON file.
type jobFile struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	SourceURL   string `json:"source_url"`
}

func loadJobs(path string) ([]types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}

	var entries []jobFile
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse jobs JSON: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("jobs file %s contains no postings", path)
	}

	jobs := make([]types.JobPosting, 0, len(entries))
	for _, e := range entries {
		jobs = append(jobs, types.NewJobPosting(e.Title, e.Company, e.Description, e.SourceURL))
	}
	return jobs, nil
}

// buildGateway wires the Gemini client into the generation gateway.
func buildGateway(ctx context.Context, cfg config.Config) (gateway.Generator, func(), error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("API key is required: pass --api-key or set GEMINI_API_KEY")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	opts := gateway.DefaultOptions()
	if cfg.MaxConcurrent > 0 {
		opts.MaxConcurrent = cfg.MaxConcurrent
	}
	if cfg.CallTimeout > 0 {
		opts.CallTimeout = time.Duration(cfg.CallTimeout) * time.Second
	}

	return gateway.New(client, opts), func() { _ = client.Close() }, nil
}
