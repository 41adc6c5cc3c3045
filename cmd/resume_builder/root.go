package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Cordxll/Resume-Builder/internal/config"
	"github.com/Cordxll/Resume-Builder/internal/fetch"
	"github.com/Cordxll/Resume-Builder/internal/llm"
	"github.com/Cordxll/Resume-Builder/internal/logger"
	"github.com/Cordxll/Resume-Builder/internal/rewriting"
)

// app carries what the root command resolves before any subcommand runs
type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "resume_builder",
		Short: "Tailor a resume to a job description",
		Long: `Resume Builder splits a resume into sections, extracts the requirements of a job
description and suggests section rewrites that emphasize matching experience.
Every suggestion can be accepted, rejected or overridden before export.

Settings come from environment variables (GEMINI_API_KEY, DATABASE_URL, SESSION_SECRET, ...),
an optional config file passed with --config, and built-in defaults.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to a YAML, JSON or TOML config file")
	flags.BoolP("verbose", "v", false, "Print debug logs and step summaries")
	flags.Bool("json-logs", false, "Write logs as JSON")

	rootCmd.AddCommand(
		newServeCmd(a),
		newSegmentCmd(a),
		newAnalyzeJobCmd(a),
		newTailorCmd(a),
		newExportCmd(a),
		newMigrateCmd(a),
	)
	return rootCmd
}

// setup resolves config and logger. Flags win over the environment and the config file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New()
	if err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	if err := v.BindPFlag("debug", flags.Lookup("verbose")); err != nil {
		return fmt.Errorf("failed to bind --verbose: %w", err)
	}
	if err := v.BindPFlag("log_json", flags.Lookup("json-logs")); err != nil {
		return fmt.Errorf("failed to bind --json-logs: %w", err)
	}

	cfg, err := config.FromViper(v, a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.log = log
	return nil
}

// rewriter returns the Gemini-backed rewriter, or nil when no API key is configured
func (a *app) rewriter(ctx context.Context, apiKeyFlag string) (rewriting.Rewriter, error) {
	apiKey := apiKeyFlag
	if apiKey == "" {
		apiKey = a.cfg.GeminiAPIKey
	}
	if apiKey == "" {
		a.log.Warn("GEMINI_API_KEY is not set, sections will keep their original content")
		return nil, nil
	}
	llmConfig := llm.DefaultConfig().WithModel(llm.TierAdvanced, a.cfg.GeminiModel)
	client, err := llm.NewClient(ctx, llmConfig, apiKey, rewriting.SystemPrompt())
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return rewriting.NewLLMRewriter(client), nil
}

// readInput reads a file path, or stdin when path is "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to the command's stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(cmd, path, append(data, '\n'))
}

// jobSource is where a command reads the job description from
type jobSource struct {
	path       string
	url        string
	useBrowser bool
}

func (j *jobSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&j.path, "job", "j", "", "Path to the job description, or - for stdin")
	cmd.Flags().StringVar(&j.url, "job-url", "", "URL of the job posting to fetch instead of --job")
	cmd.Flags().BoolVar(&j.useBrowser, "use-browser", false, "Render --job-url in headless Chrome when the page needs JavaScript")
	cmd.MarkFlagsMutuallyExclusive("job", "job-url")
	cmd.MarkFlagsOneRequired("job", "job-url")
}

// load returns the job description text
func (j *jobSource) load(cmd *cobra.Command, log *zap.Logger) (string, error) {
	if j.url == "" {
		text, _, err := loadDocument(cmd, j.path)
		return text, err
	}
	opts := &fetch.Options{Logger: log}
	if j.useBrowser {
		opts.Renderer = fetch.NewChromeRenderer(log)
	}
	posting, err := fetch.JobPosting(cmd.Context(), j.url, opts)
	if err != nil {
		return "", err
	}
	log.Debug("job posting fetched",
		zap.String("platform", string(posting.Platform)),
		zap.Bool("rendered", posting.Rendered),
		zap.Int("chars", len(posting.Text)))
	return posting.Text, nil
}
