package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alimgiray/gitaudit/internal/display"
	"github.com/alimgiray/gitaudit/internal/models"
	"github.com/alimgiray/gitaudit/internal/repositories"
	"github.com/alimgiray/gitaudit/internal/services"
	"github.com/alimgiray/gitaudit/pkg/config"
	"github.com/alimgiray/gitaudit/pkg/database"
	"github.com/alimgiray/gitaudit/pkg/logger"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func newApp() *cli.App {
	return &cli.App{
		Name:      "gitaudit",
		Usage:     "Score contributors of a git repository from its history",
		ArgsUsage: "[repository]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "repo",
				Aliases: []string{"r"},
				Usage:   "Local path, git URL or GitHub owner/repo to audit",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the evaluation to this file instead of stdout",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: csv or xlsx",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:  "sqlite",
				Usage: "Also store the evaluation in this SQLite database",
			},
			&cli.BoolFlag{
				Name:    "print",
				Aliases: []string{"p"},
				Usage:   "Print the analysis report",
			},
			&cli.StringFlag{
				Name:  "since",
				Usage: "Only count commits after this date",
			},
			&cli.StringFlag{
				Name:  "until",
				Usage: "Only count commits before this date",
			},
			&cli.StringSliceFlag{
				Name:  "ref",
				Usage: "Revisions to walk (default all refs)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude-folder",
				Usage: "Folder to leave out of the audit",
			},
			&cli.StringSliceFlag{
				Name:  "exclude-ext",
				Usage: "File extension to leave out of the audit",
			},
			&cli.BoolFlag{
				Name:  "include-merges",
				Usage: "Count merge commits in the commit and line totals",
			},
			&cli.BoolFlag{
				Name:    "fixed-thresholds",
				Usage:   "Use the fixed threshold table instead of calibrating from the team",
				EnvVars: []string{"GITAUDIT_FIXED_THRESHOLDS"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML scoring file with weights, aliases and exclusions",
				EnvVars: []string{"GITAUDIT_SCORING_FILE"},
			},
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "GitHub personal access token",
				EnvVars: []string{"GITAUDIT_GITHUB_TOKEN", "GITHUB_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress logs and progress output",
			},
		},
		Action:  runApp,
		Version: version,
	}
}

// auditRequest builds the request from the flags and the scoring file
func auditRequest(c *cli.Context, scoring *config.ScoringFile) models.AuditRequest {
	repo := c.String("repo")
	if c.NArg() > 0 {
		repo = c.Args().First()
	}

	return models.AuditRequest{
		Repository:         repo,
		Refs:               c.StringSlice("ref"),
		Since:              c.String("since"),
		Until:              c.String("until"),
		ExcludedFolders:    append(append([]string{}, scoring.ExcludedFolders...), c.StringSlice("exclude-folder")...),
		ExcludedExtensions: append(append([]string{}, scoring.ExcludedExtensions...), c.StringSlice("exclude-ext")...),
		IncludeMerges:      c.Bool("include-merges"),
		FixedThresholds:    c.Bool("fixed-thresholds"),
	}
}

func runApp(c *cli.Context) error {
	quiet := c.Bool("quiet")
	logger.Init(c.String("log-level"), "text")
	if quiet {
		logger.SetOutput(io.Discard)
	}

	format := c.String("format")
	if format != "csv" && format != "xlsx" {
		return cli.Exit(fmt.Sprintf("unsupported format %q", format), 2)
	}
	if format == "xlsx" && c.String("output") == "" {
		return cli.Exit("xlsx output needs --output", 2)
	}

	scoring, err := config.LoadScoringFile(c.String("config"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	request := auditRequest(c, scoring)
	if err := request.Validate(); err != nil {
		return cli.Exit(err.Error(), 2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := services.NewExecGitRunner()
	clone := services.NewCloneService(runner, services.NewGitHubRepositoryService(c.String("token")), cloneDir())
	executor := services.NewAuditExecutor(clone, runner, scoring.Settings, scoring.Aliases)

	var observer services.PassObserver
	var progress *display.PassProgress
	if !quiet {
		progress = display.NewPassProgress(os.Stderr)
		observer = progress
	}

	result, err := executor.Execute(ctx, request, observer)
	if progress != nil {
		_ = progress.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		var gitErr *services.GitCommandError
		if errors.As(err, &gitErr) {
			return cli.Exit(fmt.Sprintf("git failed: %v", gitErr), 1)
		}
		return cli.Exit(err.Error(), 1)
	}

	if err := writeResult(c, result); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if !quiet {
		color.New(color.FgGreen).Fprintf(os.Stderr, "Evaluated %d authors\n", len(result.Rows))
	}
	return nil
}

func writeResult(c *cli.Context, result *models.AuditResult) error {
	var repo *repositories.EvaluationRepository
	if path := c.String("sqlite"); path != "" {
		db, err := database.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = repositories.NewEvaluationRepository(db)
	}
	export := services.NewExportService(repo)

	if repo != nil {
		if err := export.SaveSQLite(result); err != nil {
			return err
		}
	}

	output := c.String("output")
	switch {
	case c.String("format") == "xlsx":
		if err := export.SaveXLSX(output, result); err != nil {
			return err
		}
	case output != "":
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		if err := export.WriteCSV(f, result.Rows); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case !c.Bool("print") && repo == nil:
		if err := export.WriteCSV(c.App.Writer, result.Rows); err != nil {
			return err
		}
	}

	if c.Bool("print") {
		display.NewReport(c.App.Writer).Print(result)
	}
	return nil
}

func main() {
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cloneDir() string {
	if config.AppConfig == nil {
		return ""
	}
	return config.AppConfig.Audit.CloneDir
}
