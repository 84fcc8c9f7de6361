package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"datasentry/domain/core"
	"datasentry/domain/quality"
	"datasentry/internal"
	"datasentry/internal/config"
	"datasentry/internal/container"
	"datasentry/internal/dataset"
	"datasentry/internal/export"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	groundTruth string
	useAI       bool
	logLevel    string
	datasetType string
}

func main() {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "datasentry-cli",
		Short: "DataSentry CLI for auditing CSV and XLSX business records",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.groundTruth, "ground-truth", "", "CSV of job titles with their functions")
	rootCmd.PersistentFlags().BoolVar(&flags.useAI, "ai", false, "use the configured LLM providers for classification")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "WARN", "ERROR, WARN, INFO, DEBUG or TRACE")
	rootCmd.PersistentFlags().StringVar(&flags.datasetType, "type", "auto", "dataset type: auto, companies or people")

	rootCmd.AddCommand(
		newAnalyzeCmd(flags),
		newReportCmd(flags),
		newExportCmd(flags),
		newInsightsCmd(flags),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session is one file loaded into an in-memory container and analyzed
type session struct {
	container *container.Container
	id        core.ID
	result    *quality.AnalysisResult
}

func openSession(ctx context.Context, flags *globalFlags, path string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	cfg.Database.URL = ""
	cfg.AI.Enabled = flags.useAI
	if flags.groundTruth != "" {
		cfg.Analysis.GroundTruthPath = flags.groundTruth
	}

	logger := internal.NewLogger(internal.ParseLogLevel(flags.logLevel))
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	ds, err := dataset.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.DatasetRepo.Create(ctx, ds); err != nil {
		return nil, err
	}

	result, err := c.QualityService.Analyze(ctx, ds.ID, quality.ParseDatasetType(flags.datasetType))
	if err != nil {
		return nil, err
	}
	return &session{container: c, id: ds.ID, result: result}, nil
}

func newAnalyzeCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a file and print its quality summary",
		Long: `Analyze a CSV or XLSX file and print the quality score with its issue counts.

Example: datasentry-cli analyze contacts.csv --type people --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			defer s.container.Close()

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, s.result)
			}

			r := s.result
			fmt.Fprintf(out, "File:          %s\n", r.FileName)
			fmt.Fprintf(out, "Type:          %s\n", r.DatasetType)
			fmt.Fprintf(out, "Quality score: %d/100 (%s)\n", r.QualityScore, export.HealthStatus(r.QualityScore))
			fmt.Fprintf(out, "Records:       %d\n", r.TotalRecords)
			fmt.Fprintf(out, "Issues:        %d\n", r.IssuesCount)
			fmt.Fprintf(out, "Corrections:   %d\n", r.TotalCorrections)
			fmt.Fprintf(out, "Duplicates:    %d\n", r.Duplicates)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full analysis result as JSON")
	return cmd
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Render the diagnostic QA report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportFormat, err := export.ParseReportFormat(format)
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			defer s.container.Close()

			report, err := s.container.QualityService.Report(cmd.Context(), s.id)
			if err != nil {
				return err
			}
			content, _, _ := report.Render(reportFormat)
			return writeOutput(cmd.OutOrStdout(), outPath, []byte(content))
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "text, markdown or html")
	cmd.Flags().StringVar(&outPath, "out", "", "write to a file instead of stdout")
	return cmd
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	var format, outPath string
	var preview bool

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the cleaned table",
		Long: `Export the cleaned table with job_function, confidence_score and issues_detected columns.

Example: datasentry-cli export contacts.csv --format xlsx --out cleaned.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if exportFormat == export.FormatXLSX && outPath == "" {
				return fmt.Errorf("xlsx export needs --out")
			}

			s, err := openSession(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			defer s.container.Close()

			out, err := s.container.QualityService.Export(cmd.Context(), s.id, export.Options{Format: exportFormat, Preview: preview})
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), outPath, out.Data); err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", out.Rows, outPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv, json or xlsx")
	cmd.Flags().StringVar(&outPath, "out", "", "write to a file instead of stdout")
	cmd.Flags().BoolVar(&preview, "preview", false, "limit the export to the first rows")
	return cmd
}

func newInsightsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "insights [file]",
		Short: "Print a business reading of the analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), flags, args[0])
			if err != nil {
				return err
			}
			defer s.container.Close()

			insights, err := s.container.QualityService.Insights(cmd.Context(), s.id)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), insights)
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
