package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vraghavans1/auto-ppt-generator/analysis"
	"github.com/vraghavans1/auto-ppt-generator/config"
	"github.com/vraghavans1/auto-ppt-generator/export"
	"github.com/vraghavans1/auto-ppt-generator/logger"
	"github.com/vraghavans1/auto-ppt-generator/metrics"
)

var (
	configPath string
	verbose    bool
)

// services holds the wired analysis and export stack for one command run.
type services struct {
	cfg       config.Config
	log       *logger.Logger
	analyzer  *analysis.Analyzer
	generator *export.Generator
}

func newServices() (*services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.NewLogger()
	log.SetLevel(cfg.LogLevel)
	if verbose {
		log.SetLevel("debug")
	}
	if cfg.LogDir != "" {
		if err := log.Init(cfg.LogDir); err != nil {
			return nil, err
		}
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	media := analysis.NewMediaExtractor(cfg.ImagesDir(), log)
	analyzer := analysis.NewAnalyzer(media, log, m)
	return &services{
		cfg:       cfg,
		log:       log,
		analyzer:  analyzer,
		generator: export.NewGenerator(cfg, analyzer, log, m),
	}, nil
}

var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "Generate presentations styled after a template",
	Long: `deckgen analyzes presentation templates and renders slide outlines into
new decks that reuse the template's colors, fonts and images.

Commands:
  analyze <template.pptx>          Print the template analysis as JSON
  generate <content.json>          Render an outline, print the output path
  cleanup <id-prefix>              Remove extracted template images

Config: JSON file via --config, overridden by DECKGEN_* environment variables.`,
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <template.pptx>",
	Short: "Print the analysis of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices()
		if err != nil {
			return err
		}
		defer svc.log.Close()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read template: %w", err)
		}
		result := svc.analyzer.Analyze(data, filepath.Base(args[0]))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate <content.json>",
	Short: "Render a content outline into a presentation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices()
		if err != nil {
			return err
		}
		defer svc.log.Close()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read content: %w", err)
		}
		content, err := export.ParseContent(raw)
		if err != nil {
			return err
		}

		opts := export.DefaultOptions()
		notes, _ := cmd.Flags().GetString("notes")
		opts.GenerateNotes = export.NotesMode(notes)
		opts.ReuseImages, _ = cmd.Flags().GetBool("reuse-images")
		opts.PreserveLayouts, _ = cmd.Flags().GetBool("preserve-layouts")
		opts.MatchFonts, _ = cmd.Flags().GetBool("match-fonts")

		var template []byte
		var templateName string
		if path, _ := cmd.Flags().GetString("template"); path != "" {
			template, err = os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}
			templateName = filepath.Base(path)
		}

		out, err := svc.generator.Generate(content, template, templateName, opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup <id-prefix>",
	Short: "Remove extracted images whose names start with a prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newServices()
		if err != nil {
			return err
		}
		defer svc.log.Close()

		removed, err := svc.analyzer.Media().Cleanup(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d files\n", removed)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	generateCmd.Flags().StringP("template", "t", "", "template .pptx to match")
	generateCmd.Flags().String("notes", string(export.NotesAuto), "speaker notes mode: auto, detailed, brief or none")
	generateCmd.Flags().Bool("reuse-images", true, "accepted for compatibility; currently has no effect")
	generateCmd.Flags().Bool("preserve-layouts", true, "accepted for compatibility; currently has no effect")
	generateCmd.Flags().Bool("match-fonts", true, "accepted for compatibility; currently has no effect")

	rootCmd.AddCommand(analyzeCmd, generateCmd, cleanupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
