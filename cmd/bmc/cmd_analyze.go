package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Roman01-info/bmc-v3/internal/analysis"
	"github.com/Roman01-info/bmc-v3/internal/canvas"
	"github.com/Roman01-info/bmc-v3/internal/export"
	"github.com/Roman01-info/bmc-v3/internal/history"
)

var (
	analyzeOutput string
	analyzeJSON   bool
	analyzeNoSave bool
)

// analysisDocument pairs the canvas input with its generated report. The
// export command consumes this envelope.
type analysisDocument struct {
	Data   canvas.CanvasData     `json:"data"`
	Result canvas.AnalysisResult `json:"result"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [canvas.json]",
	Short: "Analyze a canvas file and print the report",
	Long: `Reads a Business Model Canvas from a JSON file, runs the AI analysis
and prints the report as Markdown.

The canvas file uses the nine block names as keys:

  {"valuePropositions": "...", "customerSegments": "...", ...}

Use --output to save the full analysis as JSON for later export.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the analysis JSON to this file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw analysis JSON instead of Markdown")
	analyzeCmd.Flags().BoolVar(&analyzeNoSave, "no-save", false, "Do not record the canvas in history")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := readCanvasFile(args[0])
	if err != nil {
		return err
	}
	if !data.NonEmpty() {
		return fmt.Errorf("canvas file %s has no filled blocks", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Gemini.Timeout)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	if !analyzeNoSave {
		store, err := history.NewStore(cfg.HistoryDBPath(), logger)
		if err != nil {
			logger.Warn("history store unavailable", zap.Error(err))
		} else {
			store.Append(store.Load(), data)
			_ = store.Close()
		}
	}

	client := analysis.NewClient(cfg.Gemini, logger)
	an := analysis.NewAnalyzer(client, logger)

	result, err := an.Analyze(ctx, data)
	if err != nil {
		return err
	}

	doc := analysisDocument{Data: data, Result: *result}
	if analyzeOutput != "" {
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode analysis: %w", err)
		}
		if err := os.WriteFile(analyzeOutput, raw, 0o644); err != nil {
			return fmt.Errorf("write analysis: %w", err)
		}
		fmt.Printf("Analysis saved to %s\n", analyzeOutput)
	}

	if analyzeJSON {
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode analysis: %w", err)
		}
		fmt.Println(string(raw))
		return nil
	}

	printMarkdown(export.RenderMarkdown(data, *result, false))
	return nil
}

// printMarkdown renders through glamour when stdout is a terminal and falls
// back to the raw markdown when piped.
func printMarkdown(md string) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err == nil {
			if out, err := renderer.Render(md); err == nil {
				fmt.Print(out)
				return
			}
		}
	}
	fmt.Println(md)
}

func readCanvasFile(path string) (canvas.CanvasData, error) {
	var data canvas.CanvasData
	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("read canvas file: %w", err)
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("parse canvas file %s: %w", path, err)
	}
	return data, nil
}
