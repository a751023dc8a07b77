package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Roman01-info/bmc-v3/internal/analysis"
	"github.com/Roman01-info/bmc-v3/internal/canvas"
	"github.com/Roman01-info/bmc-v3/internal/export"
	"github.com/Roman01-info/bmc-v3/internal/history"
)

var (
	exportFormat       string
	exportOutput       string
	exportIncludeInput bool
	exportHistoryID    string
)

var exportCmd = &cobra.Command{
	Use:   "export [analysis.json]",
	Short: "Export an analysis as md, html, docx or pdf",
	Long: `Converts an analysis file produced by "bmc analyze --output" into a
report document. With --history, re-analyzes a saved canvas instead of
reading a file.

DOCX export requires pandoc on the PATH; PDF export requires a Chromium
browser.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Output format: md, html, docx or pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: report name in current directory)")
	exportCmd.Flags().BoolVar(&exportIncludeInput, "include-input", false, "Prepend the canvas answers to the report")
	exportCmd.Flags().StringVar(&exportHistoryID, "history", "", "Re-analyze the saved plan with this id")
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := loadExportDocument(args)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	exporter := export.NewExporter(logger)
	res, err := exporter.Export(context.Background(), export.Request{
		Data:         doc.Data,
		Result:       doc.Result,
		Format:       format,
		IncludeInput: exportIncludeInput,
	})
	if err != nil {
		return err
	}

	out := exportOutput
	if out == "" {
		out = res.Filename
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Printf("Exported %s\n", out)
	return nil
}

func loadExportDocument(args []string) (analysisDocument, error) {
	var doc analysisDocument

	switch {
	case exportHistoryID != "" && len(args) > 0:
		return doc, fmt.Errorf("pass either an analysis file or --history, not both")

	case exportHistoryID != "":
		store, err := history.NewStore(cfg.HistoryDBPath(), logger)
		if err != nil {
			return doc, fmt.Errorf("open history store: %w", err)
		}
		defer store.Close()

		var data canvas.CanvasData
		found := false
		for _, item := range store.Load() {
			if item.ID == exportHistoryID {
				data = item.Data
				found = true
				break
			}
		}
		if !found {
			return doc, fmt.Errorf("no saved plan with id %s", exportHistoryID)
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Gemini.Timeout)
		defer cancel()

		client := analysis.NewClient(cfg.Gemini, logger)
		an := analysis.NewAnalyzer(client, logger)
		result, err := an.Analyze(ctx, data)
		if err != nil {
			return doc, err
		}
		return analysisDocument{Data: data, Result: *result}, nil

	case len(args) == 1:
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return doc, fmt.Errorf("read analysis file: %w", err)
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return doc, fmt.Errorf("parse analysis file %s: %w", args[0], err)
		}
		return doc, nil

	default:
		return doc, fmt.Errorf("pass an analysis file or --history <id>")
	}
}
