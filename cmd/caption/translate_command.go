package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"caption/internal/session"
)

type translateBatchView struct {
	Success bool `json:"success"`
	Results []struct {
		Index               int      `json:"index"`
		Success             bool     `json:"success"`
		TranslatedText      string   `json:"translatedText"`
		Confidence          float64  `json:"confidence"`
		CulturalAdaptations []string `json:"culturalAdaptations"`
	} `json:"results"`
	Errors []struct {
		Index int    `json:"index"`
		Error string `json:"error"`
	} `json:"errors"`
	TotalProcessed   int    `json:"totalProcessed"`
	SuccessCount     int    `json:"successCount"`
	ErrorCount       int    `json:"errorCount"`
	ProcessingTimeMs int64  `json:"processingTimeMs"`
	Provider         string `json:"provider"`
}

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var sourceFlag string
	var targetFlag string
	var providerFlag string
	var outputFlag string
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "translate <srt-file>",
		Short: "Translate an existing SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(targetFlag) == "" {
				return fmt.Errorf("--target is required")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			segments, err := session.ParseSRT(string(data))
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if len(segments) == 0 {
				return fmt.Errorf("%s contains no subtitle cues", args[0])
			}

			texts := make([]string, len(segments))
			for i, segment := range segments {
				texts[i] = segment.Text
			}

			client := newAPIClient(ctx.serverURL())
			payload := map[string]any{
				"texts":          texts,
				"sourceLanguage": sourceFlag,
				"targetLanguage": targetFlag,
				"provider":       providerFlag,
			}
			var view translateBatchView
			if err := client.sendJSON(cmd.Context(), "PUT", "/api/translate", payload, &view); err != nil {
				return err
			}

			for _, result := range view.Results {
				if result.Index >= 0 && result.Index < len(segments) {
					segments[result.Index].Translation = result.TranslatedText
					segments[result.Index].TranslationConfidence = result.Confidence
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Translated %d/%d segments in %dms via %s\n",
				view.SuccessCount, view.TotalProcessed, view.ProcessingTimeMs, view.Provider)
			for _, failure := range view.Errors {
				fmt.Fprintf(out, "  segment %d failed: %s\n", failure.Index, failure.Error)
			}

			mode, err := session.ParseExportMode(modeFlag)
			if err != nil {
				return err
			}
			target := outputFlag
			if target == "" {
				target = strings.TrimSuffix(args[0], ".srt") + "." + targetFlag + ".srt"
			}
			if err := os.WriteFile(target, []byte(session.FormatSRT(segments, mode)), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			fmt.Fprintf(out, "Wrote subtitles to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceFlag, "source", "s", "auto", "Source language code")
	cmd.Flags().StringVarP(&targetFlag, "target", "t", "", "Target language code")
	cmd.Flags().StringVarP(&providerFlag, "provider", "p", "chatgpt", "Translation provider: chatgpt or mymemory")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output SRT path (defaults next to the input)")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "translation", "SRT mode: original, translation, or bilingual")
	return cmd
}
