package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"caption/internal/session"
)

type transcribeView struct {
	Success               bool              `json:"success"`
	Segments              []session.Segment `json:"segments"`
	Duration              float64           `json:"duration"`
	Language              string            `json:"language"`
	SegmentCount          int               `json:"segmentCount"`
	ProcessingTimeSeconds float64           `json:"processingTimeSeconds"`
	FileSizeMB            float64           `json:"fileSizeMB"`
}

type uploadView struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
	Filename string `json:"filename"`
}

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var targetFlag string
	var outputFlag string
	var jsonFlag string
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "transcribe <media-file>",
		Short: "Transcribe a media file into subtitle segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			mediaPath := args[0]
			info, err := os.Stat(mediaPath)
			if err != nil {
				return fmt.Errorf("stat %s: %w", mediaPath, err)
			}

			client := newAPIClient(ctx.serverURL())
			var view transcribeView

			// Files over the inline threshold go through blob storage first
			// so the transcribe request body stays small.
			if info.Size() > cfg.Upload.InlineThresholdMiB<<20 && cfg.Blob.Configured() {
				var uploaded uploadView
				if err := client.sendFile(cmd.Context(), "/api/upload", mediaPath, nil, &uploaded); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%s)\n", uploaded.Filename, formatBytes(uploaded.Size))
				payload := map[string]string{
					"blobUrl":        uploaded.URL,
					"language":       languageFlag,
					"targetLanguage": targetFlag,
				}
				if err := client.sendJSON(cmd.Context(), "POST", "/api/transcribe", payload, &view); err != nil {
					return err
				}
			} else {
				fields := map[string]string{
					"language":       languageFlag,
					"targetLanguage": targetFlag,
				}
				if err := client.sendFile(cmd.Context(), "/api/transcribe", mediaPath, fields, &view); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Transcribed %d segments in %.1fs (language %s, %.1f MB)\n",
				view.SegmentCount, view.ProcessingTimeSeconds, view.Language, view.FileSizeMB)

			if jsonFlag != "" {
				encoded, err := json.MarshalIndent(view.Segments, "", "  ")
				if err != nil {
					return fmt.Errorf("encode segments: %w", err)
				}
				if err := os.WriteFile(jsonFlag, append(encoded, '\n'), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", jsonFlag, err)
				}
				fmt.Fprintf(out, "Wrote segment JSON to %s\n", jsonFlag)
			}

			if outputFlag != "" {
				mode, err := session.ParseExportMode(modeFlag)
				if err != nil {
					return err
				}
				content := session.FormatSRT(view.Segments, mode)
				if err := os.WriteFile(outputFlag, []byte(content), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outputFlag, err)
				}
				fmt.Fprintf(out, "Wrote subtitles to %s\n", outputFlag)
			}

			if jsonFlag == "" && outputFlag == "" {
				for _, segment := range view.Segments {
					line := segment.Text
					if strings.TrimSpace(segment.Translation) != "" {
						line += " / " + segment.Translation
					}
					fmt.Fprintf(out, "[%s --> %s] %s\n",
						session.FormatSRTTimestamp(segment.StartTime),
						session.FormatSRTTimestamp(segment.EndTime),
						line)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Source language hint (e.g. en); empty means auto-detect")
	cmd.Flags().StringVarP(&targetFlag, "target", "t", "", "Translate each segment into this language")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write an SRT file to this path")
	cmd.Flags().StringVar(&jsonFlag, "json", "", "Write the raw segment list as JSON to this path")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "original", "SRT mode: original, translation, or bilingual")
	return cmd
}
