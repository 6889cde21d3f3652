package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"caption/internal/session"
)

// newExportCommand converts a saved segment JSON file (from `caption
// transcribe --json`) into an SRT file. Works offline, no daemon needed.
func newExportCommand() *cobra.Command {
	var outputFlag string
	var modeFlag string

	cmd := &cobra.Command{
		Use:         "export <segments.json>",
		Short:       "Convert saved segments to an SRT file",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			var segments []session.Segment
			if err := json.Unmarshal(data, &segments); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if len(segments) == 0 {
				return fmt.Errorf("%s contains no segments", args[0])
			}

			mode, err := session.ParseExportMode(modeFlag)
			if err != nil {
				return err
			}
			target := outputFlag
			if target == "" {
				target = "subtitles.srt"
			}
			if err := os.WriteFile(target, []byte(session.FormatSRT(segments, mode)), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", target, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d cues to %s\n", len(segments), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output SRT path")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "original", "SRT mode: original, translation, or bilingual")
	return cmd
}
