package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type healthView struct {
	Status           string `json:"status"`
	OpenAIConfigured bool   `json:"openaiConfigured"`
	OpenAIKeyValid   bool   `json:"openaiKeyValid"`
	BlobConfigured   bool   `json:"blobConfigured"`
	Features         struct {
		Transcription   bool `json:"transcription"`
		AITranslation   bool `json:"aiTranslation"`
		FreeTranslation bool `json:"freeTranslation"`
		Uploads         bool `json:"uploads"`
	} `json:"features"`
	UploadCount int    `json:"uploadCount"`
	Version     string `json:"version"`
}

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show daemon health and feature availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(ctx.serverURL())
			var view healthView
			if err := client.getJSON(cmd.Context(), "/api/health", &view); err != nil {
				return err
			}

			rows := [][]string{
				{"status", view.Status},
				{"version", view.Version},
				{"openai configured", yesNo(view.OpenAIConfigured)},
				{"openai key valid", yesNo(view.OpenAIKeyValid)},
				{"blob configured", yesNo(view.BlobConfigured)},
				{"transcription", yesNo(view.Features.Transcription)},
				{"ai translation", yesNo(view.Features.AITranslation)},
				{"free translation", yesNo(view.Features.FreeTranslation)},
				{"uploads", yesNo(view.Features.Uploads)},
				{"upload count", fmt.Sprintf("%d", view.UploadCount)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Value"}, rows))
			return nil
		},
	}
}
