package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type uploadsView struct {
	Uploads []struct {
		ID          int64  `json:"id"`
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
		SizeBytes   int64  `json:"sizeBytes"`
		URL         string `json:"url"`
		CreatedAt   string `json:"createdAt"`
	} `json:"uploads"`
	Count int `json:"count"`
}

func newUploadsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "uploads",
		Short: "List files registered with the daemon's blob storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient(ctx.serverURL())
			var view uploadsView
			if err := client.getJSON(cmd.Context(), "/api/uploads", &view); err != nil {
				return err
			}

			if view.Count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No uploads recorded.")
				return nil
			}
			rows := make([][]string, 0, len(view.Uploads))
			for _, rec := range view.Uploads {
				rows = append(rows, []string{
					fmt.Sprintf("%d", rec.ID),
					rec.Filename,
					rec.ContentType,
					formatBytes(rec.SizeBytes),
					rec.CreatedAt,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Filename", "Type", "Size", "Created"}, rows, 0, 3))
			return nil
		},
	}
}
