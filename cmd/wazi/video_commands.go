package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wazihub/wazi-go/internal/models"
)

func newVideosCommand(app func() *appContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Browse and interact with videos",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.stores.Videos.FetchVideos(cmd.Context()); err != nil {
				return err
			}
			for _, v := range a.stores.Videos.Videos() {
				marker := " "
				if v.IsBookmarked {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  likes=%d views=%d comments=%d\n",
					marker, v.ID, v.Title, v.Likes, v.Views, len(v.Comments))
			}
			return nil
		},
	}

	like := &cobra.Command{
		Use:   "like <video-id>",
		Short: "Like a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().stores.Videos.LikeVideo(cmd.Context(), args[0])
		},
	}

	comment := &cobra.Command{
		Use:   "comment <video-id> <text>",
		Short: "Comment on a video",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().stores.Videos.AddComment(cmd.Context(), args[0], strings.Join(args[1:], " "))
		},
	}

	bookmark := &cobra.Command{
		Use:   "bookmark <video-id>",
		Short: "Bookmark a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app().stores.Videos.BookmarkVideo(cmd.Context(), args[0])
		},
	}

	var title string
	upload := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read video file: %w", err)
			}
			if title == "" {
				title = filepath.Base(args[0])
			}
			file := models.FileUpload{Name: filepath.Base(args[0]), Data: data}
			return app().stores.Videos.UploadVideo(cmd.Context(), file, title)
		},
	}
	upload.Flags().StringVar(&title, "title", "", "video title")

	cmd.AddCommand(list, like, comment, bookmark, upload)
	return cmd
}
