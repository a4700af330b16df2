package client

import (
	"context"
	"net/http"

	"github.com/wazihub/wazi-go/internal/models"
)

// GetAllVideos is a public read; no auth header is attached.
func (c *Client) GetAllVideos(ctx context.Context) ([]models.Video, error) {
	var out []models.Video
	if err := c.do(ctx, http.MethodGet, "/videos", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) LikeVideo(ctx context.Context, videoID string) (*models.Video, error) {
	var out models.Video
	if err := c.do(ctx, http.MethodPost, "/videos/"+videoID+"/like", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddComment(ctx context.Context, videoID, text string) (*models.Comment, error) {
	var out models.Comment
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/videos/"+videoID+"/comments", body, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) BookmarkVideo(ctx context.Context, videoID string) (*models.Video, error) {
	var out models.Video
	if err := c.do(ctx, http.MethodPost, "/videos/"+videoID+"/bookmark", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UploadVideo(ctx context.Context, file models.FileUpload, title, userID string) (*models.Video, error) {
	var out models.Video
	part := &FilePart{Name: file.Name, Data: file.Data}
	fields := map[string]string{"title": title, "userId": userID}
	if err := c.upload(ctx, "/videos/upload", part, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
