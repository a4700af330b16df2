package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wazihub/wazi-go/internal/models"
)

// VideoAPI is the slice of the remote client the video store uses.
type VideoAPI interface {
	GetAllVideos(ctx context.Context) ([]models.Video, error)
	LikeVideo(ctx context.Context, videoID string) (*models.Video, error)
	AddComment(ctx context.Context, videoID, text string) (*models.Comment, error)
	BookmarkVideo(ctx context.Context, videoID string) (*models.Video, error)
	UploadVideo(ctx context.Context, file models.FileUpload, title, userID string) (*models.Video, error)
}

// VideoStore owns the video feed and the playback slot. Likes and bookmarks
// are pessimistic: the displayed value is always the server's.
type VideoStore struct {
	observable

	stateMu       sync.RWMutex
	videos        []models.Video
	loading       bool
	fetchSeq      uint64
	currentSource string
	current       *models.Video

	api     VideoAPI
	session UserSource
	log     *slog.Logger
}

func NewVideoStore(api VideoAPI, session UserSource, log *slog.Logger) *VideoStore {
	return &VideoStore{api: api, session: session, log: log}
}

// SetCurrentVideo stages a video for playback, independent of the feed.
func (s *VideoStore) SetCurrentVideo(source string, video *models.Video) {
	s.stateMu.Lock()
	s.currentSource = source
	if video != nil {
		v := *video
		s.current = &v
	} else {
		s.current = nil
	}
	s.stateMu.Unlock()
	s.notify()
}

// CurrentVideo returns the playback slot: source URI and entity snapshot.
func (s *VideoStore) CurrentVideo() (string, *models.Video) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.current == nil {
		return s.currentSource, nil
	}
	v := *s.current
	return s.currentSource, &v
}

// FetchVideos replaces the feed. The listing is public; no user is required.
func (s *VideoStore) FetchVideos(ctx context.Context) error {
	seq := s.beginFetch()
	defer s.setLoading(false)

	list, err := s.api.GetAllVideos(ctx)
	if err != nil {
		return fmt.Errorf("fetch videos: %w", err)
	}
	for i := range list {
		if list[i].Comments == nil {
			list[i].Comments = []models.Comment{}
		}
	}

	s.stateMu.Lock()
	if seq != s.fetchSeq {
		s.stateMu.Unlock()
		s.log.Debug("discarding stale video fetch", "seq", seq)
		return nil
	}
	s.videos = list
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// LikeVideo records a like and reconciles only the affected counter with the
// server's returned value.
func (s *VideoStore) LikeVideo(ctx context.Context, videoID string) error {
	updated, err := s.api.LikeVideo(ctx, videoID)
	if err != nil {
		return fmt.Errorf("like video: %w", err)
	}

	s.stateMu.Lock()
	idx := s.indexOf(videoID)
	if idx < 0 {
		s.stateMu.Unlock()
		s.log.Warn("video not found, like dropped", "video_id", videoID)
		return nil
	}
	s.videos[idx].Likes = updated.Likes
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// AddComment appends the server's stored comment to its video.
func (s *VideoStore) AddComment(ctx context.Context, videoID, text string) error {
	created, err := s.api.AddComment(ctx, videoID, text)
	if err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	comment := *created
	comment.VideoID = videoID

	s.stateMu.Lock()
	idx := s.indexOf(videoID)
	if idx < 0 {
		s.stateMu.Unlock()
		s.log.Warn("video not found, comment dropped", "video_id", videoID)
		return nil
	}
	s.videos[idx].Comments = append(s.videos[idx].Comments, comment)
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// BookmarkVideo reconciles the bookmark flag with the server's returned value.
func (s *VideoStore) BookmarkVideo(ctx context.Context, videoID string) error {
	updated, err := s.api.BookmarkVideo(ctx, videoID)
	if err != nil {
		return fmt.Errorf("bookmark video: %w", err)
	}

	s.stateMu.Lock()
	idx := s.indexOf(videoID)
	if idx < 0 {
		s.stateMu.Unlock()
		s.log.Warn("video not found, bookmark dropped", "video_id", videoID)
		return nil
	}
	s.videos[idx].IsBookmarked = updated.IsBookmarked
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// UploadVideo pushes a new video and prepends the stored record to the feed.
func (s *VideoStore) UploadVideo(ctx context.Context, file models.FileUpload, title string) error {
	user := s.session.User()
	if user == nil {
		return errNotLoggedIn("upload a video")
	}

	s.setLoading(true)
	defer s.setLoading(false)

	created, err := s.api.UploadVideo(ctx, file, title, user.ID)
	if err != nil {
		return fmt.Errorf("upload video: %w", err)
	}
	v := *created
	if v.Comments == nil {
		v.Comments = []models.Comment{}
	}

	s.stateMu.Lock()
	s.videos = append([]models.Video{v}, s.videos...)
	s.stateMu.Unlock()
	s.notify()
	return nil
}

// Videos returns a snapshot of the feed.
func (s *VideoStore) Videos() []models.Video {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return append([]models.Video(nil), s.videos...)
}

func (s *VideoStore) Loading() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.loading
}

// indexOf must be called with stateMu held.
func (s *VideoStore) indexOf(videoID string) int {
	for i := range s.videos {
		if s.videos[i].ID == videoID {
			return i
		}
	}
	return -1
}

func (s *VideoStore) beginFetch() uint64 {
	s.stateMu.Lock()
	s.loading = true
	s.fetchSeq++
	seq := s.fetchSeq
	s.stateMu.Unlock()
	s.notify()
	return seq
}

func (s *VideoStore) setLoading(v bool) {
	s.stateMu.Lock()
	s.loading = v
	s.stateMu.Unlock()
	s.notify()
}
