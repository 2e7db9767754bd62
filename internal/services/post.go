package services

import (
	"context"
	"time"

	"github.com/ekarabulut/social-wall/internal/logger"
	"github.com/ekarabulut/social-wall/internal/models"
	"github.com/ekarabulut/social-wall/internal/validation"
	"github.com/google/uuid"
)

// PostReader defines read operations for the post feed.
type PostReader interface {
	GetAll(ctx context.Context) ([]models.PostWithAuthorDB, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.PostWithAuthorDB, error)
}

// PostWriter defines write operations for posts.
type PostWriter interface {
	Save(ctx context.Context, userID int64, text string, imageData *string) (*models.PostDB, error)
}

// PostService handles post creation and listing.
type PostService struct {
	readRepo    PostReader
	writeRepo   PostWriter
	users       UserReader
	kafkaWriter KafkaWriter
}

// NewPostService creates a new PostService instance.
func NewPostService(readRepo PostReader, writeRepo PostWriter, users UserReader, kafkaWriter KafkaWriter) *PostService {
	return &PostService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		users:       users,
		kafkaWriter: kafkaWriter,
	}
}

// CreatePost stores a new post for the given author and returns it.
func (svc *PostService) CreatePost(ctx context.Context, userID int64, req models.CreatePostRequest) (*models.PostResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := svc.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var imageData *string
	if req.ImageBase64 != "" {
		imageData = &req.ImageBase64
	}

	post, err := svc.writeRepo.Save(ctx, userID, req.Text, imageData)
	if err != nil {
		logger.Log.Errorw("failed to save post", "err", err)
		return nil, err
	}

	publishEvent(ctx, svc.kafkaWriter, models.Event{
		EventID:    uuid.NewString(),
		Type:       models.EventPostCreated,
		UserID:     userID,
		PostID:     post.ID,
		Username:   user.Username,
		OccurredAt: time.Now().UTC(),
	})

	resp := &models.PostResponse{
		ID:        post.ID,
		Text:      post.Text,
		UserID:    post.UserID,
		Username:  user.Username,
		CreatedAt: post.CreatedAt,
	}
	if post.ImageData != nil {
		resp.ImageBase64 = *post.ImageData
	}
	return resp, nil
}

// ListPosts returns all active posts, newest first.
func (svc *PostService) ListPosts(ctx context.Context) ([]models.PostResponse, error) {
	posts, err := svc.readRepo.GetAll(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list posts", "err", err)
		return nil, err
	}
	return toPostResponses(posts), nil
}

// ListPostsByUser returns the given user's active posts, newest first.
func (svc *PostService) ListPostsByUser(ctx context.Context, userID int64) ([]models.PostResponse, error) {
	posts, err := svc.readRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list user posts", "err", err)
		return nil, err
	}
	return toPostResponses(posts), nil
}

func toPostResponses(posts []models.PostWithAuthorDB) []models.PostResponse {
	out := make([]models.PostResponse, 0, len(posts))
	for _, p := range posts {
		resp := models.PostResponse{
			ID:        p.ID,
			Text:      p.Text,
			UserID:    p.UserID,
			Username:  p.Username,
			CreatedAt: p.CreatedAt,
		}
		if p.ImageData != nil {
			resp.ImageBase64 = *p.ImageData
		}
		out = append(out, resp)
	}
	return out
}
