package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kdgblogteam/blogapplication/internal/models"
)

type PostService struct {
	db  *Database
	now func() time.Time

	// beforeLikeWrite runs between the read and the write of IncrementLikes.
	beforeLikeWrite func(post *models.Post)
}

func NewPostService(db *Database) *PostService {
	return &PostService{db: db, now: time.Now}
}

// ListPosts returns every post, newest first. Comments are not loaded.
func (ps *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	err := ps.db.DBConn.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetPost fetches a single post by id without its comments.
func (ps *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return ps.findPost(ps.db.DBConn.WithContext(ctx), id)
}

// GetPostWithComments fetches a post and eagerly loads its comments in
// insertion order. This is the lookup behind the detail page.
func (ps *PostService) GetPostWithComments(ctx context.Context, id uint) (*models.Post, error) {
	tx := ps.db.DBConn.WithContext(ctx).Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
	return ps.findPost(tx, id)
}

func (ps *PostService) findPost(tx *gorm.DB, id uint) (*models.Post, error) {
	var post models.Post
	if err := tx.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	return &post, nil
}

// CreatePost stores a new post. id, created_at and likes are assigned here.
func (ps *PostService) CreatePost(ctx context.Context, title, content string) (*models.Post, error) {
	if err := ps.validatePostData(title, content); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:     title,
		Content:   content,
		CreatedAt: ps.now().UTC(),
		Likes:     0,
	}

	if err := ps.db.DBConn.WithContext(ctx).Create(post).Error; err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// IncrementLikes reads the post, adds one like and writes the counter back.
//
// The read and the write are separate statements with no lock between them,
// so two concurrent calls on the same post can both read N and both write N+1.
func (ps *PostService) IncrementLikes(ctx context.Context, id uint) (*models.Post, error) {
	post, err := ps.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Likes++

	if ps.beforeLikeWrite != nil {
		ps.beforeLikeWrite(post)
	}

	err = ps.db.DBConn.WithContext(ctx).
		Model(post).
		Update("likes", post.Likes).Error
	if err != nil {
		return nil, fmt.Errorf("like post %d: %w", id, err)
	}

	return post, nil
}

// validatePostData checks required fields and the title length.
// Content has no upper bound.
func (ps *PostService) validatePostData(title, content string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if charCount(title) > MaxTitleLength {
		return ErrLongTitle
	}
	if content == "" {
		return ErrEmptyContent
	}
	return nil
}
