package database

import (
	"context"
	"fmt"

	"github.com/kdgblogteam/blogapplication/internal/models"
)

type CommentService struct {
	db *Database
}

func NewCommentService(db *Database) *CommentService {
	return &CommentService{db: db}
}

// AddComment attaches a comment to a post. The post is not looked up first:
// the foreign key rejects unknown posts and that rejection becomes ErrPostNotFound.
func (cs *CommentService) AddComment(ctx context.Context, postID uint, body string) (*models.Comment, error) {
	if err := cs.validateCommentData(body); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:   body,
		PostID: postID,
	}

	if err := cs.db.DBConn.WithContext(ctx).Create(comment).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("add comment to post %d: %w", postID, err)
	}

	return comment, nil
}

func (cs *CommentService) validateCommentData(body string) error {
	if body == "" {
		return ErrEmptyCommentBody
	}
	if charCount(body) > MaxCommentBodyLength {
		return ErrLongCommentBody
	}
	return nil
}
