package database

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	MaxTitleLength       = 100
	MaxCommentBodyLength = 200
)

var (
	ErrPostNotFound = errors.New("post not found")

	// ErrValidation is wrapped by every input rule below.
	ErrValidation = errors.New("validation failed")

	ErrEmptyTitle       = fmt.Errorf("%w: title is required", ErrValidation)
	ErrLongTitle        = fmt.Errorf("%w: title must be at most %d characters", ErrValidation, MaxTitleLength)
	ErrEmptyContent     = fmt.Errorf("%w: content is required", ErrValidation)
	ErrEmptyCommentBody = fmt.Errorf("%w: comment body is required", ErrValidation)
	ErrLongCommentBody  = fmt.Errorf("%w: comment body must be at most %d characters", ErrValidation, MaxCommentBodyLength)
)

// charCount counts code points of the NFC form, so a precomposed and a
// decomposed accent weigh the same.
func charCount(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}
