package services

import (
	"fmt"

	"griddle/app/auth"
	"griddle/app/models"
	"griddle/app/repositories"
)

// CommentService handles business logic for comments. Comment creation
// and deletion are open to anonymous callers; comments carry no author
// so no ownership check is structurally possible.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment creates a new comment on an existing post.
func (s *CommentService) CreateComment(postID int, content string) (*models.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if len(content) > 500 {
		return nil, fmt.Errorf("%w: content is too long (maximum 500 characters)", ErrValidation)
	}

	comment := &models.Comment{
		PostID:  postID,
		Content: content,
	}
	// The repository re-checks post existence transactionally; this
	// keeps the not-found path cheap for the common case.
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListPostComments retrieves all comments for an existing post.
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(postID)
}

// DeleteComment deletes a comment. Open to any caller.
func (s *CommentService) DeleteComment(claims *auth.Claims, id int) error {
	if err := auth.Decide(claims, auth.ActionDeleteComment, nil); err != nil {
		return err
	}
	return s.commentRepo.Delete(id)
}
