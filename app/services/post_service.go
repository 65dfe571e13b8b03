package services

import (
	"fmt"

	"griddle/app/auth"
	"griddle/app/models"
	"griddle/app/repositories"
)

// PostService handles business logic for blog posts. Every mutation
// consults the authorization policy before touching storage.
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost creates a new post authored by the caller. Admin only.
func (s *PostService) CreatePost(claims *auth.Claims, title, content string) (*models.Post, error) {
	if err := auth.Decide(claims, auth.ActionCreatePost, nil); err != nil {
		return nil, err
	}
	if err := validatePostInput(title, content); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   title,
		Content: content,
		UserID:  claims.UserID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost retrieves a post by ID. Reads are public.
func (s *PostService) GetPost(id int) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// ListPosts retrieves all posts, newest first.
func (s *PostService) ListPosts() ([]*models.Post, error) {
	return s.postRepo.List()
}

// UpdatePost updates an existing post. The target is loaded first so a
// missing post reports not-found before any ownership comparison; the
// update is then allowed for the owner or an admin.
func (s *PostService) UpdatePost(claims *auth.Claims, id int, title, content string) (*models.Post, error) {
	existing, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := auth.Decide(claims, auth.ActionUpdatePost, existing); err != nil {
		return nil, err
	}
	if err := validatePostInput(title, content); err != nil {
		return nil, err
	}

	existing.Title = title
	existing.Content = content
	if err := s.postRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeletePost deletes a post and its comments. Admin only.
func (s *PostService) DeletePost(claims *auth.Claims, id int) error {
	if err := auth.Decide(claims, auth.ActionDeletePost, nil); err != nil {
		return err
	}
	return s.postRepo.Delete(id)
}

// validatePostInput validates user-supplied post fields
func validatePostInput(title, content string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(title) > 200 {
		return fmt.Errorf("%w: title is too long (maximum 200 characters)", ErrValidation)
	}
	if content == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}
