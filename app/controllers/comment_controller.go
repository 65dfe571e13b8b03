package controllers

import (
	"net/http"

	"griddle/app/middleware"
	"griddle/app/models"
	"griddle/app/services"

	"github.com/sirupsen/logrus"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	log            *logrus.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, log *logrus.Logger) *CommentController {
	return &CommentController{commentService: commentService, log: log}
}

type commentRequest struct {
	Content string `json:"content"`
}

// Index handles GET /api/posts/{postId}/comments
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}

	comments, err := cc.commentService.ListPostComments(postID)
	if err != nil {
		sendError(w, cc.log, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	sendJSON(w, http.StatusOK, comments)
}

// Create handles POST /api/posts/{postId}/comments. No authentication
// required: comments are anonymous.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "postId")
	if !ok {
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		sendMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	comment, err := cc.commentService.CreateComment(postID, req.Content)
	if err != nil {
		sendError(w, cc.log, err)
		return
	}
	sendJSON(w, http.StatusCreated, comment)
}

// Delete handles DELETE /api/comments/{id}. Open to any caller; see
// CommentService.DeleteComment.
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	claims := middleware.ClaimsFromRequest(r)
	if err := cc.commentService.DeleteComment(claims, id); err != nil {
		sendError(w, cc.log, err)
		return
	}
	sendMessage(w, http.StatusOK, "comment deleted successfully")
}
