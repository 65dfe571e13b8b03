package controllers

import (
	"net/http"
	"strconv"

	"griddle/app/middleware"
	"griddle/app/models"
	"griddle/app/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	log         *logrus.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, log *logrus.Logger) *PostController {
	return &PostController{postService: postService, log: log}
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Index handles GET /api/posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts()
	if err != nil {
		sendError(w, pc.log, err)
		return
	}

	// List responses carry an excerpt alongside the full fields.
	out := make([]map[string]interface{}, 0, len(posts))
	for _, post := range posts {
		out = append(out, postJSON(post, true))
	}
	sendJSON(w, http.StatusOK, out)
}

// Show handles GET /api/posts/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		sendError(w, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, postJSON(post, false))
}

// Create handles POST /api/posts
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		sendMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	claims := middleware.ClaimsFromRequest(r)
	post, err := pc.postService.CreatePost(claims, req.Title, req.Content)
	if err != nil {
		sendError(w, pc.log, err)
		return
	}

	body := postJSON(post, false)
	body["message"] = "post created successfully"
	sendJSON(w, http.StatusCreated, body)
}

// Edit handles PUT /api/posts/{id}
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		sendMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	claims := middleware.ClaimsFromRequest(r)
	post, err := pc.postService.UpdatePost(claims, id, req.Title, req.Content)
	if err != nil {
		sendError(w, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, postJSON(post, false))
}

// Delete handles DELETE /api/posts/{id}
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	claims := middleware.ClaimsFromRequest(r)
	if err := pc.postService.DeletePost(claims, id); err != nil {
		sendError(w, pc.log, err)
		return
	}
	sendMessage(w, http.StatusOK, "post deleted successfully")
}

// postJSON builds the wire representation of a post.
func postJSON(post *models.Post, withExcerpt bool) map[string]interface{} {
	body := map[string]interface{}{
		"id":        post.ID,
		"title":     post.Title,
		"content":   post.Content,
		"user_id":   post.UserID,
		"timestamp": post.CreatedAt,
	}
	if withExcerpt {
		body["excerpt"] = post.Excerpt()
	}
	return body
}

// pathID parses a numeric path variable, responding with 400 on junk.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		sendMessage(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
