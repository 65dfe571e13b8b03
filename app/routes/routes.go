package routes

import (
	"net/http"

	"griddle/app/auth"
	"griddle/app/controllers"
	"griddle/app/middleware"
	"griddle/app/repositories"
	"griddle/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// SetupRoutes builds the API router against the provided Badger DB.
// The DB handle is opened once at process start and owned by the
// caller; nothing here holds global state.
func SetupRoutes(db *badger.DB, tokens *auth.TokenManager, log *logrus.Logger) *mux.Router {
	userRepo := repositories.NewBadgerUserRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)

	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)

	authController := controllers.NewAuthController(userService, tokens, log)
	postController := controllers.NewPostController(postService, log)
	commentController := controllers.NewCommentController(commentService, log)
	adminController := controllers.NewAdminController(userService, log)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.BearerAuth(tokens))

	// Serve the static frontend if present
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	api.HandleFunc("/health", controllers.Health).Methods("GET")
	api.HandleFunc("/register", authController.Register).Methods("POST")
	api.HandleFunc("/login", authController.Login).Methods("POST")

	// Posts API endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("", postController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}", postController.Edit).Methods("PUT")
	posts.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods("DELETE")

	// Comments API endpoints
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Index).Methods("GET")
	posts.HandleFunc("/{postId:[0-9]+}/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/comments/{id:[0-9]+}", commentController.Delete).Methods("DELETE")

	// Admin API endpoints
	api.HandleFunc("/admin/users", adminController.ListUsers).Methods("GET")

	return router
}
