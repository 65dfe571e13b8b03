package models

import "time"

// Role is the coarse access-control role carried by a User and by the
// session claims derived from it.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an identity record. PasswordHash holds the bcrypt
// digest; the json tag exists for the storage encoding only, and the
// API layer never serializes a User directly.
type User struct {
	ID           int       `json:"id" validate:"required,gte=0"`
	Username     string    `json:"username" validate:"required,min=1,max=50"`
	PasswordHash string    `json:"password_hash" validate:"required"`
	Role         Role      `json:"role" validate:"required,oneof=admin user"`
	CreatedAt    time.Time `json:"created_at" validate:"required"`
}

// Post represents a blog post. Every post has exactly one author.
type Post struct {
	ID        int       `json:"id" validate:"required,gte=0"`
	Title     string    `json:"title" validate:"required,min=1,max=200"`
	Content   string    `json:"content" validate:"required,min=1"`
	UserID    int       `json:"user_id" validate:"required,gte=0"`
	CreatedAt time.Time `json:"timestamp" validate:"required"`
}

// Comment represents a comment on a blog post. Comments carry no
// author field: they are anonymous with respect to access control.
type Comment struct {
	ID        int       `json:"id" validate:"required,gte=0"`
	PostID    int       `json:"post_id" validate:"required,gte=0"`
	Content   string    `json:"content" validate:"required,min=1,max=500"`
	CreatedAt time.Time `json:"timestamp" validate:"required"`
}
