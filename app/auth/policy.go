package auth

import (
	"errors"

	"griddle/app/models"
)

// Action identifies an operation subject to access control.
type Action int

const (
	ActionReadPost Action = iota
	ActionCreatePost
	ActionUpdatePost
	ActionDeletePost
	ActionCreateComment
	ActionDeleteComment
	ActionListUsers
)

var (
	// ErrUnauthenticated means the action requires identity and the
	// caller presented none.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the caller's identity is valid but lacks the
	// role or ownership the action requires.
	ErrForbidden = errors.New("insufficient privileges")
)

// Decide is the single allow/deny decision point. It is a pure
// function of the caller's claims (nil for anonymous), the action, and
// the target post for ownership checks (nil when the action has no
// post target). Callers resolve the target before consulting Decide,
// so a missing target is reported as not-found upstream rather than
// leaking through an authorization error.
func Decide(claims *Claims, action Action, target *models.Post) error {
	switch action {
	case ActionReadPost, ActionCreateComment, ActionDeleteComment:
		// Public in this model, including anonymous callers.
		return nil

	case ActionCreatePost, ActionDeletePost, ActionListUsers:
		if claims == nil {
			return ErrUnauthenticated
		}
		if !claims.IsAdmin() {
			return ErrForbidden
		}
		return nil

	case ActionUpdatePost:
		if claims == nil {
			return ErrUnauthenticated
		}
		if claims.IsAdmin() {
			return nil
		}
		if target != nil && target.UserID == claims.UserID {
			return nil
		}
		return ErrForbidden

	default:
		return ErrForbidden
	}
}
