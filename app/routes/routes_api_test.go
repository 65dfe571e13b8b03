package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestServer(t)

	rec := doJSON(t, router, "GET", "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	router, _ := setupTestServer(t)

	t.Run("register", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/register", "", map[string]string{
			"username": "alice", "password": "pw1",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]string
		decodeBody(t, rec, &body)
		assert.Contains(t, body["message"], "registered successfully")
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/register", "", map[string]string{
			"username": "alice", "password": "pw2",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("login returns token and user", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/login", "", map[string]string{
			"username": "alice", "password": "pw1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Token string `json:"token"`
			User  struct {
				ID       int    `json:"id"`
				Username string `json:"username"`
				Role     string `json:"role"`
			} `json:"user"`
		}
		decodeBody(t, rec, &body)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "alice", body.User.Username)
		assert.Equal(t, "user", body.User.Role)
	})

	t.Run("bad credentials are indistinguishable", func(t *testing.T) {
		wrongPassword := doJSON(t, router, "POST", "/api/login", "", map[string]string{
			"username": "alice", "password": "wrong",
		})
		unknownUser := doJSON(t, router, "POST", "/api/login", "", map[string]string{
			"username": "nobody", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
		assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	})
}

func TestPostLifecycle(t *testing.T) {
	router, db := setupTestServer(t)
	createAdmin(t, db, "root", "rootpw")
	adminToken := login(t, router, "root", "rootpw")

	doJSON(t, router, "POST", "/api/register", "", map[string]string{
		"username": "bob", "password": "pw",
	})
	userToken := login(t, router, "bob", "pw")

	var postID int

	t.Run("admin creates a post", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/posts", adminToken, map[string]string{
			"title": "First Post", "content": "Hello from the admin, this is the full content.",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var body map[string]interface{}
		decodeBody(t, rec, &body)
		assert.Equal(t, "First Post", body["title"])
		assert.Contains(t, body["message"], "created successfully")
		postID = int(body["id"].(float64))
		assert.Greater(t, postID, 0)
	})

	t.Run("regular user cannot create", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/posts", userToken, map[string]string{
			"title": "Nope", "content": "Should fail",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous cannot create", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/posts", "", map[string]string{
			"title": "Nope", "content": "Should fail",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("list is public and carries excerpts", func(t *testing.T) {
		rec := doJSON(t, router, "GET", "/api/posts", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body []map[string]interface{}
		decodeBody(t, rec, &body)
		require.NotEmpty(t, body)
		assert.Contains(t, body[0], "excerpt")
		assert.Contains(t, body[0], "timestamp")
	})

	t.Run("show is public", func(t *testing.T) {
		rec := doJSON(t, router, "GET", "/api/posts/1", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing post is 404", func(t *testing.T) {
		rec := doJSON(t, router, "GET", "/api/posts/9999", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		rec := doJSON(t, router, "PUT", "/api/posts/1", userToken, map[string]string{
			"title": "Hijacked", "content": "x",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("owner updates own post", func(t *testing.T) {
		rec := doJSON(t, router, "PUT", "/api/posts/1", adminToken, map[string]string{
			"title": "Updated Post", "content": "Edited content.",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		decodeBody(t, rec, &body)
		assert.Equal(t, "Updated Post", body["title"])
	})

	t.Run("regular user cannot delete", func(t *testing.T) {
		rec := doJSON(t, router, "DELETE", "/api/posts/1", userToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin deletes", func(t *testing.T) {
		rec := doJSON(t, router, "DELETE", "/api/posts/1", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, router, "GET", "/api/posts/1", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("deleting again is 404", func(t *testing.T) {
		rec := doJSON(t, router, "DELETE", "/api/posts/1", adminToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCommentEndpoints(t *testing.T) {
	router, db := setupTestServer(t)
	createAdmin(t, db, "root", "rootpw")
	adminToken := login(t, router, "root", "rootpw")

	rec := doJSON(t, router, "POST", "/api/posts", adminToken, map[string]string{
		"title": "Commented Post", "content": "Post with comments.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("anonymous comment creation", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/posts/1/comments", "", map[string]string{
			"content": "nice post",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]interface{}
		decodeBody(t, rec, &body)
		assert.Equal(t, "nice post", body["content"])
		assert.Equal(t, float64(1), body["post_id"])
	})

	t.Run("comments list includes it", func(t *testing.T) {
		rec := doJSON(t, router, "GET", "/api/posts/1/comments", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body []map[string]interface{}
		decodeBody(t, rec, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "nice post", body[0]["content"])
	})

	t.Run("empty comment is rejected", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/posts/1/comments", "", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("comment on missing post is 404", func(t *testing.T) {
		rec := doJSON(t, router, "POST", "/api/posts/9999/comments", "", map[string]string{
			"content": "shout into the void",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("anonymous delete is allowed", func(t *testing.T) {
		rec := doJSON(t, router, "DELETE", "/api/comments/1", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		decodeBody(t, rec, &body)
		assert.Contains(t, body["message"], "deleted successfully")
	})

	t.Run("deleting a missing comment is 404", func(t *testing.T) {
		rec := doJSON(t, router, "DELETE", "/api/comments/9999", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminUsersEndpoint(t *testing.T) {
	router, db := setupTestServer(t)
	createAdmin(t, db, "root", "rootpw")
	adminToken := login(t, router, "root", "rootpw")

	doJSON(t, router, "POST", "/api/register", "", map[string]string{
		"username": "carol", "password": "pw",
	})
	userToken := login(t, router, "carol", "pw")

	t.Run("admin sees detailed listing", func(t *testing.T) {
		rec := doJSON(t, router, "GET", "/api/admin/users", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body []map[string]interface{}
		decodeBody(t, rec, &body)
		require.Len(t, body, 2)
		for _, u := range body {
			assert.Contains(t, u, "username")
			assert.Contains(t, u, "role")
			assert.NotContains(t, u, "password_hash")
		}
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		rec := doJSON(t, router, "GET", "/api/admin/users", userToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous is unauthenticated", func(t *testing.T) {
		rec := doJSON(t, router, "GET", "/api/admin/users", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

// Promotion does not take effect for tokens issued before the role
// change; a fresh login picks up the new role.
func TestStaleRoleClaims(t *testing.T) {
	router, db := setupTestServer(t)

	rec := doJSON(t, router, "POST", "/api/register", "", map[string]string{
		"username": "alice", "password": "pw1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	staleToken := login(t, router, "alice", "pw1")

	rec = doJSON(t, router, "POST", "/api/posts", staleToken, map[string]string{
		"title": "Too Soon", "content": "Not yet an admin.",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Out-of-band promotion
	createAdminPromote(t, db, "alice")

	rec = doJSON(t, router, "POST", "/api/posts", staleToken, map[string]string{
		"title": "Still Too Soon", "content": "Old token, old role.",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	freshToken := login(t, router, "alice", "pw1")
	rec = doJSON(t, router, "POST", "/api/posts", freshToken, map[string]string{
		"title": "Finally", "content": "New token carries the admin role.",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}
