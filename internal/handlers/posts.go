package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"anonboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusUpdated = "updated"
	statusDeleted = "deleted"

	errNotFound        = "post not found"
	errInvalidID       = "invalid post id"
	errCreatePost      = "failed to create post"
	errListPosts       = "failed to load posts"
	errGetPost         = "failed to load post"
	errUpdatePost      = "failed to update post"
	errDeletePost      = "failed to delete post"
	errCheckPassword   = "failed to check password"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// parsePostID reads the :id path param. Writes a 400 and returns false on garbage.
func (h *Handler) parsePostID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Title    string `json:"title" binding:"required" example:"hello board"`
	Content  string `json:"content" binding:"required" example:"first!"`
	Password string `json:"password" binding:"required" example:"hunter2"`
}

// UpdatePostRequest is the partial payload for editing a post.
// Absent or empty fields are left untouched.
type UpdatePostRequest struct {
	Title    string `json:"title,omitempty" example:"new title"`
	Content  string `json:"content,omitempty" example:"edited"`
	Password string `json:"password,omitempty" example:"n3w-pass"`
}

// PasswordCheckRequest carries the plaintext to compare against a post's hash.
type PasswordCheckRequest struct {
	Password string `json:"password" binding:"required" example:"hunter2"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body  CreatePostRequest  true  "New post"
// @Success      201   {object}  map[string]interface{}  "id"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/posts [post]
func (h *Handler) createPost(c *gin.Context) {
	var req CreatePostRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	ctx := c.Request.Context()
	id, err := h.services.Board.Create(ctx, service.CreateParams{
		Title:    req.Title,
		Content:  req.Content,
		Password: req.Password,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errCreatePost, "post_create_failed", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// @Summary      List posts
// @Description  Keyset pagination: pass the last seen id as 'cursor' to get the next, strictly older page. Fixed page size of 20, newest first.
// @Tags         posts
// @Produce      json
// @Param        cursor  query  int  false  "Last seen post id"  example(41)
// @Success      200  {object}  map[string]interface{}  "count, posts, next_cursor"
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/posts [get]
func (h *Handler) listPosts(c *gin.Context) {
	var cursor int64
	if qs := c.Query("cursor"); qs != "" {
		v, err := strconv.ParseInt(qs, 10, 64)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
			return
		}
		cursor = v
	}

	ctx := c.Request.Context()
	page, err := h.services.Board.List(ctx, cursor)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListPosts, "post_list_failed", err, "cursor", cursor)
		return
	}

	resp := gin.H{
		"count": len(page.Posts),
		"posts": page.Posts,
	}
	if page.NextCursor > 0 {
		resp["next_cursor"] = page.NextCursor
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Get post
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post id"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/posts/{id} [get]
func (h *Handler) getPost(c *gin.Context) {
	id, ok := h.parsePostID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	post, err := h.services.Board.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetPost, "post_get_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, post)
}

// @Summary      Check post password
// @Description  Compares the plaintext against the post's stored hash. Absent or deleted posts yield 404, never a false match.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path  int                   true  "Post id"
// @Param        body  body  PasswordCheckRequest  true  "Password"
// @Success      200   {object}  map[string]bool  "valid"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/posts/{id}/password-check [post]
func (h *Handler) checkPostPassword(c *gin.Context) {
	id, ok := h.parsePostID(c)
	if !ok {
		return
	}
	var req PasswordCheckRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	ctx := c.Request.Context()
	valid, err := h.services.Board.CheckPassword(ctx, id, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errCheckPassword, "post_password_check_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// @Summary      Update post
// @Description  Partial update: absent or empty fields are left untouched. A provided password is re-hashed before storage.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path  int                true  "Post id"
// @Param        body  body  UpdatePostRequest  true  "Fields to change"
// @Success      200   {object}  map[string]string  "status"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/posts/{id} [patch]
func (h *Handler) updatePost(c *gin.Context) {
	id, ok := h.parsePostID(c)
	if !ok {
		return
	}
	var req UpdatePostRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	ctx := c.Request.Context()
	err := h.services.Board.Update(ctx, id, service.UpdateParams{
		Title:    req.Title,
		Content:  req.Content,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errUpdatePost, "post_update_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": statusUpdated})
}

// @Summary      Delete post
// @Description  Soft delete: the row stays in the table with its flag set. A second delete of the same id yields 404.
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "Post id"
// @Success      200  {object}  map[string]string  "status"
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/posts/{id} [delete]
func (h *Handler) deletePost(c *gin.Context) {
	id, ok := h.parsePostID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.services.Board.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeletePost, "post_delete_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": statusDeleted})
}
