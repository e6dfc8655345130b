package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"readit/internal/middleware"
	"readit/internal/services"
	"readit/internal/utils"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type createPostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body"`
	Sub   string `json:"sub" binding:"required"`
}

type createCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	post, err := h.posts.Create(middleware.CurrentUser(c), req.Title, req.Body, req.Sub)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) List(c *gin.Context) {
	page := utils.StringToInt(c.Query("page"))
	count := 8
	if v := c.Query("count"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			count = n
		}
	}

	posts, err := h.posts.List(page, count, middleware.CurrentUser(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Detail(c *gin.Context) {
	post, err := h.posts.Get(c.Param("identifier"), c.Param("slug"), middleware.CurrentUser(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	comment, err := h.posts.CreateComment(
		middleware.CurrentUser(c), c.Param("identifier"), c.Param("slug"), req.Body)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	comments, err := h.posts.Comments(
		c.Param("identifier"), c.Param("slug"), middleware.CurrentUser(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
