package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readit/internal/middleware"
	"readit/internal/services"
)

type SubHandler struct {
	subs *services.SubService
}

func NewSubHandler(subs *services.SubService) *SubHandler {
	return &SubHandler{subs: subs}
}

type createSubRequest struct {
	Name        string `json:"name" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

func (h *SubHandler) Create(c *gin.Context) {
	var req createSubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	sub, err := h.subs.Create(middleware.CurrentUser(c), req.Name, req.Title, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubHandler) Get(c *gin.Context) {
	sub, err := h.subs.Get(c.Param("name"), middleware.CurrentUser(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubHandler) Search(c *gin.Context) {
	subs, err := h.subs.Search(c.Param("name"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *SubHandler) TopSubs(c *gin.Context) {
	subs, err := h.subs.Top()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// UploadImage replaces the sub's image or banner. Only the owner may do so.
func (h *SubHandler) UploadImage(c *gin.Context) {
	user := middleware.CurrentUser(c)

	sub, err := h.subs.ByName(c.Param("name"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if sub.Username != user.Username {
		c.JSON(http.StatusForbidden, gin.H{"error": "you don't own this sub"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"file": "must not be empty"})
		return
	}

	sub, err = h.subs.SetImage(sub, c.PostForm("type"), file)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
