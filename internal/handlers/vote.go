package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readit/internal/middleware"
	"readit/internal/services"
)

type VoteHandler struct {
	votes *services.VoteService
}

func NewVoteHandler(votes *services.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

type voteRequest struct {
	Identifier        string `json:"identifier" binding:"required"`
	Slug              string `json:"slug" binding:"required"`
	CommentIdentifier string `json:"commentIdentifier"`
	Value             *int   `json:"value" binding:"required"`
}

// Vote reconciles the caller's vote and returns the refreshed post snapshot.
func (h *VoteHandler) Vote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	post, err := h.votes.Vote(
		middleware.CurrentUser(c),
		req.Identifier, req.Slug, req.CommentIdentifier, *req.Value)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
