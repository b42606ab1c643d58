package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController {
	return &CommentController{cc: cc}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (ctl *CommentController) AddPostComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	res, err := ctl.cc.AddToPost(c.Request.Context(), c.Param("id"), req.Content, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *CommentController) AddEventComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	res, err := ctl.cc.AddToEvent(c.Request.Context(), c.Param("id"), req.Content, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *CommentController) GetPostComments(c *gin.Context) {
	res, err := ctl.cc.ListByPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": res})
}

func (ctl *CommentController) GetEventComments(c *gin.Context) {
	res, err := ctl.cc.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": res})
}
