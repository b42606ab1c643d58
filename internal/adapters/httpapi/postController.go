package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	postPort "timelineforum/internal/ports/post"
)

type PostController struct {
	pc PostUseCase
	pr PromotionUseCase
}

func NewPostController(pc PostUseCase, pr PromotionUseCase) *PostController {
	return &PostController{pc: pc, pr: pr}
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req postPort.CreatePostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	res, err := ctl.pc.CreatePost(c.Request.Context(), req, c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *PostController) GetTimelinePosts(c *gin.Context) {
	res, err := ctl.pc.ListByTimeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": res})
}

func (ctl *PostController) UpvotePost(c *gin.Context) {
	upvotes, err := ctl.pc.Upvote(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upvotes": upvotes})
}

func (ctl *PostController) SetSourceCount(c *gin.Context) {
	var req struct {
		SourceCount *int `json:"source_count" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if err := ctl.pc.SetSourceCount(c.Request.Context(), c.Param("id"), *req.SourceCount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"source_count": *req.SourceCount})
}

func (ctl *PostController) VoteForPromotion(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	score, err := ctl.pr.VoteForPromotion(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"promotion_score": score})
}

func (ctl *PostController) CheckPromotions(c *gin.Context) {
	promoted, err := ctl.pr.CheckPromotions(c.Request.Context(), c.Param("id"), 0)
	if err != nil {
		respondError(c, err)
		return
	}
	if promoted == nil {
		promoted = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"promoted": promoted, "count": len(promoted)})
}
