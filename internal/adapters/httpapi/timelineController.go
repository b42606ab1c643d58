package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TimelineController struct{ tc TimelineUseCase }

func NewTimelineController(tc TimelineUseCase) *TimelineController {
	return &TimelineController{tc: tc}
}

func (ctl *TimelineController) CreateTimeline(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	res, err := ctl.tc.CreateTimeline(c.Request.Context(), req.Name, req.Description, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *TimelineController) GetTimeline(c *gin.Context) {
	res, err := ctl.tc.GetTimeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctl *TimelineController) ListTimelines(c *gin.Context) {
	res, err := ctl.tc.ListTimelines(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"timelines": res})
}

func (ctl *TimelineController) DeleteTimeline(c *gin.Context) {
	if err := ctl.tc.DeleteTimeline(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "timeline deleted"})
}
