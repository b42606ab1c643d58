package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	eventPort "timelineforum/internal/ports/event"
)

type EventController struct{ ec EventUseCase }

func NewEventController(ec EventUseCase) *EventController { return &EventController{ec: ec} }

func (ctl *EventController) CreateEvent(c *gin.Context) {
	var req eventPort.CreateEventInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	res, err := ctl.ec.CreateEvent(c.Request.Context(), req, c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (ctl *EventController) GetTimelineEvents(c *gin.Context) {
	res, err := ctl.ec.EventsForTimeline(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": res})
}
