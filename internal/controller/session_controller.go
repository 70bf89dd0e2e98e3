package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap_api/internal/service"
)

type SessionController struct {
	sessions *service.SessionService
}

func NewSessionController(sessions *service.SessionService) *SessionController {
	return &SessionController{sessions: sessions}
}

// Get handles GET /sessions/:id.
func (c *SessionController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	session, err := c.sessions.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// Schedule handles POST /sessions/:id/schedule.
func (c *SessionController) Schedule(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	type Request struct {
		ActingEmail string `json:"actingEmail" binding:"required"`
		StartAt     string `json:"startAt" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startAt, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "startAt must be an ISO8601 timestamp"})
		return
	}

	session, err := c.sessions.Schedule(ctx.Request.Context(), id, req.ActingEmail, startAt)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}

// Complete handles POST /sessions/:id/done. Idempotent with respect to token
// minting.
func (c *SessionController) Complete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	var body actingBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := c.sessions.Complete(ctx.Request.Context(), id, body.ActingEmail)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, session)
}
