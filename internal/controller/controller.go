// Package controller exposes the HTTP surface. Controllers bind JSON, call
// the service layer and map the error taxonomy to status codes.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skillswap/skillswap_api/internal/service"
)

// fail writes the error with the status its taxonomy class maps to:
// validation, authorization and conflict failures are 400, missing entities
// 404, anything else 500.
func fail(ctx *gin.Context, err error) {
	var (
		validation *service.ValidationError
		authz      *service.AuthorizationError
		conflict   *service.ConflictError
		notFound   *service.NotFoundError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &authz), errors.As(err, &conflict):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// RequestLogger logs every request with zap.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		logger.Info("HTTP request",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// Router wires all controllers onto one gin engine.
func Router(
	logger *zap.Logger,
	requests *RequestController,
	sessions *SessionController,
	slots *SlotController,
	transcripts *TranscriptController,
	chat *ChatController,
	users *UserController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.POST("/requests", requests.Create)
	r.GET("/requests", requests.List)
	r.GET("/requests/:id", requests.Get)
	r.POST("/requests/:id/accept", requests.Accept)
	r.POST("/requests/:id/decline", requests.Decline)

	r.GET("/sessions/:id", sessions.Get)
	r.POST("/sessions/:id/schedule", sessions.Schedule)
	r.POST("/sessions/:id/done", sessions.Complete)

	r.GET("/timeslots", slots.ListMine)
	r.GET("/timeslots/available", slots.ListAvailable)
	r.POST("/timeslots", slots.Create)
	r.PUT("/timeslots/:id", slots.Update)
	r.DELETE("/timeslots/:id", slots.Delete)

	r.POST("/transcripts/ingest", transcripts.Ingest)
	r.POST("/transcripts/add-selected-courses", transcripts.AddSelectedCourses)
	r.GET("/courses", transcripts.ListCourses)

	r.POST("/chat/messages", chat.Send)
	r.GET("/chat/messages", chat.History)

	r.GET("/users/:email/balance", users.Balance)

	return r
}
