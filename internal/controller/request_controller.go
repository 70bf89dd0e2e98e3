package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/service"
)

type RequestController struct {
	requests *service.RequestService
}

func NewRequestController(requests *service.RequestService) *RequestController {
	return &RequestController{requests: requests}
}

// Create handles POST /requests.
func (c *RequestController) Create(ctx *gin.Context) {
	type Request struct {
		FromEmail  string `json:"fromEmail" binding:"required"`
		ToEmail    string `json:"toEmail" binding:"required"`
		CourseCode string `json:"courseCode" binding:"required"`
		Minutes    int    `json:"minutes" binding:"required"`
		Note       string `json:"note"`
		TimeSlotID *int64 `json:"timeSlotId"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := c.requests.Create(ctx.Request.Context(), service.CreateInput{
		FromEmail:  req.FromEmail,
		ToEmail:    req.ToEmail,
		CourseCode: req.CourseCode,
		Minutes:    req.Minutes,
		Note:       req.Note,
		TimeSlotID: req.TimeSlotID,
	})
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// List handles GET /requests?inbox=&email= and GET /requests?sent=&email=.
func (c *RequestController) List(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	var (
		requests []*model.Request
		err      error
	)
	switch {
	case ctx.Request.URL.Query().Has("inbox"):
		requests, err = c.requests.Inbox(ctx.Request.Context(), email)
	case ctx.Request.URL.Query().Has("sent"):
		requests, err = c.requests.Sent(ctx.Request.Context(), email)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "specify inbox or sent"})
		return
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	if requests == nil {
		requests = []*model.Request{}
	}

	ctx.JSON(http.StatusOK, requests)
}

// Get handles GET /requests/:id.
func (c *RequestController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	req, err := c.requests.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, req)
}

type actingBody struct {
	ActingEmail string `json:"actingEmail" binding:"required"`
}

// Accept handles POST /requests/:id/accept.
func (c *RequestController) Accept(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	var body actingBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := c.requests.Accept(ctx.Request.Context(), id, body.ActingEmail)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, req)
}

// Decline handles POST /requests/:id/decline.
func (c *RequestController) Decline(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	var body actingBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := c.requests.Decline(ctx.Request.Context(), id, body.ActingEmail)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, req)
}
