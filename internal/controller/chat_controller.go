package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/service"
)

type ChatController struct {
	chat *service.ChatService
}

func NewChatController(chat *service.ChatService) *ChatController {
	return &ChatController{chat: chat}
}

// Send handles POST /chat/messages.
func (c *ChatController) Send(ctx *gin.Context) {
	type Request struct {
		FromEmail string `json:"fromEmail" binding:"required"`
		ToEmail   string `json:"toEmail" binding:"required"`
		Text      string `json:"text" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := c.chat.SendMessage(ctx.Request.Context(), req.FromEmail, req.ToEmail, req.Text)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, msg)
}

// History handles GET /chat/messages?emailA=&emailB=&after=.
func (c *ChatController) History(ctx *gin.Context) {
	emailA := ctx.Query("emailA")
	emailB := ctx.Query("emailB")
	if emailA == "" || emailB == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "emailA and emailB are required"})
		return
	}

	var after time.Time
	if cursor := ctx.Query("after"); cursor != "" {
		parsed, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "after must be an ISO8601 timestamp"})
			return
		}
		after = parsed
	}

	messages, err := c.chat.History(ctx.Request.Context(), emailA, emailB, after)
	if err != nil {
		fail(ctx, err)
		return
	}
	if messages == nil {
		messages = []*model.Message{}
	}

	ctx.JSON(http.StatusOK, messages)
}
