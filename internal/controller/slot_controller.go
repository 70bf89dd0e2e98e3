package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/service"
)

type SlotController struct {
	slots *service.SlotService
}

func NewSlotController(slots *service.SlotService) *SlotController {
	return &SlotController{slots: slots}
}

type slotBody struct {
	Email string `json:"email" binding:"required"`
	service.SlotInput
}

// Create handles POST /timeslots.
func (c *SlotController) Create(ctx *gin.Context) {
	var body slotBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := c.slots.Create(ctx.Request.Context(), body.Email, body.SlotInput)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, slot)
}

// Update handles PUT /timeslots/:id.
func (c *SlotController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot id"})
		return
	}
	var body slotBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := c.slots.Update(ctx.Request.Context(), id, body.Email, body.SlotInput)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, slot)
}

// Delete handles DELETE /timeslots/:id?email=.
func (c *SlotController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot id"})
		return
	}
	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if err := c.slots.Delete(ctx.Request.Context(), id, email); err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListMine handles GET /timeslots?email=.
func (c *SlotController) ListMine(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	slots, err := c.slots.ListByTeacher(ctx.Request.Context(), email)
	if err != nil {
		fail(ctx, err)
		return
	}
	if slots == nil {
		slots = []*model.TimeSlot{}
	}

	ctx.JSON(http.StatusOK, slots)
}

// ListAvailable handles GET /timeslots/available?type=&query=.
func (c *SlotController) ListAvailable(ctx *gin.Context) {
	slots, err := c.slots.ListAvailable(
		ctx.Request.Context(),
		model.SlotType(ctx.Query("type")),
		ctx.Query("query"),
	)
	if err != nil {
		fail(ctx, err)
		return
	}
	if slots == nil {
		slots = []*model.TimeSlot{}
	}

	ctx.JSON(http.StatusOK, slots)
}
