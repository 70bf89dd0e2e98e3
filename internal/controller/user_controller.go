package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap_api/internal/service"
)

type UserController struct {
	users *service.UserService
}

func NewUserController(users *service.UserService) *UserController {
	return &UserController{users: users}
}

// Balance handles GET /users/:email/balance.
func (c *UserController) Balance(ctx *gin.Context) {
	balance, err := c.users.Balance(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, balance)
}
