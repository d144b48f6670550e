package controller

import (
	"strings"

	"studyquiz_backend/internal/config"
	"studyquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Config *config.Config
}

func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{Config: cfg}
}

// LoginRequest carries the display name used to partition history. There are
// no accounts and no password; the name is an opaque owner key.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
}

// Login godoc
// @Summary Start a study session
// @Description Issues a token for the given display name. No account is created.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Display name"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	name := strings.TrimSpace(req.Username)
	if name == "" {
		util.BadRequest(ctx, "username must not be blank")
		return
	}

	token, err := util.GenerateJWT(name, c.Config.JWT.Secret, c.Config.JWT.ExpireTime)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"token":    token,
		"username": name,
	})
}
