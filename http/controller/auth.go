package controller

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tranvu/cinesync/http/controller/dto"
	"github.com/tranvu/cinesync/utils"
)

// Login exchanges the shared admin secret for a short-lived signed token.
func (ctrl *Controller) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "password is required")
		return
	}

	adminSecret := ctrl.Config.EnvConfig.Auth.AdminSecret
	if adminSecret == "" || !utils.SecureCompare(req.Password, adminSecret) {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Rejected login attempt from %s", c.ClientIP())
		utils.JSON401(c, "Invalid credentials")
		return
	}

	ttl := time.Duration(ctrl.Config.EnvConfig.JWT.ExpireSeconds) * time.Second
	token, err := utils.IssueToken(ctrl.Config.EnvConfig.JWT.SecretKey, "admin", ttl)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Auth] Failed to issue token")
		utils.JSON500(c, "Failed to issue token")
		return
	}

	utils.JSON200(c, dto.LoginResponseDTO{
		Token:     token,
		Role:      "admin",
		ExpiresIn: ctrl.Config.EnvConfig.JWT.ExpireSeconds,
	})
}
