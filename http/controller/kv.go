package controller

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/tranvu/cinesync/utils"
)

// The KV surface stores small configuration values: stored API keys, the
// public base URL. Values are opaque bytes.

func (ctrl *Controller) GetKV(c *gin.Context) {
	key := c.Param("key")

	value, err := ctrl.Repository.KVRepo.Get(c.Request.Context(), key)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSON200(c, gin.H{"key": key, "value": string(value)})
}

func (ctrl *Controller) PutKV(c *gin.Context) {
	ctx := c.Request.Context()
	key := c.Param("key")

	value, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil || len(value) == 0 {
		utils.JSON400(c, "value body is required")
		return
	}

	if err := ctrl.Repository.KVRepo.Put(ctx, key, value); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[KV] Failed to store %s", key)
		utils.JSON500(c, "Failed to store value")
		return
	}
	utils.JSON200(c, gin.H{"key": key, "stored": true})
}

func (ctrl *Controller) DeleteKV(c *gin.Context) {
	ctx := c.Request.Context()
	key := c.Param("key")

	if err := ctrl.Repository.KVRepo.Delete(ctx, key); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[KV] Failed to delete %s", key)
		utils.JSON500(c, "Failed to delete value")
		return
	}
	utils.JSON200(c, gin.H{"key": key, "deleted": true})
}
