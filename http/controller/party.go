package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/tranvu/cinesync/utils"
)

// JoinParty upgrades the connection and hands it to the room actor.
func (ctrl *Controller) JoinParty(c *gin.Context) {
	ctx := c.Request.Context()
	roomName := c.Param("room")
	if roomName == "" {
		utils.JSON400(c, "room name is required")
		return
	}

	if err := ctrl.Hub.Join(c.Writer, c.Request, roomName); err != nil {
		// on upgrade failure the upgrader has already written the response
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Party] Join of room %s failed: %v", roomName, err)
	}
}
