package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tranvu/cinesync/http/controller/dto"
	"github.com/tranvu/cinesync/infra/produce"
	"github.com/tranvu/cinesync/utils"
)

// CreateImport queues a remote resource for retrieval into the media bucket.
// The consumer worker performs the fetch-with-retry and the quota-gated
// upload.
func (ctrl *Controller) CreateImport(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ImportRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "url and key are required: "+err.Error())
		return
	}

	msg := produce.ImportJobMessage{
		JobID:       uuid.New().String(),
		URL:         req.URL,
		Key:         req.Key,
		RequestedBy: c.GetString("role"),
	}

	if err := ctrl.Infra.Produce.ImportService.PublishImportJob(ctx, msg); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Import] Failed to queue job for %s", req.URL)
		utils.JSON500(c, "Failed to queue import")
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Import] Queued job %s: %s -> %s", msg.JobID, req.URL, req.Key)
	c.JSON(http.StatusAccepted, gin.H{"job_id": msg.JobID, "status": "queued"})
}
