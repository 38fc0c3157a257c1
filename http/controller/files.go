package controller

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tranvu/cinesync/utils"
)

// ListFiles pages through the whole bucket and reports its contents.
func (ctrl *Controller) ListFiles(c *gin.Context) {
	ctx := c.Request.Context()

	objects, err := ctrl.Repository.ObjectRepo.ListAll(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Files] Failed to list bucket")
		utils.JSON500(c, "Failed to list files")
		return
	}

	var totalBytes int64
	for _, obj := range objects {
		totalBytes += obj.SizeBytes
	}

	utils.JSON200(c, gin.H{
		"objects":     objects,
		"count":       len(objects),
		"total_bytes": totalBytes,
		"quota_bytes": ctrl.Config.EnvConfig.Minio.QuotaBytes,
	})
}

// UploadObject stores a multipart file after the quota pass has made room
// for it.
func (ctrl *Controller) UploadObject(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.JSON400(c, "Failed to get file: "+err.Error())
		return
	}

	key := strings.TrimSpace(c.PostForm("key"))
	if key == "" {
		key = fileHeader.Filename
	}
	key = strings.Trim(key, "/")
	if key == "" || strings.Contains(key, "..") {
		utils.JSON400(c, "Invalid object key")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.JSON400(c, "Failed to open file: "+err.Error())
		return
	}
	defer file.Close()

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Files] Uploading %s (%d bytes)", key, fileHeader.Size)

	evicted, err := ctrl.Repository.ObjectRepo.Upload(ctx, key, file, fileHeader.Size, contentType)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Files] Upload of %s failed", key)
		utils.JSON500(c, "Upload failed")
		return
	}

	utils.JSON201(c, gin.H{
		"key":           key,
		"size_bytes":    fileHeader.Size,
		"content_type":  contentType,
		"evicted_count": evicted.DeletedCount,
		"freed_bytes":   evicted.FreedBytes,
	})
}

// DeleteObject removes one object from the bucket.
func (ctrl *Controller) DeleteObject(c *gin.Context) {
	ctx := c.Request.Context()
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		utils.JSON400(c, "object key is required")
		return
	}

	if err := ctrl.Repository.ObjectRepo.Delete(ctx, key); err != nil {
		utils.RespondError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Files] Deleted %s", key)
	utils.JSON200(c, gin.H{"message": "Object deleted", "key": key})
}
