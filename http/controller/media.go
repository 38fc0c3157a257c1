package controller

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tranvu/cinesync/utils"
)

// Video container types are forced by extension so the browser always gets a
// playable content type, whatever was recorded at upload time.
var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".ogv":  "video/ogg",
	".ts":   "video/mp2t",
}

func resolveContentType(key, stored string) string {
	if ct, ok := videoContentTypes[strings.ToLower(path.Ext(key))]; ok {
		return ct
	}
	if stored != "" {
		return stored
	}
	return "application/octet-stream"
}

// parseRange parses a "bytes=start-end" header against the object size.
// A satisfiability failure is reported as RangeNotSatisfiableError; end is
// clamped to size-1 when omitted or beyond bounds.
func parseRange(header string, size int64) (start, end int64, err error) {
	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return 0, 0, &utils.RangeNotSatisfiableError{TotalSize: size}
	}
	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return 0, 0, &utils.RangeNotSatisfiableError{TotalSize: size}
	}

	start, parseErr := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if parseErr != nil || start < 0 || start >= size {
		return 0, 0, &utils.RangeNotSatisfiableError{TotalSize: size}
	}

	end = size - 1
	if trimmed := strings.TrimSpace(endStr); trimmed != "" {
		if parsed, parseErr := strconv.ParseInt(trimmed, 10, 64); parseErr == nil {
			end = parsed
		}
	}
	if end < start {
		return 0, 0, &utils.RangeNotSatisfiableError{TotalSize: size}
	}
	if end > size-1 {
		end = size - 1
	}
	return start, end, nil
}

// ServeMedia streams a stored object, honoring byte-range requests so video
// players can seek.
func (ctrl *Controller) ServeMedia(c *gin.Context) {
	ctx := c.Request.Context()
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		utils.JSON400(c, "object key is required")
		return
	}

	obj, err := ctrl.Repository.ObjectRepo.Stat(ctx, key)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	contentType := resolveContentType(key, obj.ContentType)
	c.Header("Accept-Ranges", "bytes")
	c.Header("Content-Type", contentType)

	rangeHeader := c.GetHeader("Range")
	if rangeHeader == "" {
		reader, err := ctrl.Repository.ObjectRepo.OpenRange(ctx, key, 0, -1)
		if err != nil {
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Media] Failed to open %s", key)
			utils.JSON500(c, "Failed to read object")
			return
		}
		defer reader.Close()

		// stored media is immutable: a key is never overwritten in place
		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.Header("Content-Length", strconv.FormatInt(obj.SizeBytes, 10))
		c.Status(http.StatusOK)
		_, _ = io.Copy(c.Writer, reader)
		return
	}

	start, end, err := parseRange(rangeHeader, obj.SizeBytes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	reader, err := ctrl.Repository.ObjectRepo.OpenRange(ctx, key, start, end)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Media] Failed to open range %d-%d of %s", start, end, key)
		utils.JSON500(c, "Failed to read object")
		return
	}
	defer reader.Close()

	c.Header("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, obj.SizeBytes))
	c.Header("Content-Length", strconv.FormatInt(end-start+1, 10))
	c.Status(http.StatusPartialContent)
	_, _ = io.Copy(c.Writer, reader)
}
