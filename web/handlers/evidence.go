package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guardlink.com.au/guardlink/infrastructure/filesystem"
	web "guardlink.com.au/guardlink/web/common"
)

const DefaultEvidenceBucket = "guardlink-evidence"

func evidenceBucket() string {
	if bucket := os.Getenv("GUARDLINK_EVIDENCE_BUCKET"); bucket != "" {
		return bucket
	}
	return DefaultEvidenceBucket
}

var evidenceContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// UploadEvidenceHandler accepts book-on/off photos and stores them
// under opaque keys. Only the key is ever written to the database, so
// rows never carry a guessable path.
func UploadEvidenceHandler(c *gin.Context) {
	// Parse multipart form (max 20 MB)
	if err := c.Request.ParseMultipartForm(20 << 20); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}

	form := c.Request.MultipartForm
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("No files provided"))
		return
	}

	keys := []string{}

	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		contentType, ok := evidenceContentTypes[ext]
		if !ok {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse(fmt.Sprintf("Unsupported file type %s", ext)))
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}

		key := uuid.NewString() + ext
		err = filesystem.StoreFile(c.Request.Context(), evidenceBucket(), key, contentType, src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}

		keys = append(keys, key)
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"keys": keys}))
}

// DownloadEvidenceHandler streams a stored photo back for review.
func DownloadEvidenceHandler(c *gin.Context) {
	key := c.Param("key")
	if key == "" || strings.Contains(key, "/") {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid key"))
		return
	}

	var buf bytes.Buffer
	contentType, err := filesystem.ReadFile(c.Request.Context(), evidenceBucket(), key, &buf)
	if err != nil {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("Evidence not found"))
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Data(http.StatusOK, contentType, buf.Bytes())
}
