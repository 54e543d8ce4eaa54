package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"

	"github.com/dojoworks/dojosite/cms/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (a *API) listImages(c *gin.Context) {
	records, err := a.images.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (a *API) createImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	defer file.Close()

	if header.Size > a.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, a.maxUpload))
	if err != nil {
		respondError(c, err)
		return
	}

	spec := domain.EditSpec{Filters: domain.NeutralFilters()}
	if raw := c.PostForm("editOptions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid edit options"})
			return
		}
	}

	record, err := a.images.Create(data, header.Filename, spec)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "image": record})
}

func (a *API) deleteImage(c *gin.Context) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("id")
	}
	id, ok := parseID(c, raw)
	if !ok {
		return
	}

	if err := a.images.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func parseID(c *gin.Context, raw string) (int64, bool) {
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
