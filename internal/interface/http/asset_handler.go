package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/go-employee-directory/internal/domain/repository"
	"github.com/oksasatya/go-employee-directory/pkg/response"
)

// AssetHandler serves stored profile pictures publicly.
type AssetHandler struct {
	Store  repo.AssetStore
	Logger *logrus.Logger
}

func NewAssetHandler(store repo.AssetStore, logger *logrus.Logger) *AssetHandler {
	return &AssetHandler{Store: store, Logger: logger}
}

// Serve GET /uploads/:filename
func (h *AssetHandler) Serve(c *gin.Context) {
	rc, contentType, err := h.Store.Open(c.Request.Context(), c.Param("filename"))
	if err != nil {
		if errors.Is(err, repo.ErrAssetNotFound) || errors.Is(err, repo.ErrInvalidFilename) {
			response.Error(c, http.StatusNotFound, "File not found.", nil)
			return
		}
		internalError(c, h.Logger, err, "open asset failed")
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Cache-Control":          "public, max-age=86400",
		"X-Content-Type-Options": "nosniff",
	})
}
