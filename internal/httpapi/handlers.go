package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/UnknownOlympus/treemap/internal/geocoding"
	"github.com/UnknownOlympus/treemap/internal/service"
	"github.com/UnknownOlympus/treemap/internal/treeform"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type handler struct {
	log     *slog.Logger
	trees   TreeAdder
	locator Locator
}

func (h *handler) addTree(c *gin.Context) {
	ctx := c.Request.Context()

	editor := strings.TrimSpace(c.GetHeader(HeaderRemoteUser))
	if editor == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var in treeform.Input
	if err := c.ShouldBindWith(&in, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed form body"})
		return
	}

	tree, target, err := h.trees.AddTree(ctx, in, editor)
	if err != nil {
		var (
			fieldErrs treeform.FieldErrors
			vErr      *treeform.ValidationError
		)
		switch {
		case errors.As(err, &fieldErrs):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"fields": fieldErrs})
		case errors.As(err, &vErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Message, "kind": vErr.Kind})
		case errors.Is(err, service.ErrUnknownEditor):
			c.JSON(http.StatusForbidden, gin.H{"error": "unknown user"})
		default:
			h.log.ErrorContext(ctx, "Failed to add tree", "editor", editor, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": tree.ID, "target": target})
}

func (h *handler) geocode(c *gin.Context) {
	loc, err := h.locator.Locate(c.Request.Context(), c.Query("address"))
	switch {
	case errors.Is(err, service.ErrEmptyAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, geocoding.ErrNoMatch):
		c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "geocoding failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"latitude":             loc.Latitude,
		"longitude":            loc.Longitude,
		"initial_map_location": loc.InitialMapLocation,
	})
}
