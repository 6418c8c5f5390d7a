// Package httpapi exposes tree entry and address lookup over HTTP.
package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/UnknownOlympus/treemap/internal/models"
	"github.com/UnknownOlympus/treemap/internal/service"
	"github.com/UnknownOlympus/treemap/internal/treeform"
	"github.com/gin-gonic/gin"
)

// HeaderRemoteUser carries the username authenticated by the upstream proxy.
const HeaderRemoteUser = "X-Remote-User"

// TreeAdder saves tree submissions.
type TreeAdder interface {
	AddTree(ctx context.Context, in treeform.Input, editor string) (*models.Tree, treeform.Target, error)
}

// Locator geocodes form addresses.
type Locator interface {
	Locate(ctx context.Context, address string) (*service.Location, error)
}

// NewRouter builds the API router with request ID, access log and recovery
// middleware installed.
func NewRouter(log *slog.Logger, trees TreeAdder, locator Locator) *gin.Engine {
	router := gin.New()
	router.Use(requestID(), accessLog(log), recovery(log))

	h := &handler{log: log, trees: trees, locator: locator}
	api := router.Group("/api")
	{
		api.POST("/trees", h.addTree)
		api.GET("/geocode", h.geocode)
	}

	return router
}

// NewServer wraps handler in an http.Server listening on port.
func NewServer(port int, handler http.Handler) *http.Server {
	const (
		readTimeout  = 10 * time.Second
		writeTimeout = 30 * time.Second
	)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
}
