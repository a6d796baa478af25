package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	devMode bool
	logger  = slog.Default()
)

// Configure sets the handler package's error reporting behavior. In
// development mode 500 responses include the underlying error message;
// in production they carry only the generic one.
func Configure(development bool, l *slog.Logger) {
	devMode = development
	if l != nil {
		logger = l
	}
}

func internalError(c *gin.Context, err error, message string) {
	logger.Error(message,
		slog.String("path", c.FullPath()),
		slog.Any("error", err))

	body := gin.H{"error": message}
	if devMode {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// queryInt reads an integer query parameter with a default.
func queryInt(c *gin.Context, name string, def int) int {
	if v := c.Query(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
