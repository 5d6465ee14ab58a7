package handlers

import (
	"context"
	"net/http"

	"promfeed/internal/feed"
	"promfeed/internal/logger"

	"github.com/gin-gonic/gin"
)

// RunIDHeader carries the id of the generation run that produced a response.
const RunIDHeader = "X-Feed-Run-ID"

type FeedGenerator interface {
	Generate(ctx context.Context, override feed.Override) (feed.Result, error)
}

type FeedHandler struct {
	generator FeedGenerator
	logger    *logger.Logger
}

func NewFeedHandler(generator FeedGenerator, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		generator: generator,
		logger:    logger,
	}
}

// Get runs the pipeline and streams the document. The dialect and mode query
// parameters override the configured values for this request only.
func (h *FeedHandler) Get(c *gin.Context) {
	override, err := feed.ParseOverride(c.Query("dialect"), c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.generator.Generate(c.Request.Context(), override)
	c.Header(RunIDHeader, res.RunID)
	if err != nil {
		h.logger.Error("Feed run %s failed: %v", res.RunID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "Failed to generate feed",
			"run_id": res.RunID,
		})
		return
	}

	c.Data(http.StatusOK, "application/xml; charset=utf-8", res.Data)
}
