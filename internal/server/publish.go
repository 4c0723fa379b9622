package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minhland/adhub/internal/service"
)

func (s *Server) handlePublish(c *gin.Context) {
	var req service.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "error": err.Error()})
		return
	}

	response, err := s.Publisher.Publish(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid publish request", "error": err.Error()})
			return
		}
		// Channel failures are carried inside the response; an error here
		// means the summary write or the configuration failed.
		s.Logger.Error("Publish failed",
			zap.String("ad_id", req.AdID),
			zap.Int("rowIndex", req.RowIndex),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error publishing", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req service.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	adContent, err := s.Generator.Generate(c.Request.Context(), req)
	if err != nil {
		s.Logger.Error("Failed to generate ad content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate ad content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ad_content": adContent})
}

func (s *Server) handleListAudit(c *gin.Context) {
	recordID := c.Param("recordId")

	entries, err := s.Audit.List(c.Request.Context(), recordID)
	if err != nil {
		s.Logger.Error("Failed to list audit entries", zap.String("record_id", recordID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
