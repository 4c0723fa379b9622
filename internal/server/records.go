package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/minhland/adhub/internal/models"
	"github.com/minhland/adhub/internal/sheet"
)

func (s *Server) handleListRecords(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email parameter"})
		return
	}

	positioned, err := s.Records.ListByEmail(c.Request.Context(), email)
	if err != nil {
		s.Logger.Error("Failed to list records", zap.String("email", email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch records"})
		return
	}

	records := make([]models.Record, 0, len(positioned))
	for _, p := range positioned {
		records = append(records, models.RecordFromFields(p.Position, p.Fields))
	}

	c.JSON(http.StatusOK, records)
}

func (s *Server) handleCreateRecord(c *gin.Context) {
	var record models.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if record.AdID == "" {
		record.AdID = uuid.NewString()
	}

	position, err := s.Records.Append(c.Request.Context(), record.Fields())
	if err != nil {
		s.Logger.Error("Failed to append record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Record added successfully",
		"rowIndex": position,
		"adId":     record.AdID,
	})
}

type updateRecordRequest struct {
	RowIndex int               `json:"rowIndex"`
	Data     map[string]string `json:"data"`
}

func (s *Server) handleUpdateRecord(c *gin.Context) {
	var req updateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.Data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	err := s.Records.Update(c.Request.Context(), req.RowIndex, req.Data, true)
	if err != nil {
		if errors.Is(err, sheet.ErrInvalidPosition) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid row index"})
			return
		}
		s.Logger.Error("Failed to update record", zap.Int("rowIndex", req.RowIndex), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record updated successfully"})
}

type deleteRecordRequest struct {
	RowIndex int `json:"rowIndex"`
}

func (s *Server) handleDeleteRecord(c *gin.Context) {
	var req deleteRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := s.Records.Delete(c.Request.Context(), req.RowIndex)
	if err != nil {
		if errors.Is(err, sheet.ErrInvalidPosition) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid row index"})
			return
		}
		s.Logger.Error("Failed to delete record", zap.Int("rowIndex", req.RowIndex), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}
