package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agrisight/internal/domain/entity"
)

// postChat — вопрос ИИ-агроному в контексте конкретного снимка.
func (s *Server) postChat(c *gin.Context) {
	var req struct {
		ScanID   uint   `json:"scan_id" binding:"required"`
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scan_id and question are required"})
		return
	}

	answer, err := s.chat.Ask(c.Request.Context(), req.ScanID, req.Question)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scan not found"})
			return
		}
		if errors.Is(err, entity.ErrConfiguration) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Advisor is not configured"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Advisor unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// listChat — история переписки по снимку.
func (s *Server) listChat(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("scanID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scan id"})
		return
	}

	messages, err := s.chat.History(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat history"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
