package web

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"agrisight/internal/domain/entity"
)

// Разрешённые расширения для загрузки через браузер.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// deviceScan принимает кадр с камеры ESP32 и прогоняет его через
// весь конвейер анализа.
func (s *Server) deviceScan(c *gin.Context) {
	var req struct {
		Image    string `json:"image" binding:"required"`
		CropType string `json:"crop_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image field is required"})
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base64 image"})
		return
	}

	name := "esp32_" + uuid.New().String() + ".jpg"

	rec, err := s.intake.Submit(c.Request.Context(), raw, name, req.CropType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scan_id":    rec.ID,
		"status":     rec.Status,
		"disease":    rec.DiseaseLabel,
		"confidence": rec.Confidence,
	})
}

// upload сохраняет файл из формы и создаёт запись без анализа.
func (s *Server) upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	name := uuid.New().String() + ext

	rec, err := s.intake.Upload(c.Request.Context(), raw, name, c.PostForm("crop_type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Upload successful",
		"scan_id":   rec.ID,
		"status":    rec.Status,
		"image_url": "/api/download/" + rec.ImagePath,
	})
}

// analyze запускает фильтр и определение болезни для загруженного снимка.
func (s *Server) analyze(c *gin.Context) {
	var req struct {
		ScanID   uint   `json:"scan_id" binding:"required"`
		CropType string `json:"crop_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scan_id is required"})
		return
	}

	rec, err := s.intake.Analyze(c.Request.Context(), req.ScanID, req.CropType)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (s *Server) listScans(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	scans, err := s.gallery.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch scans"})
		return
	}

	c.JSON(http.StatusOK, scans)
}

func (s *Server) deleteScan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scan id"})
		return
	}

	if err := s.gallery.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Scan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Scan deleted"})
}

// download отдаёт артефакт изображения из хранилища.
func (s *Server) download(c *gin.Context) {
	name := c.Param("filename")

	data, err := s.gallery.Download(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	contentType := "image/jpeg"
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".webp":
		contentType = "image/webp"
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", filepath.Base(name)))
	c.Data(http.StatusOK, contentType, data)
}
