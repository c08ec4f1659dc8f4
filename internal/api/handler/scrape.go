package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hleung/imagehound/internal/domain"
	"github.com/hleung/imagehound/internal/scraper"
)

// ScrapeHandler handles scrape job endpoints.
type ScrapeHandler struct {
	service *scraper.Service
}

// NewScrapeHandler creates a new scrape handler.
// Parameters:
//   - service: scrape service instance.
// Returns:
//   - *ScrapeHandler: initialized handler.
func NewScrapeHandler(service *scraper.Service) *ScrapeHandler {
	return &ScrapeHandler{service: service}
}

// ScrapeRequest represents the scrape API request.
type ScrapeRequest struct {
	SearchTerm string `json:"searchTerm" binding:"required"`
	NumImages  int    `json:"numImages" binding:"omitempty,min=1"`
	FolderName string `json:"folderName"`
}

// ScrapeResponse represents the scrape API response.
type ScrapeResponse struct {
	JobID      string `json:"jobId"`
	Status     string `json:"status"`
	FolderPath string `json:"folderPath"`
}

// StatusResponse represents a job status snapshot.
type StatusResponse struct {
	JobID         string `json:"jobId"`
	Status        string `json:"status"`
	ImagesScraped int    `json:"imagesScraped"`
	TotalImages   int    `json:"totalImages"`
	FolderPath    string `json:"folderPath"`
	Error         string `json:"error,omitempty"`
}

// StartScrape handles POST /scrape.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ScrapeHandler) StartScrape(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	job, err := h.service.Create(c.Request.Context(), req.SearchTerm, req.NumImages, req.FolderName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to start scraping: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ScrapeResponse{
		JobID:      job.ID,
		Status:     string(job.Status),
		FolderPath: job.FolderPath,
	})
}

// GetStatus handles GET /status/:jobId.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ScrapeHandler) GetStatus(c *gin.Context) {
	job, err := h.service.Status(c.Param("jobId"))
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, StatusResponse{
		JobID:         job.ID,
		Status:        string(job.Status),
		ImagesScraped: job.ImagesScraped,
		TotalImages:   job.TotalImages,
		FolderPath:    job.FolderPath,
		Error:         job.ErrorLog,
	})
}

// CancelJob handles DELETE /cancel/:jobId.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ScrapeHandler) CancelJob(c *gin.Context) {
	err := h.service.Cancel(c.Param("jobId"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Job cancelled successfully"})
	case errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	case errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Job cannot be cancelled in its current state"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
