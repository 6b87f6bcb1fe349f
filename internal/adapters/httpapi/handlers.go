package httpapi

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mailguard/mail-guardian/internal/core"
	"github.com/mailguard/mail-guardian/internal/metrics"
)

type headerRequest struct {
	Header string `json:"header" binding:"required"`
}

type textRequest struct {
	Text string `json:"text" binding:"required"`
}

// analysisResponse mirrors the historical response shape of the
// service, with mode and echoed text added.
type analysisResponse struct {
	Mode             string   `json:"mode"`
	Subject          string   `json:"subject"`
	From             string   `json:"from"`
	To               string   `json:"to"`
	Date             string   `json:"date"`
	Risk             string   `json:"risk"`
	Score            int      `json:"score"`
	Reasons          []string `json:"reasons"`
	DomainReputation string   `json:"domain_reputation"`
	DomainNote       string   `json:"domain_note"`
	Text             string   `json:"text,omitempty"`
	CheckedAt        string   `json:"checked_at"`
}

func toResponse(result *core.AnalysisResult) analysisResponse {
	return analysisResponse{
		Mode:             string(result.Mode),
		Subject:          result.Fields.Subject,
		From:             result.Fields.Sender,
		To:               result.Fields.Receiver,
		Date:             result.Fields.Date,
		Risk:             string(result.Risk),
		Score:            result.Score,
		Reasons:          result.RenderedReasons(),
		DomainReputation: string(result.Reputation.Tier),
		DomainNote:       result.Reputation.Note,
		Text:             result.Text,
		CheckedAt:        result.CheckedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "Mail Guardian backend running"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleAnalyzeAuto handles POST /analyze
func (s *Server) handleAnalyzeAuto(c *gin.Context) {
	var req headerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field 'header' is required"})
		return
	}

	c.JSON(http.StatusOK, toResponse(s.service.Analyze(req.Header)))
}

// handleAnalyzeHeader handles POST /analyze/header
func (s *Server) handleAnalyzeHeader(c *gin.Context) {
	var req headerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field 'header' is required"})
		return
	}

	c.JSON(http.StatusOK, toResponse(s.service.AnalyzeHeader(req.Header)))
}

// handleAnalyzeText handles POST /analyze/text
func (s *Server) handleAnalyzeText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field 'text' is required"})
		return
	}

	c.JSON(http.StatusOK, toResponse(s.service.AnalyzeText(req.Text)))
}

// handleAnalyzeUpload handles POST /analyze/upload
func (s *Server) handleAnalyzeUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart file field 'file' is required"})
		return
	}

	if s.cfg.MaxUploadBytes > 0 && fileHeader.Size > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "uploaded file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		s.logger.Warn("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		s.logger.Warn("Failed to read uploaded file", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	metrics.UploadBytes.Observe(float64(len(data)))

	c.JSON(http.StatusOK, toResponse(s.service.AnalyzeBytes(data)))
}
