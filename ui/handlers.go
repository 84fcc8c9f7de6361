package ui

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"datasentry/domain/core"
	"datasentry/domain/quality"
	"datasentry/internal/dataset"
	"datasentry/internal/errors"
	"datasentry/internal/export"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	Type string `json:"type"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleUpload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		s.respondError(c, errors.New(errors.CodeNoFile, "No file uploaded. Please select a CSV file to upload."))
		return
	}

	file, err := header.Open()
	if err != nil {
		s.respondError(c, &errors.AppError{Code: errors.CodeReadError, Message: "Unable to read the uploaded file.", Cause: err})
		return
	}
	defer file.Close()

	ds, err := s.processor.ProcessUpload(c.Request.Context(), dataset.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		MimeType: header.Header.Get("Content-Type"),
		Reader:   file,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	info := ds.Info(dataset.PreviewRows)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"fileId":  ds.ID,
		"message": "File uploaded and parsed successfully",
		"info":    info,
		"preview": info.Preview,
	})
}

func (s *Server) handleListFiles(c *gin.Context) {
	files, err := s.processor.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "files": files})
}

func (s *Server) handleFileInfo(c *gin.Context) {
	info, err := s.processor.GetInfo(c.Request.Context(), core.ID(c.Param("id")))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "info": info})
}

func (s *Server) handleDeleteFile(c *gin.Context) {
	if err := s.processor.Delete(c.Request.Context(), core.ID(c.Param("id"))); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted successfully"})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	// an empty body, sized or chunked, means type auto
	var req analyzeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
			s.respondError(c, errors.InvalidInput("request body must be JSON: "+err.Error()))
			return
		}
	}

	result, err := s.service.Analyze(c.Request.Context(), core.ID(c.Param("id")), quality.ParseDatasetType(req.Type))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	result, err := s.service.Result(c.Request.Context(), core.ID(c.Param("id")))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSummaries(c *gin.Context) {
	summaries, err := s.service.Summaries(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "summaries": summaries})
}

func (s *Server) handleReport(c *gin.Context) {
	format, err := export.ParseReportFormat(c.Query("format"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	report, err := s.service.Report(c.Request.Context(), core.ID(c.Param("id")))
	if err != nil {
		s.respondError(c, err)
		return
	}

	content, contentType, filename := report.Render(format)
	if format == export.ReportText {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	c.Data(http.StatusOK, contentType, []byte(content))
}

func (s *Server) handleExport(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	preview, _ := strconv.ParseBool(c.DefaultQuery("preview", "false"))

	out, err := s.service.Export(c.Request.Context(), core.ID(c.Param("id")), export.Options{Format: format, Preview: preview})
	if err != nil {
		s.respondError(c, err)
		return
	}

	if !preview {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	}
	c.Header("X-Row-Count", strconv.Itoa(out.Rows))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

func (s *Server) handleInsights(c *gin.Context) {
	insights, err := s.service.Insights(c.Request.Context(), core.ID(c.Param("id")))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "insights": insights})
}
