package controller

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap_api/internal/model"
	"github.com/skillswap/skillswap_api/internal/pdftext"
	"github.com/skillswap/skillswap_api/internal/service"
)

// maxTranscriptSize is the upload gate for transcript PDFs.
const maxTranscriptSize = 10 << 20

type TranscriptController struct {
	transcripts *service.TranscriptService
}

func NewTranscriptController(transcripts *service.TranscriptService) *TranscriptController {
	return &TranscriptController{transcripts: transcripts}
}

// Ingest handles POST /transcripts/ingest (multipart: file + email).
// The PDF/type/size gate lives here at the upload boundary; the pipeline
// only sees raw text.
func (c *TranscriptController) Ingest(ctx *gin.Context) {
	email := ctx.PostForm("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if header.Size > maxTranscriptSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds 10MB limit"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "file must be a PDF"})
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not open uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxTranscriptSize+1))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}

	rawText, err := pdftext.Extract(data)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not parse PDF, please upload a text-based PDF"})
		return
	}

	result, summary, err := c.transcripts.Ingest(ctx.Request.Context(), email, header.Filename, data, rawText)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"ok":                 true,
		"summary":            summary,
		"eligibleCourses":    result.Eligible,
		"nonEligibleCourses": result.NonEligible,
	})
}

// AddSelectedCourses handles POST /transcripts/add-selected-courses.
func (c *TranscriptController) AddSelectedCourses(ctx *gin.Context) {
	type Request struct {
		Email   string                   `json:"email" binding:"required"`
		Courses []service.SelectedCourse `json:"courses" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	courses, err := c.transcripts.AddSelectedCourses(ctx.Request.Context(), req.Email, req.Courses)
	if err != nil {
		fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "courses": courses})
}

// ListCourses handles GET /courses?email=.
func (c *TranscriptController) ListCourses(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	courses, err := c.transcripts.ListCourses(ctx.Request.Context(), email)
	if err != nil {
		fail(ctx, err)
		return
	}
	if courses == nil {
		courses = []*model.UserCourse{}
	}

	ctx.JSON(http.StatusOK, courses)
}
