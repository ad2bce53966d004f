package service

import (
	"bytes"
	"context"
	"fmt"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/util"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// 导出格式
const (
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// ExportRequest 学习指南导出的输入：视频 + 字幕 + 分析 + 用户笔记
type ExportRequest struct {
	Video      model.VideoInfo     `json:"video" binding:"required"`
	Transcript model.Transcript    `json:"transcript"`
	Analysis   model.VideoAnalysis `json:"analysis"`
	UserNotes  string              `json:"userNotes"`
	Format     string              `json:"format" binding:"required"`
}

// ExportResult 生成的文档与存储地址
type ExportResult struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	URL         string `json:"url"`
	Size        int    `json:"size"`
}

// ExportService 把学习指南渲染为 Markdown 或 PDF 并交给存储层
type ExportService struct {
	storage *StorageService
}

func NewExportService(storage *StorageService) *ExportService {
	return &ExportService{storage: storage}
}

func (s *ExportService) Export(ctx context.Context, req *ExportRequest) (*ExportResult, error) {
	var data []byte
	var contentType, ext string

	switch req.Format {
	case FormatMarkdown:
		data = []byte(RenderMarkdown(req))
		contentType = "text/markdown"
		ext = "md"
	case FormatPDF:
		pdfData, err := RenderPDF(req)
		if err != nil {
			return nil, err
		}
		data = pdfData
		contentType = "application/pdf"
		ext = "pdf"
	default:
		return nil, util.ErrUnsupportedFormat
	}

	filename := fmt.Sprintf("study-guide-%s-%d.%s", sanitizeFilename(req.Video.ID), time.Now().Unix(), ext)
	url, err := s.storage.Upload(ctx, filename, data, contentType)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Filename:    filename,
		ContentType: contentType,
		URL:         url,
		Size:        len(data),
	}, nil
}

// RenderMarkdown 拼接 Markdown 学习指南
func RenderMarkdown(req *ExportRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Study Guide: %s\n\n", req.Video.Title)
	if req.Video.Creator != "" {
		fmt.Fprintf(&b, "**Creator:** %s\n\n", req.Video.Creator)
	}
	if req.Video.URL != "" {
		fmt.Fprintf(&b, "**Source:** %s\n\n", req.Video.URL)
	}

	if req.Analysis.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(req.Analysis.Summary)
		b.WriteString("\n\n")
	}

	if len(req.Analysis.KeyLearnings) > 0 {
		b.WriteString("## Key Learnings\n\n")
		for _, item := range req.Analysis.KeyLearnings {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}

	if len(req.Analysis.Highlights) > 0 {
		b.WriteString("## Highlights\n\n")
		for _, h := range req.Analysis.Highlights {
			fmt.Fprintf(&b, "- **[%s]** %s", h.Timestamp, h.Reason)
			if len(h.Concepts) > 0 {
				fmt.Fprintf(&b, " _(%s)_", strings.Join(h.Concepts, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(req.Analysis.Prerequisites) > 0 {
		b.WriteString("## Prerequisites\n\n")
		for _, item := range req.Analysis.Prerequisites {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}

	if len(req.Analysis.NextSteps) > 0 {
		b.WriteString("## Next Steps\n\n")
		for _, item := range req.Analysis.NextSteps {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		b.WriteString("\n")
	}

	if req.UserNotes != "" {
		b.WriteString("## My Notes\n\n")
		b.WriteString(req.UserNotes)
		b.WriteString("\n\n")
	}

	if req.Transcript.Available && len(req.Transcript.Segments) > 0 {
		b.WriteString("## Transcript\n\n")
		b.WriteString(req.Transcript.FullText())
		b.WriteString("\n")
	}

	return b.String()
}

// RenderPDF 生成 PDF 学习指南
func RenderPDF(req *ExportRequest) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, "Study Guide: "+req.Video.Title, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	if req.Video.Creator != "" {
		pdf.MultiCell(0, 5, "Creator: "+req.Video.Creator, "", "L", false)
	}
	if req.Video.URL != "" {
		pdf.MultiCell(0, 5, "Source: "+req.Video.URL, "", "L", false)
	}
	pdf.Ln(4)

	writeSection := func(title string, lines []string) {
		if len(lines) == 0 {
			return
		}
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, title, "", "L", false)
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 10)
		for _, line := range lines {
			pdf.MultiCell(0, 5, line, "", "L", false)
		}
		pdf.Ln(3)
	}

	if req.Analysis.Summary != "" {
		writeSection("Summary", []string{req.Analysis.Summary})
	}

	if len(req.Analysis.KeyLearnings) > 0 {
		lines := make([]string, len(req.Analysis.KeyLearnings))
		for i, item := range req.Analysis.KeyLearnings {
			lines[i] = "- " + item
		}
		writeSection("Key Learnings", lines)
	}

	if len(req.Analysis.Highlights) > 0 {
		lines := make([]string, len(req.Analysis.Highlights))
		for i, h := range req.Analysis.Highlights {
			lines[i] = fmt.Sprintf("[%s] %s", h.Timestamp, h.Reason)
		}
		writeSection("Highlights", lines)
	}

	if len(req.Analysis.Prerequisites) > 0 {
		lines := make([]string, len(req.Analysis.Prerequisites))
		for i, item := range req.Analysis.Prerequisites {
			lines[i] = "- " + item
		}
		writeSection("Prerequisites", lines)
	}

	if len(req.Analysis.NextSteps) > 0 {
		lines := make([]string, len(req.Analysis.NextSteps))
		for i, item := range req.Analysis.NextSteps {
			lines[i] = "- " + item
		}
		writeSection("Next Steps", lines)
	}

	if req.UserNotes != "" {
		writeSection("My Notes", []string{req.UserNotes})
	}

	if req.Transcript.Available && len(req.Transcript.Segments) > 0 {
		writeSection("Transcript", []string{req.Transcript.FullText()})
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
