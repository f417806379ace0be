package ui

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"topicreview/adapters/excel"
	"topicreview/internal/errors"
	"topicreview/internal/review"
	"topicreview/internal/theme"
	"topicreview/internal/topicstats"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// indexPage is the data behind index.html
type indexPage struct {
	Palette theme.Palette
	View    *review.View
	Error   string
}

func (s *Server) renderIndex(c *gin.Context, status int, sess *review.Session, message string) {
	page := indexPage{Palette: s.palette, Error: message}
	if v, err := sess.View(); err == nil {
		page.View = v
	}
	c.HTML(status, "index.html", page)
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderIndex(c, http.StatusOK, s.session(c), "")
}

// uploadSlack covers multipart boundaries and headers around the file itself
const uploadSlack = 64 << 10

// handleUpload loads a spreadsheet into the session. Parse and schema failures are
// reported on the page and leave the session ready for another upload.
func (s *Server) handleUpload(c *gin.Context) {
	sess := s.session(c)
	log := s.log.With("Upload")

	if s.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload+uploadSlack)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			log.Warn("request body over %d bytes", tooLarge.Limit)
			s.renderIndex(c, http.StatusRequestEntityTooLarge, sess, s.tooLargeMessage())
			return
		}
		log.Warn("no file in request: %v", err)
		s.renderIndex(c, http.StatusBadRequest, sess, "Choose a spreadsheet to upload.")
		return
	}
	defer file.Close()

	if s.maxUpload > 0 && header.Size > s.maxUpload {
		log.Warn("%s too large: %d bytes", header.Filename, header.Size)
		s.renderIndex(c, http.StatusRequestEntityTooLarge, sess, s.tooLargeMessage())
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		s.renderIndex(c, http.StatusBadRequest, sess, "Only Excel (.xlsx) files are accepted.")
		return
	}

	table, err := excel.LoadTopicTable(header.Filename, file)
	if err != nil {
		// A rejected upload replaces whatever was shown before
		sess.Clear()
		switch {
		case errors.IsParseError(err):
			s.renderIndex(c, http.StatusUnprocessableEntity, sess, fmt.Sprintf("Error reading Excel file: %v", stderrors.Unwrap(err)))
		case errors.IsSchemaError(err):
			s.renderIndex(c, http.StatusUnprocessableEntity, sess, err.Error()+".")
		default:
			log.Error("unexpected failure for %s: %v", header.Filename, err)
			s.renderIndex(c, http.StatusInternalServerError, sess, "The file could not be processed.")
		}
		return
	}

	sess.Load(header.Filename, table)
	log.Info("session %s loaded %s (%d records)", sess.ID, header.Filename, table.Len())
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) tooLargeMessage() string {
	return fmt.Sprintf("The upload exceeds the %.0f MB limit.", float64(s.maxUpload)/(1024*1024))
}

// handleSelect replaces the correct-topics selection with the submitted topic values
func (s *Server) handleSelect(c *gin.Context) {
	sess := s.session(c)

	var labels []string
	switch c.PostForm("action") {
	case "all":
		labels = sess.Topics()
	case "none":
		labels = nil
	default:
		labels = c.PostFormArray("topic")
	}

	if err := sess.Select(labels); err != nil {
		s.renderIndex(c, http.StatusConflict, sess, "Upload a spreadsheet first.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) currentView(c *gin.Context) (*review.View, bool) {
	v, err := s.session(c).View()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No spreadsheet loaded"})
		return nil, false
	}
	return v, true
}

func (s *Server) sendWorkbook(c *gin.Context, filename string, render func(*review.View, theme.Palette) ([]byte, error)) {
	v, ok := s.currentView(c)
	if !ok {
		return
	}
	data, err := render(v, s.palette)
	if err != nil {
		s.log.With("Download").Error("failed to build %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (s *Server) handleDownloadValidated(c *gin.Context) {
	s.sendWorkbook(c, review.ValidatedFilename, review.ValidatedWorkbook)
}

func (s *Server) handleDownloadOverview(c *gin.Context) {
	s.sendWorkbook(c, review.OverviewFilename, review.OverviewWorkbook)
}

func (s *Server) handleReviewJSON(c *gin.Context) {
	v, ok := s.currentView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, v)
}

// statsPage is the data behind stats.html
type statsPage struct {
	Palette theme.Palette
	Report  *topicstats.Report
	Body    template.HTML
}

func (s *Server) report(c *gin.Context) (*topicstats.Report, bool) {
	filename, table, err := s.session(c).Snapshot()
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return nil, false
	}
	report, err := topicstats.Compute(filename, table)
	if err != nil {
		s.log.With("Stats").Error("%v", err)
		c.String(http.StatusInternalServerError, "Failed to compute statistics")
		return nil, false
	}
	return report, true
}

func (s *Server) handleStats(c *gin.Context) {
	report, ok := s.report(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "stats.html", statsPage{
		Palette: s.palette,
		Report:  report,
		Body:    renderMarkdown(report.Markdown()),
	})
}

func (s *Server) handleStatsCharts(c *gin.Context) {
	report, ok := s.report(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := topicstats.RenderChartsHTML(&buf, report); err != nil {
		s.log.With("Stats").Error("chart rendering failed: %v", err)
		c.String(http.StatusInternalServerError, "Failed to render charts")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.store.Len()})
}

// renderMarkdown converts report Markdown to HTML. Raw HTML is dropped and only safe link schemes become links.
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML | html.Safelink})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}
