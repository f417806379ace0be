package ui

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"topicreview/domain/topics"
	"topicreview/internal"
	"topicreview/internal/review"
	"topicreview/internal/theme"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// client replays the session cookie across requests
type client struct {
	t      *testing.T
	server *Server
	cookie *http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	s, err := NewServer(Options{
		Store:          review.NewStore(time.Hour),
		Palette:        theme.ForName(theme.Light),
		MaxUploadBytes: 1 << 20,
		Logger:         internal.NewLogger(internal.LogLevelError),
	})
	require.NoError(t, err)
	return &client{t: t, server: s}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.server.Handler().ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie {
			c.cookie = ck
		}
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) upload(filename string, content []byte) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(c.t, err)
	_, err = part.Write(content)
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func (c *client) selectTopics(form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/select", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) review() *review.View {
	w := c.get("/api/review")
	require.Equal(c.t, http.StatusOK, w.Code)
	var v review.View
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &v))
	return &v
}

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func scenarioWorkbook(t *testing.T) []byte {
	return workbook(t, [][]interface{}{
		{"document", "Topic", "extra"},
		{"doc1", "A", 1},
		{"doc2", "B", 2},
		{"doc2", "A", 3},
	})
}

func TestIndexBeforeUpload(t *testing.T) {
	c := newClient(t)

	w := c.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Topic Validator")
	assert.NotContains(t, w.Body.String(), "Validated Data")
	require.NotNil(t, c.cookie)

	assert.Equal(t, http.StatusNotFound, c.get("/api/review").Code)
	assert.Equal(t, http.StatusNotFound, c.get("/download/validated").Code)
}

func TestUploadAndSelect(t *testing.T) {
	c := newClient(t)

	w := c.upload("topics.xlsx", scenarioWorkbook(t))
	require.Equal(t, http.StatusSeeOther, w.Code)

	v := c.review()
	assert.Equal(t, 3, v.Correct)
	assert.Equal(t, []review.TopicOption{{Label: "A", Selected: true}, {Label: "B", Selected: true}}, v.Topics)

	w = c.selectTopics(url.Values{"topic": {"A"}, "action": {"apply"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	v = c.review()
	var flags []bool
	for _, r := range v.Rows {
		flags = append(flags, r.IsCorrect)
	}
	assert.Equal(t, []bool{true, false, true}, flags)
	assert.Equal(t, []topics.SummaryRow{
		{Topic: "A", Count: 2, Percentage: 66.7, IsCorrect: true},
		{Topic: "B", Count: 1, Percentage: 33.3, IsCorrect: false},
	}, v.Summary)

	page := c.get("/")
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "background-color: #C6F6D5")
	assert.Contains(t, body, "background-color: #FED7D7")
	assert.Contains(t, body, "66.7")
}

func TestSelectActions(t *testing.T) {
	c := newClient(t)
	require.Equal(t, http.StatusSeeOther, c.upload("topics.xlsx", scenarioWorkbook(t)).Code)

	c.selectTopics(url.Values{"action": {"none"}})
	assert.Equal(t, 0, c.review().Correct)

	c.selectTopics(url.Values{"action": {"all"}})
	assert.Equal(t, 3, c.review().Correct)

	// Submitting no checkboxes clears the selection too
	c.selectTopics(url.Values{"action": {"apply"}})
	assert.Equal(t, 0, c.review().Correct)
}

func TestSelectWithoutUpload(t *testing.T) {
	c := newClient(t)

	w := c.selectTopics(url.Values{"topic": {"A"}})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Upload a spreadsheet first.")
}

func TestUploadSchemaError(t *testing.T) {
	c := newClient(t)
	data := workbook(t, [][]interface{}{{"document", "Label"}, {"doc1", "A"}})

	w := c.upload("labels.xlsx", data)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "does not have a &#39;Topic&#39; column")
	assert.Equal(t, http.StatusNotFound, c.get("/api/review").Code)

	// The session stays usable for a new upload
	require.Equal(t, http.StatusSeeOther, c.upload("topics.xlsx", scenarioWorkbook(t)).Code)
	assert.Equal(t, 3, c.review().Total)
}

func TestUploadParseError(t *testing.T) {
	c := newClient(t)

	w := c.upload("broken.xlsx", []byte("this is not a workbook"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Error reading Excel file")
	assert.Equal(t, http.StatusNotFound, c.get("/api/review").Code)
}

func TestUploadRejectsOtherExtensions(t *testing.T) {
	c := newClient(t)

	w := c.upload("topics.csv", []byte("document,Topic\n"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadTooLarge(t *testing.T) {
	c := newClient(t)

	w := c.upload("big.xlsx", bytes.Repeat([]byte("x"), 2<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestDownloads(t *testing.T) {
	c := newClient(t)
	require.Equal(t, http.StatusSeeOther, c.upload("topics.xlsx", scenarioWorkbook(t)).Code)
	c.selectTopics(url.Values{"topic": {"A"}})

	tests := []struct {
		path     string
		filename string
		sheet    string
		header   []string
	}{
		{"/download/validated", "validated_topics.xlsx", "Validated", []string{"document", "Topic"}},
		{"/download/overview", "topics_overview.xlsx", "Overview", []string{"Topic", "Count", "Percentage"}},
	}

	for _, tt := range tests {
		t.Run(tt.sheet, func(t *testing.T) {
			w := c.get(tt.path)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), tt.filename)

			f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
			require.NoError(t, err)
			defer f.Close()

			rows, err := f.GetRows(tt.sheet)
			require.NoError(t, err)
			require.NotEmpty(t, rows)
			assert.Equal(t, tt.header, rows[0])
		})
	}
}

func TestStatsPages(t *testing.T) {
	c := newClient(t)

	w := c.get("/stats")
	assert.Equal(t, http.StatusSeeOther, w.Code)

	require.Equal(t, http.StatusSeeOther, c.upload("topics.xlsx", scenarioWorkbook(t)).Code)

	w = c.get("/stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<table>")
	assert.Contains(t, w.Body.String(), "Topic statistics: topics.xlsx")

	w = c.get("/stats/charts")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Occurrences of Each Unique Topic")
}

func TestHealthAndStatic(t *testing.T) {
	c := newClient(t)

	w := c.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = c.get("/static/css/review.css")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRenderMarkdownDropsRawHTML(t *testing.T) {
	out := string(renderMarkdown("| Topic |\n|---|\n| <script>alert(1)</script> |\n"))
	assert.NotContains(t, out, "<script>")
}

func TestFailedUploadReplacesPreviousTable(t *testing.T) {
	c := newClient(t)
	require.Equal(t, http.StatusSeeOther, c.upload("topics.xlsx", scenarioWorkbook(t)).Code)

	w := c.upload("broken.xlsx", []byte("garbage"))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NotContains(t, w.Body.String(), "Validated Data")
	assert.Equal(t, http.StatusNotFound, c.get("/api/review").Code)
}

func TestStatsPageRendersLabelsAsText(t *testing.T) {
	c := newClient(t)
	data := workbook(t, [][]interface{}{
		{"document", "Topic"},
		{"d1", "[click](javascript:alert(1))"},
		{"d2", "**bold**"},
	})
	require.Equal(t, http.StatusSeeOther, c.upload("labels.xlsx", data).Code)

	w := c.get("/stats")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, `href="javascript:`)
	assert.Contains(t, body, "[click](javascript:alert(1))")
	assert.NotContains(t, body, "<strong>")
	assert.Contains(t, body, "**bold**")
}

func TestRenderMarkdownSafeLinks(t *testing.T) {
	out := string(renderMarkdown("[click](javascript:alert(1)) [docs](https://example.com)"))
	assert.NotContains(t, out, "javascript:alert(1)\"")
	assert.Contains(t, out, `href="https://example.com"`)
}

// countingReader records how much of a request body the server consumed
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func TestUploadTooLargeStopsReadingAtLimit(t *testing.T) {
	c := newClient(t)
	const limit = 1 << 20

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "big.xlsx")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 8*limit))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	total := int64(body.Len())

	counter := &countingReader{r: &body}
	req := httptest.NewRequest(http.MethodPost, "/upload", counter)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := c.do(req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "exceeds the 1 MB limit")
	assert.LessOrEqual(t, counter.n, int64(limit+uploadSlack+1))
	assert.Less(t, counter.n, total)
}
