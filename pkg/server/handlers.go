package server

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ajxudir/skillsearch/pkg/config"
	"github.com/ajxudir/skillsearch/pkg/display"
	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/filtering"
	"github.com/ajxudir/skillsearch/pkg/output"
	"github.com/ajxudir/skillsearch/pkg/session"
	"github.com/ajxudir/skillsearch/pkg/table"
)

// contentTypes maps export formats to response content types.
var contentTypes = map[output.Format]string{
	output.FormatCSV:  "text/csv; charset=utf-8",
	output.FormatJSON: "application/json; charset=utf-8",
	output.FormatXML:  "application/xml; charset=utf-8",
	output.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Handlers serves the session API.
type Handlers struct {
	store       *session.Store
	maxUpload   int64
	previewRows int
}

// NewHandlers creates handlers over store with limits from cfg.
func NewHandlers(store *session.Store, cfg *config.Config) *Handlers {
	return &Handlers{
		store:       store,
		maxUpload:   cfg.GetMaxUploadSize(),
		previewRows: cfg.GetPreviewRows(),
	}
}

// RegisterRoutes mounts the session API on api.
func (h *Handlers) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/uploads", h.Upload)

	sessions := api.Group("/sessions")
	{
		sessions.GET("/:id", h.GetSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.GET("/:id/skills", h.Skills)
		sessions.POST("/:id/search", h.Search)
		sessions.POST("/:id/reset", h.Reset)
		sessions.GET("/:id/export", h.Export)
	}
}

// UploadView is returned after a successful upload.
type UploadView struct {
	SessionID string                `json:"session_id"`
	FileName  string                `json:"file_name"`
	Rows      int                   `json:"rows"`
	Columns   []string              `json:"columns"`
	Preview   []output.ResultRow    `json:"preview"`
	Summary   output.PreviewSummary `json:"summary"`
	Skills    []string              `json:"skills"`
	Warnings  []string              `json:"warnings,omitempty"`
	Cached    bool                  `json:"cached"`
	Message   string                `json:"message"`
}

// SessionView describes a session.
type SessionView struct {
	SessionID string   `json:"session_id"`
	State     string   `json:"state"`
	FileName  string   `json:"file_name,omitempty"`
	Rows      int      `json:"rows"`
	Mode      string   `json:"mode"`
	ID        string   `json:"id,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Results   *int     `json:"results,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// SearchRequest is the body of a search.
//
// Fields:
//   - ID: Exact identifier; blank disables the ID filter
//   - Skills: Selected skills, OR-combined; empty disables the skill filter
//   - Mode: Optional matching mode for this and later searches
type SearchRequest struct {
	ID     string   `json:"id"`
	Skills []string `json:"skills"`
	Mode   string   `json:"mode"`
}

// Upload loads a multipart file into a new session, or into the session
// named by the optional session_id form field. Re-uploading identical bytes
// into the same session reuses the parsed table.
func (h *Handlers) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, CodeNoFile, "Upload a CSV or xlsx file in the \"file\" field")
		return
	}
	defer file.Close()

	if h.maxUpload > 0 && header.Size > h.maxUpload {
		errorResponse(c, CodeTooLarge, fmt.Sprintf("File too large, the limit is %d bytes", h.maxUpload))
		return
	}

	data, err := table.ReadAll(header.Filename, file, h.maxUpload)
	if err != nil {
		errorResponse(c, CodeLoadFailed, display.ForError(err).Text)
		return
	}

	sess, created := h.sessionFor(c)
	if sess == nil {
		return
	}

	t, cached, err := sess.Load(header.Filename, data)
	if err != nil {
		if created {
			h.store.Delete(sess.ID())
		}
		code := CodeLoadFailed
		if errors.IsEmptyTable(err) {
			code = CodeEmptyTable
		}
		errorResponse(c, code, display.ForError(err).Text)
		return
	}

	preview := output.NewPreviewResult(t, h.previewRows)
	msg := display.Loaded(t)
	success(c, UploadView{
		SessionID: sess.ID(),
		FileName:  t.Source,
		Rows:      t.Len(),
		Columns:   preview.Columns,
		Preview:   preview.Rows,
		Summary:   preview.Summary,
		Skills:    t.Vocabulary(),
		Warnings:  preview.Warnings,
		Cached:    cached,
		Message:   msg.Text,
	})
}

// sessionFor returns the session named by the session_id form field, or a
// new one. It writes a 404 and returns nil for an unknown id.
func (h *Handlers) sessionFor(c *gin.Context) (*session.Session, bool) {
	id := c.PostForm("session_id")
	if id == "" {
		return h.store.Create(), true
	}
	sess, ok := h.store.Get(id)
	if !ok {
		notFound(c, "session not found")
		return nil, false
	}
	return sess, false
}

// lookup writes a 404 and returns nil when the :id session is unknown.
func (h *Handlers) lookup(c *gin.Context) *session.Session {
	sess, ok := h.store.Get(c.Param("id"))
	if !ok {
		notFound(c, "session not found")
		return nil
	}
	return sess
}

// GetSession describes a session.
func (h *Handlers) GetSession(c *gin.Context) {
	sess := h.lookup(c)
	if sess == nil {
		return
	}
	success(c, newSessionView(sess))
}

func newSessionView(sess *session.Session) SessionView {
	crit := sess.Criteria()
	v := SessionView{
		SessionID: sess.ID(),
		State:     sess.State(),
		Mode:      sess.MatchMode(),
		ID:        crit.ID,
		Skills:    crit.Skills,
	}
	if t := sess.Table(); t != nil {
		v.FileName = t.Source
		v.Rows = t.Len()
	}
	if res := sess.LastResult(); res != nil {
		n := res.Len()
		v.Results = &n
	}
	if err := sess.LastError(); err != nil {
		v.Error = display.ForError(err).Text
	}
	return v
}

// DeleteSession drops a session and its table.
func (h *Handlers) DeleteSession(c *gin.Context) {
	if !h.store.Delete(c.Param("id")) {
		notFound(c, "session not found")
		return
	}
	success(c, gin.H{"deleted": true})
}

// Skills returns the skill vocabulary of the session's table.
func (h *Handlers) Skills(c *gin.Context) {
	sess := h.lookup(c)
	if sess == nil {
		return
	}
	t := sess.Table()
	if t == nil {
		errorResponse(c, CodeNoTable, display.TextNoTable)
		return
	}
	success(c, output.NewSkillsResult(t))
}

// Search runs one search with the posted criteria.
func (h *Handlers) Search(c *gin.Context) {
	sess := h.lookup(c)
	if sess == nil {
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, CodeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Mode != "" {
		if err := sess.SetMatchMode(req.Mode); err != nil {
			errorResponse(c, CodeBadRequest, err.Error())
			return
		}
	}

	res, err := sess.Run(filtering.NewCriteria(req.ID, req.Skills))
	if err != nil {
		h.searchError(c, err)
		return
	}

	msg := display.Results(res.Len())
	if res.Empty() {
		msg = display.NoResults()
	}
	successMessage(c, msg.Text, output.NewSearchResult(res.Table, res, res.Mode))
}

func (h *Handlers) searchError(c *gin.Context, err error) {
	switch {
	case errors.IsMissingCriteria(err):
		errorResponse(c, CodeMissingCriteria, display.TextMissingCriteria)
	case errors.IsNoTable(err):
		errorResponse(c, CodeNoTable, display.TextNoTable)
	default:
		errorResponse(c, CodeSearchFailed, display.ForError(err).Text)
	}
}

// Reset clears the criteria and last result, keeping the table.
func (h *Handlers) Reset(c *gin.Context) {
	sess := h.lookup(c)
	if sess == nil {
		return
	}
	sess.Reset()
	success(c, newSessionView(sess))
}

// Export downloads the last search result as csv, json, xml or xlsx.
func (h *Handlers) Export(c *gin.Context) {
	sess := h.lookup(c)
	if sess == nil {
		return
	}

	format, err := output.ParseFormatStrict(c.DefaultQuery("format", string(output.FormatCSV)))
	if err != nil || !output.IsStructuredFormat(format) {
		errorResponse(c, CodeBadRequest, fmt.Sprintf("unsupported export format %q", c.Query("format")))
		return
	}

	res := sess.LastResult()
	if res == nil {
		errorResponse(c, CodeNoResult, "Run a search before exporting")
		return
	}

	t := res.Table
	var buf bytes.Buffer
	if err := output.WriteSearchResult(&buf, format, output.NewSearchResult(t, res, res.Mode)); err != nil {
		errorResponse(c, CodeExportFailed, "export failed: "+err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportName(t, format)))
	c.Data(http.StatusOK, contentTypes[format], buf.Bytes())
}

// Health reports liveness and the number of live sessions.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.store.Len()})
}

func exportName(t *table.Table, format output.Format) string {
	base := "results"
	if t != nil && t.Source != "" {
		base = strings.TrimSuffix(t.Source, filepath.Ext(t.Source)) + "_results"
	}
	return base + "." + string(format)
}
