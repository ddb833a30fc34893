package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/foamtrack/foamtrack-backend/internal/entries/domain"
	"github.com/foamtrack/foamtrack-backend/internal/entries/export"
	"github.com/foamtrack/foamtrack-backend/internal/entries/projectkey"
	"github.com/foamtrack/foamtrack-backend/internal/entries/service"
	"github.com/gin-gonic/gin"
)

// Handler serves the entry collection API. A nil service means the
// store binding was never configured; every route then reports the
// fatal configuration error instead of panicking.
type Handler struct {
	svc *service.EntryService
}

// NewHandler creates a new Handler
func NewHandler(svc *service.EntryService) *Handler {
	return &Handler{svc: svc}
}

type entryBody struct {
	Entry map[string]any `json:"entry"`
}

// project validates the project query parameter before any store
// access. It writes the error response itself and returns "" when the
// request cannot proceed.
func (h *Handler) project(c *gin.Context) string {
	if h.svc == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing KV binding APP_KV"})
		return ""
	}

	project := projectkey.Sanitize(c.Query("project"))
	if project == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid project"})
		return ""
	}
	return project
}

// List returns all entries for a project, newest first.
func (h *Handler) List(c *gin.Context) {
	project := h.project(c)
	if project == "" {
		return
	}

	entries, err := h.svc.List(c.Request.Context(), project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project, "entries": entries})
}

// Export returns the same listing framed for export, with an export
// timestamp. With ?format=csv the document is rendered server-side.
func (h *Handler) Export(c *gin.Context) {
	project := h.project(c)
	if project == "" {
		return
	}

	entries, err := h.svc.List(c.Request.Context(), project)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	if c.Query("format") == "csv" {
		doc, err := export.CSV(entries)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+project+`.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", doc)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project":    project,
		"exportedAt": time.Now().UTC(),
		"entries":    entries,
	})
}

// Create adds a new entry to the project.
func (h *Handler) Create(c *gin.Context) {
	project := h.project(c)
	if project == "" {
		return
	}

	var body entryBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Entry == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing entry"})
		return
	}

	entry, err := h.svc.Create(c.Request.Context(), project, body.Entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "entry": entry})
}

// Update replaces the editable fields of an existing entry.
func (h *Handler) Update(c *gin.Context) {
	project := h.project(c)
	if project == "" {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id"})
		return
	}

	var body entryBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Entry == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing entry"})
		return
	}

	entry, err := h.svc.Update(c.Request.Context(), project, id, body.Entry)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "entry": entry})
}

// Delete permanently removes an entry by ID.
func (h *Handler) Delete(c *gin.Context) {
	project := h.project(c)
	if project == "" {
		return
	}

	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), project, id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id})
}
