package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/propilot/fbohub"
	"github.com/propilot/fbohub/pkg/errors"
	"github.com/propilot/fbohub/pkg/fbo"
	"github.com/propilot/fbohub/pkg/logging"
)

// syncResponse is the wire form of a SyncResult. The remote error collapses
// to its message so the payload stays plain JSON.
type syncResponse struct {
	LocationCode string       `json:"location_code"`
	Merged       int          `json:"merged"`
	Added        int          `json:"added"`
	Pushed       int          `json:"pushed"`
	PushFailed   int          `json:"push_failed"`
	RemoteError  *string      `json:"remote_error,omitempty"`
	Records      []fbo.Record `json:"records"`
}

func newSyncResponse(result *fbohub.SyncResult) syncResponse {
	resp := syncResponse{
		LocationCode: result.LocationCode,
		Merged:       result.Merged,
		Added:        result.Added,
		Pushed:       result.Pushed,
		PushFailed:   result.PushFailed,
		Records:      result.Records,
	}
	if result.RemoteErr != nil {
		msg := result.RemoteErr.Error()
		resp.RemoteError = &msg
	}
	if resp.Records == nil {
		resp.Records = []fbo.Record{}
	}
	return resp
}

// handleHealth reports liveness and uptime.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleRecords returns the stored collection for one location.
func (s *Server) handleRecords(c *gin.Context) {
	records, err := s.manager.Records(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// handleSync runs a blocking sync for one location.
func (s *Server) handleSync(c *gin.Context) {
	result, err := s.manager.SyncLocation(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSyncResponse(result))
}

// handleSubmitEdit accepts a record edit and returns the stored result.
func (s *Server) handleSubmitEdit(c *gin.Context) {
	var record fbo.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	stored, err := s.manager.SubmitEdit(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stored)
}

// handleCreate adds a facility under the location in the path. A pending
// submission of the same facility by someone else yields 409.
func (s *Server) handleCreate(c *gin.Context) {
	var record fbo.Record
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	record.LocationCode = c.Param("code")
	stored, err := s.manager.Create(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stored)
}

// handleDelete removes a facility by name. Verified records yield 403.
func (s *Server) handleDelete(c *gin.Context) {
	err := s.manager.Delete(c.Request.Context(), c.Param("code"), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type importRequest struct {
	Force bool   `json:"force"`
	Dir   string `json:"dir"`
}

// handleImport applies the bundled baseline dataset.
func (s *Server) handleImport(c *gin.Context) {
	var req importRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	var opts []fbohub.ImportOption
	if req.Force {
		opts = append(opts, fbohub.WithImportForce())
	}
	if req.Dir != "" {
		opts = append(opts, fbohub.WithImportDir(req.Dir))
	}
	result, err := s.manager.ImportBaseline(c.Request.Context(), opts...)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps the engine's error taxonomy onto HTTP status codes. The
// payload carries the request ID so callers can quote the matching log line.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsConflict(err):
		status = http.StatusConflict
	case errors.IsProtected(err):
		status = http.StatusForbidden
	case errors.IsRemoteUnavailable(err):
		status = http.StatusBadGateway
	}
	body := gin.H{"error": err.Error()}
	if id := logging.RequestID(c.Request.Context()); id != "" {
		body["request_id"] = id
	}
	c.JSON(status, body)
}
