package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wys-platform/project-service/internal/auth"
	"github.com/wys-platform/project-service/internal/logging"
	"github.com/wys-platform/project-service/internal/projects/domain"
)

func (h *Handler) create(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		fail(c, "projects.create", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": toProjectResp(p)})
}

func (h *Handler) list(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		fail(c, "projects.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": toProjectResps(items)})
}

func (h *Handler) get(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), userID, id)
	if err != nil {
		fail(c, "projects.get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toProjectResp(p)})
}

func (h *Handler) update(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), userID, id, req.toInput())
	if err != nil {
		fail(c, "projects.update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": toProjectResp(p)})
}

func (h *Handler) delete(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		fail(c, "projects.delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "project deleted"})
}

// details serves one project when :id is numeric, otherwise every project of the caller.
func (h *Handler) details(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	cred := auth.Credential(c)

	if id, err := strconv.ParseInt(c.Param("id"), 10, 64); err == nil {
		d, err := h.svc.Detail(ctx, userID, id, cred)
		if err != nil {
			fail(c, "projects.details", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "detail": d})
		return
	}

	items, err := h.svc.AllDetails(ctx, userID, cred)
	if err != nil {
		fail(c, "projects.details", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "details": items})
}

func (h *Handler) location(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	id, ok := projectID(c)
	if !ok {
		return
	}

	loc, err := h.svc.Location(c.Request.Context(), userID, id, auth.Credential(c))
	if err != nil {
		fail(c, "projects.location", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": id, "location": loc})
}

func owner(c *gin.Context) (int64, bool) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		return 0, false
	}
	return userID, true
}

func projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid project id"})
		return 0, false
	}
	return id, true
}

// fail maps service errors to responses. Unknown errors are logged and hidden.
func fail(c *gin.Context, op string, err error) {
	var upErr *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNameRequired):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.As(err, &upErr):
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": upErr.Error()})
	default:
		logging.New(c.Request.Context()).Error(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
	}
}
