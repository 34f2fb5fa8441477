package handlers

import (
	"errors"
	"net/http"

	"survey_registry/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errAddWoreda    = "failed to add woreda"
	errListWoredas  = "failed to list woredas"
	errRenameWoreda = "failed to rename woreda"
	errDeleteWoreda = "failed to delete woreda"
	errAddKebele    = "failed to add kebele"
	errDeleteKebele = "failed to delete kebele"
)

type locationNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary      Add a woreda
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body      locationNameRequest  true  "Woreda name"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/locations/woredas [post]
// @Security     BasicAuth
func (h *Handler) addWoreda(c *gin.Context) {
	var req locationNameRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	id, err := h.services.Locations.AddWoreda(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrWoredaNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errAddWoreda, "woreda_add_failed", err, "name", req.Name)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": req.Name})
}

// @Summary      List woredas with their kebeles
// @Tags         locations
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, woredas"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/locations/woredas [get]
// @Security     BasicAuth
func (h *Handler) listWoredas(c *gin.Context) {
	woredas, err := h.services.Locations.ListWoredas(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListWoredas, "woreda_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(woredas),
		"woredas": woredas,
	})
}

// @Summary      Rename a woreda
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Woreda ID"
// @Param        body  body      locationNameRequest  true  "New name"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/locations/woredas/{id} [put]
// @Security     BasicAuth
func (h *Handler) renameWoreda(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var req locationNameRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.Locations.RenameWoreda(c.Request.Context(), id, req.Name); err != nil {
		if errors.Is(err, service.ErrWoredaNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRenameWoreda, "woreda_rename_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "renamed"})
}

// @Summary      Delete a woreda (cascades to its kebeles)
// @Tags         locations
// @Produce      json
// @Param        id   path      int  true  "Woreda ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/locations/woredas/{id} [delete]
// @Security     BasicAuth
func (h *Handler) deleteWoreda(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.services.Locations.DeleteWoreda(c.Request.Context(), id); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteWoreda, "woreda_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Add a kebele under a woreda
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Woreda ID"
// @Param        body  body      locationNameRequest  true  "Kebele name"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/locations/woredas/{id}/kebeles [post]
// @Security     BasicAuth
func (h *Handler) addKebele(c *gin.Context) {
	woredaID, ok := h.idParam(c)
	if !ok {
		return
	}
	var req locationNameRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	id, err := h.services.Locations.AddKebele(c.Request.Context(), woredaID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrKebeleNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errAddKebele, "kebele_add_failed", err, "woreda_id", woredaID)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": req.Name, "woreda_id": woredaID})
}

// @Summary      Delete a kebele
// @Tags         locations
// @Produce      json
// @Param        id   path      int  true  "Kebele ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/locations/kebeles/{id} [delete]
// @Security     BasicAuth
func (h *Handler) deleteKebele(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.services.Locations.DeleteKebele(c.Request.Context(), id); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteKebele, "kebele_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
