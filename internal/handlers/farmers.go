package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"survey_registry/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidID       = "invalid id"
	errListFarmers     = "failed to list records"
	errGetFarmer       = "failed to load record"
	errCreateFarmer    = "failed to create record"
	errUpdateFarmer    = "failed to update record"
	errDeleteFarmer    = "failed to delete record"
	errAttachAudio     = "failed to store audio note"
	errRecordNotFound  = "record not found"
	errMissingAudio    = "multipart field 'audio' is required"
	maxAudioUploadSize = 32 << 20 // 32 MB
)

// Request DTO for registering a farmer.
type farmerRequest struct {
	Name       string `json:"name" binding:"required"`
	FarmerType string `json:"farmer_type,omitempty"` // Smallholder | Commercial | Large Scale | Subsistence
	Woreda     string `json:"woreda,omitempty"`
	Kebele     string `json:"kebele" binding:"required"`
	Phone      string `json:"phone,omitempty"`
}

// Request DTO for editing a farmer; only name and phone are mutable.
type farmerUpdateRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone,omitempty"`
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// idParam parses the :id path segment, writing a 400 on failure.
func (h *Handler) idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return 0, false
	}
	return id, true
}

// isValidationErr reports whether the service rejected the payload rather
// than failing internally.
func isValidationErr(err error) bool {
	return errors.Is(err, service.ErrNameRequired) ||
		errors.Is(err, service.ErrKebeleRequired) ||
		errors.Is(err, service.ErrUnknownWoreda) ||
		errors.Is(err, service.ErrUnknownKebele)
}

// @Summary      Register a farmer record
// @Tags         farmers
// @Accept       json
// @Produce      json
// @Param        body  body      farmerRequest  true  "Record payload"
// @Success      201   {object}  models.Farmer
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/farmers [post]
// @Security     BasicAuth
func (h *Handler) createFarmer(c *gin.Context) {
	var req farmerRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	f, err := h.services.Registry.Create(c.Request.Context(), service.FarmerParams{
		Name:         req.Name,
		FarmerType:   req.FarmerType,
		Woreda:       req.Woreda,
		Kebele:       req.Kebele,
		Phone:        req.Phone,
		RegisteredBy: h.actingUsername(c),
	})
	if err != nil {
		if isValidationErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateFarmer, "farmer_create_failed", err, "name", req.Name)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// @Summary      List farmer records
// @Tags         farmers
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, farmers"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/farmers [get]
// @Security     BasicAuth
func (h *Handler) listFarmers(c *gin.Context) {
	farmers, err := h.services.Registry.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListFarmers, "farmer_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(farmers),
		"farmers": farmers,
	})
}

// @Summary      Get one farmer record
// @Tags         farmers
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  models.Farmer
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/farmers/{id} [get]
// @Security     BasicAuth
func (h *Handler) getFarmer(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	f, err := h.services.Registry.Get(c.Request.Context(), id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetFarmer, "farmer_get_failed", err, "id", id)
		return
	}
	if f == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errRecordNotFound})
		return
	}
	c.JSON(http.StatusOK, f)
}

// @Summary      Edit a farmer record
// @Description  Name and phone are the only editable fields.
// @Tags         farmers
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Record ID"
// @Param        body  body      farmerUpdateRequest  true  "Edit payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/farmers/{id} [put]
// @Security     BasicAuth
func (h *Handler) updateFarmer(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	var req farmerUpdateRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.Registry.Update(c.Request.Context(), id, req.Name, req.Phone); err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errRecordNotFound})
		case errors.Is(err, service.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errUpdateFarmer, "farmer_update_failed", err, "id", id)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// @Summary      Delete a farmer record
// @Tags         farmers
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/farmers/{id} [delete]
// @Security     BasicAuth
func (h *Handler) deleteFarmer(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	if err := h.services.Registry.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRecordNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteFarmer, "farmer_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Attach an audio note
// @Description  Multipart upload, field name "audio". Accepts mp3, wav, m4a.
// @Tags         farmers
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      int   true  "Record ID"
// @Param        audio  formData  file  true  "Audio note"
// @Success      200    {object}  map[string]string  "audio_url"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/farmers/{id}/audio [post]
// @Security     BasicAuth
func (h *Handler) uploadFarmerAudio(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAudioUploadSize)
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingAudio})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errAttachAudio, "farmer_audio_open_failed", err, "id", id)
		return
	}
	defer func() { _ = src.Close() }()

	url, err := h.services.Registry.AttachAudio(c.Request.Context(), id, fileHeader.Filename, src)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errRecordNotFound})
			return
		case errors.Is(err, service.ErrUnsupportedAudio):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errAttachAudio, "farmer_audio_store_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audio_url": url})
}
