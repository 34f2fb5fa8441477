package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	exportFilename = "survey_records.csv"
	errExportCSV   = "failed to export records"
)

// @Summary      Download records as CSV
// @Description  Streams all farmer records; header row matches the field team's spreadsheet layout.
// @Tags         export
// @Produce      text/csv
// @Success      200
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/export/farmers.csv [get]
// @Security     BasicAuth
func (h *Handler) exportFarmersCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)

	n, err := h.services.Exporter.FarmersCSV(c.Request.Context(), c.Writer)
	if err != nil {
		// Headers may already be out; log and abort the stream.
		if h.log != nil {
			h.log.Errorw("export_csv_failed", "err", err)
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if h.log != nil {
		h.log.Infow("export_csv_done", "rows", n)
	}
}
