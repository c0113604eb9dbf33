package handlers

import (
	"fmt"
	"net/http"

	"clinichub/models"
	"clinichub/services/report"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves medical reports and their PDF export.
type ReportHandler struct {
	Reports report.ReportService
}

func NewReportHandler(rs report.ReportService) *ReportHandler {
	return &ReportHandler{Reports: rs}
}

// CreateHandler handles POST /api/reports.
func (h *ReportHandler) CreateHandler(c *gin.Context) {
	var in models.ReportInput
	if !bindJSON(c, &in) {
		return
	}
	rep, err := h.Reports.Create(c.Request.Context(), actor(c).ID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rep)
}

// UpdateHandler handles PUT /api/reports/:id.
func (h *ReportHandler) UpdateHandler(c *gin.Context) {
	var in models.ReportInput
	if !bindJSON(c, &in) {
		return
	}
	rep, err := h.Reports.Update(c.Request.Context(), actor(c).ID, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rep)
}

// GetHandler handles GET /api/reports/:id.
func (h *ReportHandler) GetHandler(c *gin.Context) {
	rep, err := h.Reports.Get(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rep)
}

// ListHandler handles GET /api/users/reports and GET /api/reports.
func (h *ReportHandler) ListHandler(c *gin.Context) {
	reps, err := h.Reports.List(c.Request.Context(), actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reps)
}

// PDFHandler handles GET /api/reports/:id/pdf.
func (h *ReportHandler) PDFHandler(c *gin.Context) {
	doc, rep, err := h.Reports.RenderPDF(c.Request.Context(), actor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.pdf"`, rep.ID))
	c.Data(http.StatusOK, "application/pdf", doc)
}
