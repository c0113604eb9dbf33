package handlers

import (
	"net/http"

	"clinichub/models"
	"clinichub/services/catalogue"
	"clinichub/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the clinic services catalogue.
type ServiceHandler struct {
	Catalogue catalogue.CatalogueService
}

func NewServiceHandler(cs catalogue.CatalogueService) *ServiceHandler {
	return &ServiceHandler{Catalogue: cs}
}

// CreateServiceHandler handles POST /api/admin/services.
func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	var in models.ServiceInput
	if !bindJSON(c, &in) {
		return
	}
	svc, err := h.Catalogue.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, svc)
}

// UpdateServiceHandler handles PUT /api/admin/services/:id.
func (h *ServiceHandler) UpdateServiceHandler(c *gin.Context) {
	var in models.ServiceInput
	if !bindJSON(c, &in) {
		return
	}
	svc, err := h.Catalogue.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

// DeleteServiceHandler handles DELETE /api/admin/services/:id.
func (h *ServiceHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Catalogue.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Service deleted"})
}

// GetServiceHandler handles GET /api/services/:id.
func (h *ServiceHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Catalogue.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, svc)
}

// AdminListServicesHandler handles GET /api/admin/services, inactive entries included.
func (h *ServiceHandler) AdminListServicesHandler(c *gin.Context) {
	h.list(c, false)
}

// ListServicesHandler handles GET /api/services.
func (h *ServiceHandler) ListServicesHandler(c *gin.Context) {
	h.list(c, true)
}

func (h *ServiceHandler) list(c *gin.Context, onlyActive bool) {
	services, err := h.Catalogue.List(c.Request.Context(), onlyActive)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, services)
}
