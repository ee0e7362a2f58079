package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/printdesk/daybook-api/internal/application/service"
	"github.com/printdesk/daybook-api/internal/domain/enum"
	"github.com/printdesk/daybook-api/internal/presentation/http/dto/request"
	"github.com/printdesk/daybook-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles service catalog HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List handles listing the service catalog
func (h *CatalogHandler) List(c *gin.Context) {
	services, err := h.catalogService.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Services retrieved successfully", services)
}

// Get handles getting a single catalog entry
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service retrieved successfully", svc)
}

// Create handles adding a catalog entry
func (h *CatalogHandler) Create(c *gin.Context) {
	var req request.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalogService.CreateService(c.Request.Context(), serviceInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Service created successfully", svc)
}

// Update handles updating a catalog entry
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	var req request.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalogService.UpdateService(c.Request.Context(), id, serviceInputFromRequest(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Service updated successfully", svc)
}

// Delete handles removing a catalog entry
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.DeleteService(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func serviceInputFromRequest(req *request.ServiceRequest) *service.ServiceInput {
	return &service.ServiceInput{
		ServiceType:      enum.ServiceType(req.ServiceType),
		Name:             req.Name,
		Price:            req.Price,
		PaperSize:        req.PaperSize,
		ColorType:        enum.ColorType(req.ColorType),
		PaperOrientation: enum.PaperOrientation(req.PaperOrientation),
	}
}
