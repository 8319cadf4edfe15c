package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"supplier-management-api-server/internal/models"
	"supplier-management-api-server/internal/repositories"
	"supplier-management-api-server/internal/services"
)

type SupplierHandler struct {
	Onboarding *services.OnboardingService
	Suppliers  *services.SupplierService
}

// documentFields are the accepted multipart file part names of an
// onboarding request.
var documentFields = []string{"coi", "oshaLogs", "bankInfo"}

// OnboardSupplier handles the multipart onboarding request: a "supplierData"
// JSON part plus up to three document file parts.
func (h *SupplierHandler) OnboardSupplier(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form", "details": err.Error()})
		return
	}

	payloads := form.Value["supplierData"]
	if len(payloads) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplierData part is required"})
		return
	}

	var supplier models.Supplier
	if err := json.Unmarshal([]byte(payloads[0]), &supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier payload", "details": err.Error()})
		return
	}
	if supplier.SupplierName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplierName is required"})
		return
	}
	if supplier.ContactInfo.PrimaryContact.PrimaryContactEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "primary contact email is required"})
		return
	}

	var files []services.UploadedFile
	for _, field := range documentFields {
		headers := form.File[field]
		if len(headers) == 0 {
			continue
		}
		header := headers[0]
		files = append(files, services.UploadedFile{
			FieldName:   field,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return header.Open()
			},
		})
	}

	created, err := h.Onboarding.OnboardSupplier(c.Request.Context(), &supplier, files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to onboard supplier", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	supplier, err := h.Suppliers.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load supplier", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) GetAllSuppliers(c *gin.Context) {
	suppliers, err := h.Suppliers.ListSuppliers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list suppliers", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// SearchSuppliers finds discoverable suppliers by keyword, paginated with
// query params q, page and size.
func (h *SupplierHandler) SearchSuppliers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	result, err := h.Suppliers.SearchDiscoverable(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search suppliers", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	err := h.Suppliers.DeleteSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete supplier", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
