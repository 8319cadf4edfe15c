package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"supplier-management-api-server/internal/models"
	"supplier-management-api-server/internal/repositories"
	"supplier-management-api-server/internal/services"
)

type ClientHandler struct {
	Clients *services.ClientService
}

type CreateClientRequest struct {
	ClientName  string             `json:"clientName" binding:"required"`
	ContactInfo models.ContactInfo `json:"contactInfo" binding:"required"`
}

type AddApprovedSupplierRequest struct {
	SupplierID   string `json:"supplierId" binding:"required"`
	ContractType string `json:"contractType" binding:"required"`
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := &models.Client{ClientName: req.ClientName, ContactInfo: req.ContactInfo}
	created, err := h.Clients.CreateClient(c.Request.Context(), client)
	if err != nil {
		if errors.Is(err, services.ErrClientExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Client already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	client, err := h.Clients.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load client", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, client)
}

// AddApprovedSupplier puts an approved supplier on the client's list.
func (h *ClientHandler) AddApprovedSupplier(c *gin.Context) {
	var req AddApprovedSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client, err := h.Clients.AddApprovedSupplier(
		c.Request.Context(),
		c.Param("id"),
		req.SupplierID,
		models.ContractType(req.ContractType),
	)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Client or supplier not found"})
		case errors.Is(err, services.ErrSupplierNotApproved):
			c.JSON(http.StatusConflict, gin.H{"error": "Supplier is not approved for work"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add approved supplier", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) GetApprovedSuppliers(c *gin.Context) {
	suppliers, err := h.Clients.GetApprovedSuppliers(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load approved suppliers", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, suppliers)
}
