package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"supplier-management-api-server/internal/models"
	"supplier-management-api-server/internal/repositories"
	"supplier-management-api-server/internal/services"
)

type WorkOrderHandler struct {
	WorkOrders *services.WorkOrderService
}

type CreateWorkOrderRequest struct {
	ClientID        string    `json:"clientId" binding:"required"`
	Location        string    `json:"location" binding:"required"`
	DueDate         time.Time `json:"dueDate" binding:"required"`
	StartDate       time.Time `json:"startDate"`
	ProjectManager  string    `json:"projectManager"`
	TaskDescription string    `json:"taskDescription" binding:"required"`
	Service         string    `json:"service" binding:"required"`
	SupplierIDs     []string  `json:"supplierIds"`
}

type UpdateWorkOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignSuppliersRequest struct {
	SupplierIDs []string `json:"supplierIds" binding:"required"`
}

func (h *WorkOrderHandler) CreateWorkOrder(c *gin.Context) {
	var req CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo := &models.WorkOrder{
		ClientID:        req.ClientID,
		Location:        req.Location,
		DueDate:         req.DueDate,
		StartDate:       req.StartDate,
		ProjectManager:  req.ProjectManager,
		TaskDescription: req.TaskDescription,
		Service:         req.Service,
		SupplierIDs:     req.SupplierIDs,
	}
	created, err := h.WorkOrders.CreateWorkOrder(c.Request.Context(), wo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issuing client not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create work order", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WorkOrderHandler) GetWorkOrder(c *gin.Context) {
	wo, err := h.WorkOrders.GetWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work order", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, wo)
}

// GetClientWorkOrders lists a client's work orders. With from and to query
// params it narrows to orders due inside that window.
func (h *WorkOrderHandler) GetClientWorkOrders(c *gin.Context) {
	clientID := c.Param("id")

	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" && toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date"})
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date"})
			return
		}

		orders, err := h.WorkOrders.GetClientWorkOrdersDue(c.Request.Context(), clientID, from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work orders", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	orders, err := h.WorkOrders.GetClientWorkOrders(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work orders", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetWorkOrdersByServices lets a supplier discover work orders requesting
// any of its services, passed as a repeated service query param.
func (h *WorkOrderHandler) GetWorkOrdersByServices(c *gin.Context) {
	requested := c.QueryArray("service")
	orders, err := h.WorkOrders.GetWorkOrdersByServices(c.Request.Context(), requested)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work orders", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *WorkOrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateWorkOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo, err := h.WorkOrders.UpdateStatus(c.Request.Context(), c.Param("id"), models.WorkOrderStatus(req.Status))
	if err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) VoidWorkOrder(c *gin.Context) {
	wo, err := h.WorkOrders.VoidWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) AssignSuppliers(c *gin.Context) {
	var req AssignSuppliersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wo, err := h.WorkOrders.AssignSuppliers(c.Request.Context(), c.Param("id"), req.SupplierIDs)
	if err != nil {
		h.writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, wo)
}

func (h *WorkOrderHandler) writeMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
	case errors.Is(err, services.ErrWorkOrderFinished):
		c.JSON(http.StatusConflict, gin.H{"error": "Work order is already finished"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update work order", "details": err.Error()})
	}
}
