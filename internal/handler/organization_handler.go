package handler

import (
	"errors"
	"log"
	"net/http"

	"carefinder/internal/models"
	"carefinder/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrganizationHandler struct {
	orgRepo *repository.OrganizationRepository
}

func NewOrganizationHandler(orgRepo *repository.OrganizationRepository) *OrganizationHandler {
	return &OrganizationHandler{orgRepo: orgRepo}
}

func (h *OrganizationHandler) List(c *gin.Context) {
	limit, offset := pagination(c, 20, 100)
	list, err := h.orgRepo.List(c.Query("q"), limit, offset)
	if err != nil {
		log.Printf("[org] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": list})
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	o, err := h.orgRepo.GetByID(paramID(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization": o})
}

type organizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Services    string `json:"services"` // comma-separated labels
}

// Create is admin-only.
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o := &models.Organization{
		Name:        req.Name,
		Description: req.Description,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Services:    req.Services,
	}
	if err := h.orgRepo.Create(o); err != nil {
		if existing, lookupErr := h.orgRepo.GetByName(req.Name); lookupErr == nil && existing != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "organization name already exists"})
			return
		}
		log.Printf("[org] create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"organization": o})
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	o, err := h.orgRepo.GetByID(paramID(c, "id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o.Name = req.Name
	o.Description = req.Description
	o.Phone = req.Phone
	o.Email = req.Email
	o.Website = req.Website
	o.Services = req.Services
	if err := h.orgRepo.Update(o); err != nil {
		log.Printf("[org] update failed: id=%d err=%v", o.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization": o})
}

// Delete cascades to the organization's locations, their favorites and reviews.
func (h *OrganizationHandler) Delete(c *gin.Context) {
	id := paramID(c, "id")
	if _, err := h.orgRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if err := h.orgRepo.Delete(id); err != nil {
		log.Printf("[org] delete failed: id=%d err=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
