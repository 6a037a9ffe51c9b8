package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/app/services"
	"github.com/placenet/portal/internal/middleware"
)

// CompanyController handles company endpoints
type CompanyController struct {
	companyService *services.CompanyService
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companyService *services.CompanyService) *CompanyController {
	return &CompanyController{companyService: companyService}
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")))
		return 0, false
	}
	return id, true
}

// List returns companies with pagination and optional name search.
func (c *CompanyController) List(ctx *gin.Context) {
	params := dto.ListParams{Search: ctx.Query("search")}
	params.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	params.PageSize, _ = strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))
	params.Normalize()

	companies, total, err := c.companyService.List(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"companies": companies,
		"total":     total,
		"page":      params.Page,
		"pageSize":  params.PageSize,
	})
}

// Get returns one company.
func (c *CompanyController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "companyId")
	if !ok {
		return
	}

	company, err := c.companyService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "company": company})
}

// Create creates a company (admin only).
func (c *CompanyController) Create(ctx *gin.Context) {
	userID, _, _ := middleware.Identity(ctx)

	var req dto.CreateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Name, website and location are required")))
		return
	}

	company, err := c.companyService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": true, "company": company})
}

// Update replaces a company's editable fields (admin only).
func (c *CompanyController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "companyId")
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Name, website and location are required")))
		return
	}

	company, err := c.companyService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "company": company})
}

// Delete removes a company (admin only).
func (c *CompanyController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "companyId")
	if !ok {
		return
	}

	if err := c.companyService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Company deleted successfully"))
}
