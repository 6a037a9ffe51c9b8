package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/placenet/portal/internal/app/models/dto"
	"github.com/placenet/portal/internal/app/services"
	"github.com/placenet/portal/internal/middleware"
	"github.com/placenet/portal/internal/pkg/filestore"
	"github.com/placenet/portal/internal/pkg/spreadsheet"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminController handles the admin endpoints: bulk provisioning, user
// listing and password resets.
type AdminController struct {
	provisionService *services.ProvisionService
	authService      *services.AuthService
	store            *filestore.Store
	cleanupDelay     time.Duration
}

// NewAdminController creates a new AdminController
func NewAdminController(
	provisionService *services.ProvisionService,
	authService *services.AuthService,
	store *filestore.Store,
	cleanupDelay time.Duration,
) *AdminController {
	return &AdminController{
		provisionService: provisionService,
		authService:      authService,
		store:            store,
		cleanupDelay:     cleanupDelay,
	}
}

// GeneratePasswords runs the full provisioning batch over an uploaded user
// workbook: store the upload, run the external generator, upsert every row
// and send credential emails. Both working files are scheduled for cleanup
// so the admin has a window to download the generated sheet.
func (c *AdminController) GeneratePasswords(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "An Excel file upload is required in the 'file' field")))
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Only .xlsx files are accepted")))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer src.Close()

	uploadName, err := c.store.SaveUpload(src, fileHeader.Filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	generatedName, result, err := c.provisionService.Run(ctx.Request.Context(), uploadName)
	if err != nil {
		c.store.Remove(uploadName)
		middleware.HandleAPIError(ctx, err)
		return
	}

	result.DownloadURL = "/api/admin/download-generated/" + generatedName

	c.store.RemoveAfter(uploadName, c.cleanupDelay)
	c.store.RemoveAfter(generatedName, c.cleanupDelay)

	ctx.JSON(http.StatusOK, result)
}

// DownloadTemplate streams the empty upload template workbook.
func (c *AdminController) DownloadTemplate(ctx *gin.Context) {
	ctx.Header("Content-Disposition", `attachment; filename="user_upload_template.xlsx"`)
	ctx.Header("Content-Type", excelContentType)

	if err := spreadsheet.WriteTemplate(ctx.Writer); err != nil {
		middleware.HandleAPIError(ctx, err)
	}
}

// DownloadGenerated streams a generated workbook by its stored name.
func (c *AdminController) DownloadGenerated(ctx *gin.Context) {
	name := ctx.Param("filename")

	path, err := c.store.Path(name)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid file name")))
		return
	}
	if !c.store.Exists(name) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeNotFound, "Generated file not found or already cleaned up")))
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	ctx.Header("Content-Type", excelContentType)
	ctx.File(path)
}

// ListUsers returns the paginated user list.
func (c *AdminController) ListUsers(ctx *gin.Context) {
	params := dto.ListParams{Search: ctx.Query("search")}
	params.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	params.PageSize, _ = strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))
	params.Normalize()

	users, total, err := c.authService.ListUsers(ctx.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"users":    users,
		"total":    total,
		"page":     params.Page,
		"pageSize": params.PageSize,
	})
}

// ResetUserPassword issues a temporary password for a user and emails it.
func (c *AdminController) ResetUserPassword(ctx *gin.Context) {
	userID := ctx.Param("userId")
	if strings.TrimSpace(userID) == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "User id is required")))
		return
	}

	if err := c.authService.AdminResetPassword(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Temporary password sent to the user's email"))
}
