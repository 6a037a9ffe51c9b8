// Package routes wires the HTTP surface: every endpoint, its middleware
// chain and its role gate.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/placenet/portal/internal/app/authz"
	"github.com/placenet/portal/internal/app/controllers"
	"github.com/placenet/portal/internal/middleware"
)

// Controllers groups everything the router needs.
type Controllers struct {
	Auth     *controllers.AuthController
	Company  *controllers.CompanyController
	Review   *controllers.ReviewController
	Question *controllers.QuestionController
	Admin    *controllers.AdminController
}

// RegisterRoutes sets up all API routes.
func RegisterRoutes(router *gin.Engine, c Controllers, authMW *middleware.AuthMiddleware) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.Refresh)

		authed := auth.Group("", authMW.JWTAuth())
		{
			authed.GET("/me", c.Auth.Me)
			authed.PUT("/profile", c.Auth.UpdateProfile)
			authed.POST("/reset-password-auth", c.Auth.ResetPassword)
		}
	}

	companies := api.Group("/companies", authMW.JWTAuth())
	{
		companies.GET("", c.Company.List)
		companies.GET("/:companyId", c.Company.Get)

		adminOnly := companies.Group("", authMW.Authorize(authz.OpCompanyWrite))
		{
			adminOnly.POST("", c.Company.Create)
			adminOnly.PUT("/:companyId", c.Company.Update)
			adminOnly.DELETE("/:companyId", c.Company.Delete)
		}
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/:id", c.Review.ListByCompany)
		reviews.GET("/:id/rounds", c.Review.ListRounds)

		alumniOnly := reviews.Group("", authMW.JWTAuth(), authMW.Authorize(authz.OpReviewCreate))
		{
			alumniOnly.POST("/:id/complete", c.Review.SubmitComplete)
			alumniOnly.POST("/:id/rounds", c.Review.AddRound)
		}
	}

	questions := api.Group("/questions", authMW.JWTAuth())
	{
		questions.GET("", c.Question.List)
		questions.GET("/:questionId/answers", c.Question.ListAnswers)

		questions.POST("", authMW.Authorize(authz.OpQuestionCreate), c.Question.Create)
		questions.POST("/:questionId/answers", authMW.Authorize(authz.OpAnswerCreate), c.Question.CreateAnswer)

		// Ownership (author or admin) is enforced in the service layer.
		questions.PUT("/:questionId", c.Question.Update)
		questions.DELETE("/:questionId", c.Question.Delete)
	}

	admin := api.Group("/admin", authMW.JWTAuth(), authMW.Authorize(authz.OpUserAdminAccess))
	{
		provisioning := admin.Group("", authMW.Authorize(authz.OpUserProvision))
		{
			provisioning.POST("/generate-passwords", c.Admin.GeneratePasswords)
			provisioning.GET("/download-template", c.Admin.DownloadTemplate)
			provisioning.GET("/download-generated/:filename", c.Admin.DownloadGenerated)
		}

		admin.GET("/users", c.Admin.ListUsers)
		admin.POST("/users/:userId/reset-password", c.Admin.ResetUserPassword)
	}
}
