package router

import (
	"github.com/cuongbtq/jobsearch/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// maxUploadMemory bounds the multipart form kept in memory
const maxUploadMemory = 8 << 20

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxUploadMemory

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	r.GET("/health", handler.HealthCheck(deps))

	jobHandler := handler.NewJobHandler(deps)
	applicationHandler := handler.NewApplicationHandler(deps)
	resumeHandler := handler.NewResumeHandler(deps)
	alertHandler := handler.NewJobAlertHandler(deps)

	v1 := r.Group("/api/v1")
	{
		jobs := v1.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.POST("", jobHandler.CreateJob)
			jobs.GET("/:id", jobHandler.GetJob)
			jobs.PATCH("/:id", jobHandler.UpdateJob)
			jobs.DELETE("/:id", jobHandler.DeleteJob)
			jobs.POST("/:id/apply", jobHandler.ApplyToJob)
		}

		applications := v1.Group("/applications")
		{
			applications.GET("", applicationHandler.ListApplications)
			applications.POST("", applicationHandler.CreateApplication)
			applications.GET("/:id", applicationHandler.GetApplication)
			applications.PATCH("/:id", applicationHandler.UpdateApplication)
			applications.DELETE("/:id", applicationHandler.DeleteApplication)
			applications.POST("/:id/withdraw", applicationHandler.WithdrawApplication)
		}

		resumes := v1.Group("/resumes")
		{
			resumes.GET("", resumeHandler.ListResumes)
			resumes.POST("", resumeHandler.CreateResume)
			resumes.POST("/upload", resumeHandler.UploadResume)
			resumes.GET("/:id", resumeHandler.GetResume)
			resumes.PATCH("/:id", resumeHandler.UpdateResume)
			resumes.DELETE("/:id", resumeHandler.DeleteResume)
			resumes.POST("/:id/activate", resumeHandler.ActivateResume)
		}

		alerts := v1.Group("/alerts")
		{
			alerts.GET("", alertHandler.ListAlerts)
			alerts.POST("", alertHandler.CreateAlert)
			alerts.GET("/:id", alertHandler.GetAlert)
			alerts.PATCH("/:id", alertHandler.UpdateAlert)
			alerts.DELETE("/:id", alertHandler.DeleteAlert)
			alerts.POST("/:id/toggle", alertHandler.ToggleAlert)
		}
	}

	return r
}
