package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the recruiter's view of their own jobs and applicants
type AdminHandler struct {
	jobUC domain.JobUsecase
	appUC domain.ApplicationUsecase
	audit *security.AuditLogger
}

func NewAdminHandler(admin *gin.RouterGroup, jobUC domain.JobUsecase, appUC domain.ApplicationUsecase, audit *security.AuditLogger) {
	handler := &AdminHandler{jobUC: jobUC, appUC: appUC, audit: audit}

	adminGroup := admin.Group("/admin")
	{
		adminGroup.GET("/jobs", handler.ListMyJobs)
		adminGroup.GET("/jobs/:jobId/applications", handler.ListApplicants)
		adminGroup.GET("/jobs/:jobId/applications/export", handler.ExportApplicants)
	}
}

// ListMyJobs godoc
// @Summary      List jobs I created
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/jobs [get]
func (h *AdminHandler) ListMyJobs(c *gin.Context) {
	caller, err := mustCaller(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	jobs, err := h.jobUC.ListMyJobs(c.Request.Context(), caller)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// ListApplicants godoc
// @Summary      List applicants of a job
// @Description  Only the admin who created the job may view its applicants. Unknown and foreign jobs both answer 403.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Application}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /admin/jobs/{jobId}/applications [get]
func (h *AdminHandler) ListApplicants(c *gin.Context) {
	caller, err := mustCaller(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	jobID, err := parseID(c, "jobId", "job id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	apps, err := h.appUC.ListForJob(c.Request.Context(), caller, jobID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applicants retrieved", apps)
}

// ExportApplicants godoc
// @Summary      Export applicants of a job to Excel
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        jobId  path  int  true  "Job ID"
// @Success      200    {file}    file
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /admin/jobs/{jobId}/applications/export [get]
func (h *AdminHandler) ExportApplicants(c *gin.Context) {
	caller, err := mustCaller(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	jobID, err := parseID(c, "jobId", "job id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	data, filename, err := h.appUC.ExportForJob(c.Request.Context(), caller, jobID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	h.audit.LogApplicantsExported(c.Request.Context(), caller.UserID, jobID, middleware.RequestIDFrom(c), filename)

	response.Attachment(c, response.XLSXContentType, filename, data)
}
