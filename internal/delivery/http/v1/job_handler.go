package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/middleware"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
	audit *security.AuditLogger
}

func NewJobHandler(public *gin.RouterGroup, admin *gin.RouterGroup, jobUC domain.JobUsecase, audit *security.AuditLogger) {
	handler := &JobHandler{jobUC: jobUC, audit: audit}

	// PUBLIC routes - no authentication required
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	// ADMIN routes - creator-only mutation is enforced in the usecase
	adminJobs := admin.Group("/jobs")
	{
		adminJobs.POST("", handler.Create)
		adminJobs.PUT("/:id", handler.Update)
		adminJobs.DELETE("/:id", handler.Delete)
	}
}

// CreateJob godoc
// @Summary      Create a new job
// @Description  Create a job posting owned by the calling admin
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobInput  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	caller, err := mustCaller(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	input, err := bindJobInput(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), caller, input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// ListJobs godoc
// @Summary      List jobs
// @Description  Newest first. Filters are case-insensitive substrings combined with AND. Unbounded unless page_size is given.
// @Tags         jobs
// @Produce      json
// @Param        search     query     string  false  "Substring of the title"
// @Param        location   query     string  false  "Substring of the location"
// @Param        job_type   query     string  false  "Substring of the job type"
// @Param        page       query     int     false  "Page number (requires page_size)"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  response.Response{data=[]domain.Job}
// @Failure      400        {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	limit, offset, err := parsePage(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	jobs, err := h.jobUC.ListJobs(c.Request.Context(), domain.JobFilter{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		JobType:  c.Query("job_type"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", jobs)
}

// GetJob godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := parseID(c, "id", "job id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// UpdateJob godoc
// @Summary      Update a job
// @Description  Replace the editable fields of a job the caller created. Unknown and foreign jobs both answer 403.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int              true  "Job ID"
// @Param        job  body      domain.JobInput  true  "Job JSON"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	caller, err := mustCaller(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, err := parseID(c, "id", "job id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	input, err := bindJobInput(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), caller, id, input)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Delete a job the caller created, together with its applications and favourites
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	caller, err := mustCaller(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id, err := parseID(c, "id", "job id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), caller, id); err != nil {
		_ = c.Error(err)
		return
	}
	h.audit.LogJobDeleted(c.Request.Context(), caller.UserID, id, middleware.RequestIDFrom(c))

	response.Success(c, http.StatusOK, "Job deleted", nil)
}
