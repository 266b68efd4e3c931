package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ApplicationHandler handles candidate-side application endpoints
type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes on a candidate-only group
func NewApplicationHandler(candidate *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	applications := candidate.Group("/applications")
	{
		applications.GET("/my", handler.ListMine)
		applications.POST("/:jobId", handler.Apply)
	}
}

// Apply godoc
// @Summary      Apply to a job
// @Description  One application per candidate and job; a repeat answers 400
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      201    {object}  response.Response{data=domain.Application}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /applications/{jobId} [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
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

	app, err := h.appUC.Apply(c.Request.Context(), caller, jobID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListMyApplications godoc
// @Summary      List my applications
// @Description  The caller's applications with job and recruiter details, newest first
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /applications/my [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	caller, err := mustCaller(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	apps, err := h.appUC.ListMine(c.Request.Context(), caller)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", apps)
}
