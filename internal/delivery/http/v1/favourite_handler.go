package v1

import (
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type FavouriteHandler struct {
	favUC domain.FavouriteUsecase
}

func NewFavouriteHandler(candidate *gin.RouterGroup, favUC domain.FavouriteUsecase) {
	handler := &FavouriteHandler{favUC: favUC}

	favourites := candidate.Group("/favourites")
	{
		favourites.GET("/my", handler.ListMine)
		favourites.POST("/:jobId", handler.Save)
		favourites.DELETE("/:jobId", handler.Unsave)
	}
}

// SaveFavourite godoc
// @Summary      Save a job
// @Tags         favourites
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      201    {object}  response.Response{data=domain.Favourite}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /favourites/{jobId} [post]
// @Security     BearerAuth
func (h *FavouriteHandler) Save(c *gin.Context) {
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

	fav, err := h.favUC.Save(c.Request.Context(), caller, jobID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job saved", fav)
}

// UnsaveFavourite godoc
// @Summary      Remove a saved job
// @Tags         favourites
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /favourites/{jobId} [delete]
// @Security     BearerAuth
func (h *FavouriteHandler) Unsave(c *gin.Context) {
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

	if err := h.favUC.Unsave(c.Request.Context(), caller, jobID); err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job removed from favourites", nil)
}

// ListMyFavourites godoc
// @Summary      List saved jobs
// @Tags         favourites
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Favourite}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /favourites/my [get]
// @Security     BearerAuth
func (h *FavouriteHandler) ListMine(c *gin.Context) {
	caller, err := mustCaller(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	favs, err := h.favUC.ListMine(c.Request.Context(), caller)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Favourites retrieved", favs)
}
