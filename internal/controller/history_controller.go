package controller

import (
	"errors"
	"net/http"

	"studyquiz_backend/internal/service"
	"studyquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HistoryController struct {
	HistoryService *service.HistoryService
}

func NewHistoryController(history *service.HistoryService) *HistoryController {
	return &HistoryController{HistoryService: history}
}

// List godoc
// @Summary List quiz attempts
// @Description Lists the caller's attempts in stored order. Archived attempts are hidden unless include_archived=true.
// @Tags history
// @Produce  json
// @Param   include_archived query bool false "Include archived attempts"
// @Success 200 {object} util.Response{data=object}
// @Router /api/history [get]
func (c *HistoryController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	includeArchived := ctx.Query("include_archived") == "true"
	records := c.HistoryService.List(ctx.Request.Context(), user.UserID, includeArchived)

	util.Success(ctx, gin.H{"history": records})
}

// TitleRequest renames one attempt.
type TitleRequest struct {
	Date  string `json:"date" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// UpdateTitle godoc
// @Summary Rename an attempt
// @Tags history
// @Accept  json
// @Produce  json
// @Param   body body TitleRequest true "New title"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/history/title [put]
func (c *HistoryController) UpdateTitle(ctx *gin.Context) {
	var req TitleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.HistoryService.RenameTitle(ctx.Request.Context(), user.UserID, req.Date, req.Title)
	c.respond(ctx, err, gin.H{"date": req.Date, "title": req.Title})
}

// DateRequest targets one attempt by its date label.
type DateRequest struct {
	Date string `json:"date" binding:"required"`
}

// Archive godoc
// @Summary Archive an attempt
// @Description Hides the attempt from the default listing. All data is kept.
// @Tags history
// @Accept  json
// @Produce  json
// @Param   body body DateRequest true "Attempt date label"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/history/archive [post]
func (c *HistoryController) Archive(ctx *gin.Context) {
	var req DateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.HistoryService.Archive(ctx.Request.Context(), user.UserID, req.Date)
	c.respond(ctx, err, gin.H{"date": req.Date, "archived": true})
}

// Restore godoc
// @Summary Restore an archived attempt
// @Tags history
// @Accept  json
// @Produce  json
// @Param   body body DateRequest true "Attempt date label"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/history/restore [post]
func (c *HistoryController) Restore(ctx *gin.Context) {
	var req DateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.HistoryService.Restore(ctx.Request.Context(), user.UserID, req.Date)
	c.respond(ctx, err, gin.H{"date": req.Date, "archived": false})
}

// Purge godoc
// @Summary Delete an attempt permanently
// @Tags history
// @Produce  json
// @Param   date query string true "Attempt date label"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/history [delete]
func (c *HistoryController) Purge(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		util.BadRequest(ctx, "date is required")
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	err := c.HistoryService.Purge(ctx.Request.Context(), user.UserID, date)
	c.respond(ctx, err, gin.H{"date": date})
}

// ClearAll godoc
// @Summary Delete every attempt of the caller
// @Tags history
// @Produce  json
// @Success 200 {object} util.Response
// @Router /api/history/all [delete]
func (c *HistoryController) ClearAll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.HistoryService.ClearAll(ctx.Request.Context(), user.UserID); err != nil {
		c.respond(ctx, err, nil)
		return
	}
	util.Success(ctx, nil)
}

func (c *HistoryController) respond(ctx *gin.Context, err error, data interface{}) {
	switch {
	case err == nil:
		util.Success(ctx, data)
	case errors.Is(err, util.ErrHistoryNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrStoreUnavailable):
		util.Error(ctx, http.StatusServiceUnavailable, "history store unavailable")
	default:
		util.LogInternalError(ctx, err)
	}
}
