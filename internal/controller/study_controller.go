package controller

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"

	"studyquiz_backend/internal/model"
	"studyquiz_backend/internal/service"
	"studyquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StudyController covers the generation side of the tool: summarizing
// uploaded PDFs, generating a quiz from them, grading an attempt and
// preparing a retry over the missed questions.
type StudyController struct {
	AIService      *service.AIService
	GradingService *service.GradingService
	HistoryService *service.HistoryService
	StorageService *service.StorageService
}

func NewStudyController(ai *service.AIService, grading *service.GradingService, history *service.HistoryService, storage *service.StorageService) *StudyController {
	return &StudyController{
		AIService:      ai,
		GradingService: grading,
		HistoryService: history,
		StorageService: storage,
	}
}

// readUploads pulls every "files" part out of the multipart form, rejecting
// non-PDF content by sniffing rather than trusting the client's Content-Type.
func (c *StudyController) readUploads(ctx *gin.Context) ([][]byte, []*multipart.FileHeader, bool) {
	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, "multipart form required")
		return nil, nil, false
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		util.BadRequest(ctx, util.ErrEmptyUpload.Error())
		return nil, nil, false
	}

	files := make([][]byte, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			util.LogInternalError(ctx, err)
			return nil, nil, false
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			util.LogInternalError(ctx, err)
			return nil, nil, false
		}

		mimeType, err := util.ValidateMimeType(bytes.NewReader(data), []string{"application/pdf"})
		if err != nil || !util.IsPDF(mimeType) {
			util.BadRequest(ctx, header.Filename+" is not a PDF")
			return nil, nil, false
		}
		files = append(files, data)
	}
	return files, headers, true
}

func (c *StudyController) retainUploads(ctx *gin.Context, userID string, files [][]byte, headers []*multipart.FileHeader) {
	for i, data := range files {
		c.StorageService.RetainPDF(ctx.Request.Context(), userID, headers[i].Filename, bytes.NewReader(data), int64(len(data)))
	}
}

// Summarize godoc
// @Summary Summarize uploaded PDFs
// @Tags study
// @Accept  multipart/form-data
// @Produce  json
// @Param   files formData file true "PDF documents"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/materials/summary [post]
func (c *StudyController) Summarize(ctx *gin.Context) {
	files, headers, ok := c.readUploads(ctx)
	if !ok {
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	c.retainUploads(ctx, user.UserID, files, headers)

	summary, err := c.AIService.Summarize(ctx.Request.Context(), files)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"summary": summary})
}

// GenerateQuiz godoc
// @Summary Generate a quiz from uploaded PDFs
// @Description Generates a quiz and a summary, and persists the draft attempt.
// @Tags study
// @Accept  multipart/form-data
// @Produce  json
// @Param   files formData file true "PDF documents"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/quizzes [post]
func (c *StudyController) GenerateQuiz(ctx *gin.Context) {
	files, headers, ok := c.readUploads(ctx)
	if !ok {
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	c.retainUploads(ctx, user.UserID, files, headers)

	summary, err := c.AIService.Summarize(ctx.Request.Context(), files)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	title, items, err := c.AIService.GenerateQuiz(ctx.Request.Context(), files)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if len(items) == 0 {
		// Unparseable model output: nothing worth persisting.
		util.Error(ctx, http.StatusBadGateway, util.ErrNoQuizGenerated.Error())
		return
	}

	rec, err := c.HistoryService.CreateDraft(ctx.Request.Context(), user.UserID, title, summary, items)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"date":    rec.DateLabel,
		"title":   rec.Title,
		"summary": summary,
		"quizzes": items,
	})
}

// GradeRequest is one submitted attempt. Date points at the attempt being
// replaced; it is archived and the graded result saved under a fresh label.
type GradeRequest struct {
	Date    string           `json:"date"`
	Title   string           `json:"title"`
	Summary string           `json:"summary"`
	Quizzes []model.QuizItem `json:"quizzes" binding:"required"`
	Answers map[int]string   `json:"answers"`
}

// Grade godoc
// @Summary Grade a quiz attempt
// @Description Scores the submitted answers, archives the previous attempt and saves the graded one.
// @Tags study
// @Accept  json
// @Produce  json
// @Param   body body GradeRequest true "Attempt"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/quizzes/grade [post]
func (c *StudyController) Grade(ctx *gin.Context) {
	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	title := req.Title
	if title == "" {
		title = model.DefaultTitle
	}

	sum := c.GradingService.Grade(req.Quizzes, req.Answers)

	rec, err := c.HistoryService.SaveGraded(ctx.Request.Context(), user.UserID, req.Date, title, req.Summary, req.Quizzes, sum)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"date":    rec.DateLabel,
		"score":   sum.Score,
		"correct": sum.Correct,
		"total":   sum.Total,
		"quizzes": req.Quizzes,
	})
}

// RetryRequest holds a graded quiz to build a retry round from.
type RetryRequest struct {
	Title   string           `json:"title"`
	Quizzes []model.QuizItem `json:"quizzes" binding:"required"`
}

// Retry godoc
// @Summary Build a retry quiz from missed questions
// @Description Returns only the questions graded incorrect, with grading annotations cleared.
// @Tags study
// @Accept  json
// @Produce  json
// @Param   body body RetryRequest true "Graded quiz"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/quizzes/retry [post]
func (c *StudyController) Retry(ctx *gin.Context) {
	var req RetryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	wrong := make([]model.QuizItem, 0)
	for _, item := range req.Quizzes {
		if item.IsCorrect != nil && !*item.IsCorrect {
			item.ClearGrading()
			wrong = append(wrong, item)
		}
	}

	if len(wrong) == 0 {
		util.BadRequest(ctx, "no missed questions to retry")
		return
	}

	title := req.Title
	if title == "" {
		title = model.DefaultTitle
	}

	util.Success(ctx, gin.H{
		"title":   title + " (リベンジ)",
		"quizzes": wrong,
	})
}

// EditRequest applies one editing action to a quiz before the next attempt.
type EditRequest struct {
	Action  string           `json:"action" binding:"required,oneof=remove update duplicate append"`
	Quizzes []model.QuizItem `json:"quizzes" binding:"required"`
	Indexes []int            `json:"indexes"`
	Index   int              `json:"index"`
	Item    model.QuizItem   `json:"item"`
	Options string           `json:"options"`
}

// Edit godoc
// @Summary Edit quiz questions
// @Description Removes, updates, duplicates or appends questions and returns the edited quiz.
// @Tags study
// @Accept  json
// @Produce  json
// @Param   body body EditRequest true "Edit action"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/quizzes/edit [post]
func (c *StudyController) Edit(ctx *gin.Context) {
	var req EditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.Options != "" {
		req.Item.Options = service.ParseOptionLines(req.Options)
	}

	items := req.Quizzes
	switch req.Action {
	case "remove":
		items = service.RemoveQuizItems(items, req.Indexes)
	case "update":
		if !service.UpdateQuizItem(items, req.Index, req.Item) {
			util.BadRequest(ctx, "invalid index or empty question/answer")
			return
		}
	case "duplicate":
		items = service.DuplicateQuizItem(items, req.Index)
	case "append":
		var ok bool
		if items, ok = service.AppendQuizItem(items, req.Item); !ok {
			util.BadRequest(ctx, "question and answer must not be empty")
			return
		}
	}

	util.Success(ctx, gin.H{"quizzes": items})
}
