package controller

import (
	"strconv"

	"srmlab_backend/internal/service"
	"srmlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary Create a question-bank question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/teacher/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Create(req, claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

// @Summary List questions for a subject
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId query string true "subject id"
// @Success 200 {object} util.Response
// @Router /api/questions [get]
func (c *QuestionController) GetBySubject(ctx *gin.Context) {
	subjectID := ctx.Query("subjectId")
	if subjectID == "" {
		util.BadRequest(ctx, "subjectId is required")
		return
	}

	qs, err := c.Service.GetBySubject(subjectID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, qs)
}

// @Summary Update an owned question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param body body service.QuestionRequest true "question"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Update(uint(id), req, claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, q)
}

// @Summary Delete an owned question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.Service.Delete(uint(id), claims); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "question deleted"})
}

// @Summary Attach an image to an owned question
// @Tags questions
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param file formData file true "image file"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id}/image [post]
func (c *QuestionController) UploadImage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, []string{"image/"})
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	// ValidateMimeType consumed the sniff buffer; rewind before storing.
	if _, err := file.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	q, err := c.Service.AttachImage(ctx.Request.Context(), uint(id), file, fileHeader.Size, mimeType, fileHeader.Filename, claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, q)
}
