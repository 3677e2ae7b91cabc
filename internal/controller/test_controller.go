package controller

import (
	"strconv"

	"srmlab_backend/internal/service"
	"srmlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	Service *service.TestService
}

func NewTestController(svc *service.TestService) *TestController {
	return &TestController{Service: svc}
}

// @Summary Create a test with its questions
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TestRequest true "test"
// @Success 201 {object} util.Response
// @Router /api/teacher/tests [post]
func (c *TestController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.Create(req, claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, test)
}

// @Summary Get a test with its question sequence
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "test id"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [get]
func (c *TestController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	test, err := c.Service.Get(uint(id))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, test)
}

// @Summary List the requesting teacher's tests
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/tests [get]
func (c *TestController) ListOwn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tests, err := c.Service.ListByTeacher(claims.UserID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, tests)
}

// @Summary List tests open for submission
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param subjectId query string false "subject id filter"
// @Success 200 {object} util.Response
// @Router /api/tests/available [get]
func (c *TestController) ListAvailable(ctx *gin.Context) {
	tests, err := c.Service.ListAvailable(ctx.Request.Context(), ctx.Query("subjectId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, tests)
}

type statusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// @Summary Activate or deactivate an owned test
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "test id"
// @Param body body statusRequest true "status"
// @Success 200 {object} util.Response
// @Router /api/teacher/tests/{id}/status [patch]
func (c *TestController) SetStatus(ctx *gin.Context) {
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

	var req statusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.SetStatus(uint(id), *req.IsActive, claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, test)
}
