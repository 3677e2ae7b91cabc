package controller

import (
	"strconv"

	"srmlab_backend/internal/service"
	"srmlab_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	Service *service.ResultService
}

func NewResultController(svc *service.ResultService) *ResultController {
	return &ResultController{Service: svc}
}

// @Summary Submit answers for a test
// @Tags results
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "test id"
// @Param body body service.SubmitRequest true "submission"
// @Success 201 {object} util.Response
// @Router /api/tests/{id}/submit [post]
func (c *ResultController) Submit(ctx *gin.Context) {
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

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.Submit(uint(id), req, claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary The requesting student's results
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/student/results [get]
func (c *ResultController) ListOwn(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.Service.ByStudent(claims.UserID, claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, results)
}

// @Summary All submissions for an owned test
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "test id"
// @Success 200 {object} util.Response
// @Router /api/teacher/tests/{id}/results [get]
func (c *ResultController) ListByTest(ctx *gin.Context) {
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

	results, err := c.Service.ByTest(uint(id), claims)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, results)
}
