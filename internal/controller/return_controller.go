package controller

import (
	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"
	"storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReturnController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	MarkShipped(ctx *fiber.Ctx) error
	AdminList(ctx *fiber.Ctx) error
	AdminReview(ctx *fiber.Ctx) error
	AdminMarkReceived(ctx *fiber.Ctx) error
	AdminProcessRefund(ctx *fiber.Ctx) error
	AdminComplete(ctx *fiber.Ctx) error
}

type returnController struct {
	returnService service.IReturnService
}

func NewReturnController(returnService service.IReturnService) IReturnController {
	return &returnController{
		returnService: returnService,
	}
}

func (c *returnController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/return/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id/cancel", c.Cancel)
	h.Put(":id/ship", c.MarkShipped)

	a := r.Group("/admin/return/v1")
	a.Use(serverutils.JwtMiddleware, serverutils.AdminOnly)
	a.Get("", c.AdminList)
	a.Put(":id/review", c.AdminReview)
	a.Put(":id/received", c.AdminMarkReceived)
	a.Put(":id/refund", c.AdminProcessRefund)
	a.Put(":id/complete", c.AdminComplete)
}

func (c *returnController) Create(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.CreateReturnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.returnService.CreateReturn(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create return request", res))
}

func (c *returnController) List(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.returnService.GetUserReturns(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list returns", res))
}

func (c *returnController) Show(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.returnService.GetReturn(ctx.Context(), userId, isAdminCtx(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show return", res))
}

func (c *returnController) Cancel(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.returnService.CancelReturn(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success cancel return", nil))
}

func (c *returnController) MarkShipped(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.returnService.MarkShipped(ctx.Context(), userId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success mark return shipped", nil))
}

func (c *returnController) AdminList(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.returnService.GetAllReturns(ctx.Context(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list returns", res))
}

func (c *returnController) AdminReview(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.ReviewReturnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.returnService.ReviewReturn(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success review return", nil))
}

func (c *returnController) AdminMarkReceived(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.MarkReturnReceivedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.returnService.MarkReceived(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success mark return received", nil))
}

func (c *returnController) AdminProcessRefund(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.ProcessRefundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.returnService.ProcessRefund(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success process refund", res))
}

func (c *returnController) AdminComplete(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.CompleteReturnRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := c.returnService.CompleteReturn(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success complete return", nil))
}
