package controller

import (
	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"
	"storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IOrderController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	AdminList(ctx *fiber.Ctx) error
	AdminUpdateStatus(ctx *fiber.Ctx) error
}

type orderController struct {
	orderService service.IOrderService
}

func NewOrderController(orderService service.IOrderService) IOrderController {
	return &orderController{
		orderService: orderService,
	}
}

func (c *orderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/order/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Show)

	a := r.Group("/admin/order/v1")
	a.Use(serverutils.JwtMiddleware, serverutils.AdminOnly)
	a.Get("", c.AdminList)
	a.Put(":id/status", c.AdminUpdateStatus)
}

func (c *orderController) List(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.orderService.GetUserOrders(ctx.Context(), userId, page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list orders", res))
}

func (c *orderController) Show(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.orderService.GetOrder(ctx.Context(), userId, isAdminCtx(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show order", res))
}

func (c *orderController) AdminList(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.orderService.GetAllOrders(ctx.Context(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list orders", res))
}

func (c *orderController) AdminUpdateStatus(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateOrderStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.orderService.UpdateStatus(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update order status", nil))
}
