package controller

import (
	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"
	"storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IShippingController interface {
	RegisterRoutes(r fiber.Router)
	Estimate(ctx *fiber.Ctx) error
	AdminCreate(ctx *fiber.Ctx) error
	AdminUpdate(ctx *fiber.Ctx) error
	AdminDelete(ctx *fiber.Ctx) error
	AdminList(ctx *fiber.Ctx) error
}

type shippingController struct {
	shippingService service.IShippingService
}

func NewShippingController(shippingService service.IShippingService) IShippingController {
	return &shippingController{
		shippingService: shippingService,
	}
}

func (c *shippingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/shipping/v1")
	// Estimation is public so the storefront can show charges pre-login.
	h.Post("estimate", c.Estimate)

	a := r.Group("/admin/shipping/v1")
	a.Use(serverutils.JwtMiddleware, serverutils.AdminOnly)
	a.Post("rules", c.AdminCreate)
	a.Get("rules", c.AdminList)
	a.Put("rules/:id", c.AdminUpdate)
	a.Delete("rules/:id", c.AdminDelete)
}

func (c *shippingController) Estimate(ctx *fiber.Ctx) error {
	var req dto.ShippingEstimateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shippingService.Estimate(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success estimate shipping", res))
}

func (c *shippingController) AdminCreate(ctx *fiber.Ctx) error {
	var req dto.CreateShippingRuleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shippingService.CreateRule(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create shipping rule", res))
}

func (c *shippingController) AdminUpdate(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateShippingRuleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shippingService.UpdateRule(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update shipping rule", res))
}

func (c *shippingController) AdminDelete(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.shippingService.DeleteRule(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete shipping rule", nil))
}

func (c *shippingController) AdminList(ctx *fiber.Ctx) error {
	res, err := c.shippingService.GetRules(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list shipping rules", res))
}
