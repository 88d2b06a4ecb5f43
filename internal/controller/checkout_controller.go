package controller

import (
	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"
	"storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICheckoutController interface {
	RegisterRoutes(r fiber.Router)
	Quote(ctx *fiber.Ctx) error
	Initiate(ctx *fiber.Ctx) error
	Verify(ctx *fiber.Ctx) error
	Failed(ctx *fiber.Ctx) error
}

type checkoutController struct {
	checkoutService service.ICheckoutService
}

func NewCheckoutController(checkoutService service.ICheckoutService) ICheckoutController {
	return &checkoutController{
		checkoutService: checkoutService,
	}
}

func (c *checkoutController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/checkout/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("quote", c.Quote)
	h.Post("initiate", c.Initiate)
	h.Post("verify", c.Verify)
	h.Post("failed", c.Failed)
}

func userIdFromCtx(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func isAdminCtx(ctx *fiber.Ctx) bool {
	role, _ := ctx.Locals("role").(string)
	return role == "admin"
}

func (c *checkoutController) Quote(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.QuoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.checkoutService.Quote(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success quote cart", res))
}

func (c *checkoutController) Initiate(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.InitiateCheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.checkoutService.InitiateCheckout(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success initiate checkout", res))
}

func (c *checkoutController) Verify(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.VerifyPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.checkoutService.VerifyPayment(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success verify payment", res))
}

func (c *checkoutController) Failed(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.PaymentFailedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.checkoutService.PaymentFailed(ctx.Context(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment marked as failed", nil))
}
