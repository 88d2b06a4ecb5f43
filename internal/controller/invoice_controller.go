package controller

import (
	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"
	"storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInvoiceController interface {
	RegisterRoutes(r fiber.Router)
	ShowByOrder(ctx *fiber.Ctx) error
	AdminList(ctx *fiber.Ctx) error
	AdminUpdatePaymentStatus(ctx *fiber.Ctx) error
}

type invoiceController struct {
	invoiceService service.IInvoiceService
}

func NewInvoiceController(invoiceService service.IInvoiceService) IInvoiceController {
	return &invoiceController{
		invoiceService: invoiceService,
	}
}

func (c *invoiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/invoice/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("order/:orderId", c.ShowByOrder)

	a := r.Group("/admin/invoice/v1")
	a.Use(serverutils.JwtMiddleware, serverutils.AdminOnly)
	a.Get("", c.AdminList)
	a.Put(":id/payment-status", c.AdminUpdatePaymentStatus)
}

func (c *invoiceController) ShowByOrder(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)
	orderId, _ := uuid.Parse(ctx.Params("orderId"))

	res, err := c.invoiceService.GetInvoiceByOrder(ctx.Context(), userId, isAdminCtx(ctx), orderId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show invoice", res))
}

func (c *invoiceController) AdminList(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.invoiceService.GetInvoices(ctx.Context(), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list invoices", res))
}

func (c *invoiceController) AdminUpdatePaymentStatus(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateInvoicePaymentStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.invoiceService.UpdatePaymentStatus(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update invoice payment status", nil))
}
