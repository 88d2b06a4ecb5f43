package controller

import (
	"storefront-be/internal/dto"
	"storefront-be/internal/pkg/serverutils"
	"storefront-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICouponController interface {
	RegisterRoutes(r fiber.Router)
	Apply(ctx *fiber.Ctx) error
	Best(ctx *fiber.Ctx) error
	AdminCreate(ctx *fiber.Ctx) error
	AdminUpdate(ctx *fiber.Ctx) error
	AdminDelete(ctx *fiber.Ctx) error
	AdminList(ctx *fiber.Ctx) error
	AdminShow(ctx *fiber.Ctx) error
}

type couponController struct {
	couponService service.ICouponService
}

func NewCouponController(couponService service.ICouponService) ICouponController {
	return &couponController{
		couponService: couponService,
	}
}

func (c *couponController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/coupon/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("apply", c.Apply)
	h.Post("best", c.Best)

	a := r.Group("/admin/coupon/v1")
	a.Use(serverutils.JwtMiddleware, serverutils.AdminOnly)
	a.Post("", c.AdminCreate)
	a.Get("", c.AdminList)
	a.Get(":id", c.AdminShow)
	a.Put(":id", c.AdminUpdate)
	a.Delete(":id", c.AdminDelete)
}

func (c *couponController) Apply(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.ApplyCouponRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.couponService.ApplyCoupon(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success apply coupon", res))
}

func (c *couponController) Best(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.BestCouponRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.couponService.SelectBest(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success select best coupon", res))
}

func (c *couponController) AdminCreate(ctx *fiber.Ctx) error {
	var req dto.CreateCouponRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.couponService.CreateCoupon(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create coupon", res))
}

func (c *couponController) AdminUpdate(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateCouponRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.couponService.UpdateCoupon(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update coupon", res))
}

func (c *couponController) AdminDelete(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.couponService.DeleteCoupon(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete coupon", nil))
}

func (c *couponController) AdminList(ctx *fiber.Ctx) error {
	res, err := c.couponService.GetCoupons(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list coupons", res))
}

func (c *couponController) AdminShow(ctx *fiber.Ctx) error {
	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.couponService.GetCoupon(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show coupon", res))
}
