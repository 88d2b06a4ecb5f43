package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"storefront-be/internal/entity"
	"storefront-be/internal/model"
	"storefront-be/internal/repository/unitofwork"
	"storefront-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.OrderRepository())
	assert.NotNil(t, uow.CouponRepository())
	assert.NotNil(t, uow.ReturnRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check Order Repository", func(t *testing.T) {
		count, err := uow.OrderRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Order count: %d", count)
	})

	t.Run("Check Coupon Lifecycle", func(t *testing.T) {
		code := "ITEST" + uuid.New().String()[:8]
		coupon := &entity.Coupon{
			Id:            uuid.New(),
			Code:          code,
			DiscountType:  entity.DiscountTypeFixed,
			DiscountValue: 50,
			UsageLimit:    1,
			ValidFrom:     time.Now().Add(-time.Hour),
			ValidUntil:    time.Now().Add(time.Hour),
			Active:        true,
		}
		require.NoError(t, uow.CouponRepository().Create(context.Background(), coupon))

		found, err := uow.CouponRepository().FindByCode(context.Background(), code)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, coupon.Id, found.Id)

		// First redemption consumes the only use; the second must refuse.
		ok, err := uow.CouponRepository().IncrementUsage(context.Background(), coupon.Id)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = uow.CouponRepository().IncrementUsage(context.Background(), coupon.Id)
		require.NoError(t, err)
		assert.False(t, ok)

		assert.NoError(t, uow.CouponRepository().Delete(context.Background(), coupon.Id))
	})

	t.Run("Check Active Return Uniqueness", func(t *testing.T) {
		user := &model.User{
			ID:       uuid.New(),
			Email:    "itest-" + uuid.New().String()[:8] + "@example.com",
			FullName: "Return Tester",
			Role:     "user",
			Status:   "active",
		}
		require.NoError(t, gormDB.Create(user).Error)
		defer gormDB.Unscoped().Delete(user)

		order := &model.Order{
			ID:              uuid.New(),
			UserID:          user.ID,
			ShipFullName:    "Return Tester",
			ShipPhone:       "9876543210",
			ShipAddressLine: "14 MG Road",
			ShipCity:        "Mumbai",
			ShipState:       "Maharashtra",
			ShipPincode:     "400001",
			PaymentMethod:   "cod",
			PaymentStatus:   "pending",
			GrandTotal:      100,
			Status:          "delivered",
		}
		require.NoError(t, gormDB.Create(order).Error)
		defer gormDB.Unscoped().Delete(order)

		first := &model.ReturnRequest{ID: uuid.New(), OrderID: order.ID, UserID: user.ID, Status: "pending"}
		require.NoError(t, gormDB.Create(first).Error)
		defer gormDB.Unscoped().Delete(first)

		// The partial unique index rejects a second active return.
		second := &model.ReturnRequest{ID: uuid.New(), OrderID: order.ID, UserID: user.ID, Status: "approved"}
		require.Error(t, gormDB.Create(second).Error)

		// A terminal return stops blocking.
		require.NoError(t, gormDB.Model(first).Update("status", "cancelled").Error)
		third := &model.ReturnRequest{ID: uuid.New(), OrderID: order.ID, UserID: user.ID, Status: "pending"}
		require.NoError(t, gormDB.Create(third).Error)
		gormDB.Unscoped().Delete(third)
	})

	t.Run("Check Shipping Rule Ordering", func(t *testing.T) {
		rule := &entity.ShippingRule{
			Id:              uuid.New(),
			Name:            "Integration Rule " + uuid.New().String()[:8],
			Priority:        999,
			PincodeType:     entity.PincodeTypeAll,
			Charge:          60,
			MinDeliveryDays: 3,
			MaxDeliveryDays: 6,
			Active:          true,
		}
		require.NoError(t, uow.ShippingRuleRepository().Create(context.Background(), rule))

		rules, err := uow.ShippingRuleRepository().FindAllActive(context.Background())
		require.NoError(t, err)
		for i := 1; i < len(rules); i++ {
			assert.LessOrEqual(t, rules[i-1].Priority, rules[i].Priority)
		}

		assert.NoError(t, uow.ShippingRuleRepository().Delete(context.Background(), rule.Id))
	})
}
