package service

import (
	"context"
	"testing"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/dto"
	"storefront-be/internal/entity"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreConfig() config.StoreConfig {
	return config.StoreConfig{
		HomeState:             "Maharashtra",
		FreeShippingThreshold: 1000,
		DefaultShippingCharge: 50,
		DefaultGstRate:        18,
		InvoiceDueDays:        30,
		ReturnWindowDays:      7,
	}
}

func newShippingServiceForTest(uow *fakeUow) IShippingService {
	return NewShippingService(&fakeFactory{uow: uow}, testStoreConfig(), gocache.New(5*time.Minute, 10*time.Minute), stubLogger{})
}

func TestRuleMatches(t *testing.T) {
	listRule := &entity.ShippingRule{
		PincodeType: entity.PincodeTypeList,
		Pincodes:    []string{"400001", "400002"},
	}
	rangeRule := &entity.ShippingRule{
		PincodeType: entity.PincodeTypeRange,
		Ranges:      []entity.PincodeRange{{Start: "400000", End: "449999"}},
	}

	assert.True(t, ruleMatches(listRule, "400001"))
	assert.False(t, ruleMatches(listRule, "400003"))

	assert.True(t, ruleMatches(rangeRule, "400000"))
	assert.True(t, ruleMatches(rangeRule, "425000"))
	assert.True(t, ruleMatches(rangeRule, "449999"))
	assert.False(t, ruleMatches(rangeRule, "450000"))
	assert.False(t, ruleMatches(rangeRule, "399999"))
}

func TestEstimate(t *testing.T) {
	metro := &entity.ShippingRule{
		Id:                    uuid.New(),
		Name:                  "Metro",
		Priority:              1,
		PincodeType:           entity.PincodeTypeList,
		Pincodes:              []string{"400001"},
		Charge:                30,
		FreeShippingThreshold: 500,
		MinDeliveryDays:       1,
		MaxDeliveryDays:       2,
		Active:                true,
	}
	zone := &entity.ShippingRule{
		Id:                    uuid.New(),
		Name:                  "Zone",
		Priority:              10,
		PincodeType:           entity.PincodeTypeRange,
		Ranges:                []entity.PincodeRange{{Start: "400000", End: "449999"}},
		Charge:                50,
		FreeShippingThreshold: 750,
		MinDeliveryDays:       2,
		MaxDeliveryDays:       4,
		Active:                true,
	}
	catchAll := &entity.ShippingRule{
		Id:              uuid.New(),
		Name:            "Everywhere",
		Priority:        100,
		PincodeType:     entity.PincodeTypeAll,
		Charge:          80,
		MinDeliveryDays: 4,
		MaxDeliveryDays: 8,
		Active:          true,
	}

	newService := func(rules ...*entity.ShippingRule) (IShippingService, *fakeUow) {
		uow := newFakeUow()
		uow.shipRules.findAllActiveFn = func(ctx context.Context) ([]*entity.ShippingRule, error) {
			return rules, nil
		}
		return newShippingServiceForTest(uow), uow
	}

	t.Run("lowest priority match wins over catch-all", func(t *testing.T) {
		svc, _ := newService(metro, zone, catchAll)
		res, err := svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "400001", ItemsTotal: 200})
		require.NoError(t, err)
		assert.Equal(t, "Metro", res.RuleName)
		assert.Equal(t, 30.0, res.Charge)
		assert.False(t, res.FreeShipping)
		require.NotNil(t, res.DeliveryEarliest)
		require.NotNil(t, res.DeliveryLatest)
	})

	t.Run("range rule covers pincode not in any list", func(t *testing.T) {
		svc, _ := newService(metro, zone, catchAll)
		res, err := svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "425000", ItemsTotal: 200})
		require.NoError(t, err)
		assert.Equal(t, "Zone", res.RuleName)
		assert.Equal(t, 50.0, res.Charge)
	})

	t.Run("catch-all applies only when nothing specific matched", func(t *testing.T) {
		svc, _ := newService(metro, zone, catchAll)
		res, err := svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "560001", ItemsTotal: 200})
		require.NoError(t, err)
		assert.Equal(t, "Everywhere", res.RuleName)
		assert.Equal(t, 80.0, res.Charge)
	})

	t.Run("free shipping over rule threshold", func(t *testing.T) {
		svc, _ := newService(metro, zone, catchAll)
		res, err := svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "400001", ItemsTotal: 600})
		require.NoError(t, err)
		assert.True(t, res.FreeShipping)
		assert.Equal(t, 0.0, res.Charge)
	})

	t.Run("catch-all with zero threshold never ships free", func(t *testing.T) {
		svc, _ := newService(catchAll)
		res, err := svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "560001", ItemsTotal: 99999})
		require.NoError(t, err)
		assert.False(t, res.FreeShipping)
		assert.Equal(t, 80.0, res.Charge)
	})

	t.Run("no rules falls back to store defaults", func(t *testing.T) {
		svc, _ := newService()
		res, err := svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "110001", ItemsTotal: 200})
		require.NoError(t, err)
		assert.True(t, res.Deliverable)
		assert.Equal(t, 50.0, res.Charge)

		res, err = svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "110001", ItemsTotal: 1500})
		require.NoError(t, err)
		assert.True(t, res.FreeShipping)
		assert.Equal(t, 0.0, res.Charge)
	})

	t.Run("rules are served from cache after the first load", func(t *testing.T) {
		svc, uow := newService(metro, zone, catchAll)

		_, err := svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "400001", ItemsTotal: 200})
		require.NoError(t, err)
		_, err = svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "560001", ItemsTotal: 200})
		require.NoError(t, err)

		assert.Equal(t, 1, uow.shipRules.findAllActiveCalls)
	})
}

func TestRuleMutationsInvalidateCache(t *testing.T) {
	uow := newFakeUow()
	uow.shipRules.findAllActiveFn = func(ctx context.Context) ([]*entity.ShippingRule, error) {
		return nil, nil
	}
	svc := newShippingServiceForTest(uow)

	_, err := svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "400001", ItemsTotal: 200})
	require.NoError(t, err)
	require.Equal(t, 1, uow.shipRules.findAllActiveCalls)

	_, err = svc.CreateRule(context.Background(), &dto.CreateShippingRuleRequest{
		Name:        "New Zone",
		Priority:    5,
		PincodeType: "list",
		Pincodes:    []string{"400001"},
		Charge:      40,
		Active:      true,
	})
	require.NoError(t, err)

	_, err = svc.Estimate(context.Background(), &dto.ShippingEstimateRequest{Pincode: "400001", ItemsTotal: 200})
	require.NoError(t, err)
	assert.Equal(t, 2, uow.shipRules.findAllActiveCalls)
}
