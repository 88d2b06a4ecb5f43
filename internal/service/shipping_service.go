package service

import (
	"context"
	"time"

	"storefront-be/internal/config"
	"storefront-be/internal/dto"
	"storefront-be/internal/entity"
	"storefront-be/internal/pkg/apperror"
	"storefront-be/internal/pkg/logger"
	"storefront-be/internal/repository/specification"
	"storefront-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const shippingRulesCacheKey = "shipping:rules:active"

type IShippingService interface {
	// Estimate resolves the shipping charge and delivery window for a
	// pincode. It never errors on an unserviced pincode; the configured
	// fallback applies instead.
	Estimate(ctx context.Context, req *dto.ShippingEstimateRequest) (*dto.ShippingEstimateResponse, error)

	CreateRule(ctx context.Context, req *dto.CreateShippingRuleRequest) (*dto.ShippingRuleResponse, error)
	UpdateRule(ctx context.Context, req *dto.UpdateShippingRuleRequest) (*dto.ShippingRuleResponse, error)
	DeleteRule(ctx context.Context, id uuid.UUID) error
	GetRules(ctx context.Context) ([]*dto.ShippingRuleResponse, error)
}

type shippingService struct {
	uowFactory unitofwork.RepositoryFactory
	store      config.StoreConfig
	cache      *gocache.Cache
	logger     logger.ILogger
}

func NewShippingService(uowFactory unitofwork.RepositoryFactory, store config.StoreConfig, cache *gocache.Cache, log logger.ILogger) IShippingService {
	return &shippingService{
		uowFactory: uowFactory,
		store:      store,
		cache:      cache,
		logger:     log,
	}
}

func (s *shippingService) activeRules(ctx context.Context) ([]*entity.ShippingRule, error) {
	if cached, found := s.cache.Get(shippingRulesCacheKey); found {
		if rules, ok := cached.([]*entity.ShippingRule); ok {
			return rules, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rules, err := uow.ShippingRuleRepository().FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(shippingRulesCacheKey, rules, 5*time.Minute)
	return rules, nil
}

// ruleMatches reports whether the rule covers the pincode. Range bounds are
// compared as strings, matching how the rules are authored.
func ruleMatches(rule *entity.ShippingRule, pincode string) bool {
	switch rule.PincodeType {
	case entity.PincodeTypeList:
		for _, p := range rule.Pincodes {
			if p == pincode {
				return true
			}
		}
	case entity.PincodeTypeRange:
		for _, r := range rule.Ranges {
			if pincode >= r.Start && pincode <= r.End {
				return true
			}
		}
	}
	return false
}

func (s *shippingService) Estimate(ctx context.Context, req *dto.ShippingEstimateRequest) (*dto.ShippingEstimateResponse, error) {
	rules, err := s.activeRules(ctx)
	if err != nil {
		return nil, err
	}

	// Rules arrive ordered by ascending priority; the first match wins.
	// A catch-all rule only applies when nothing more specific matched.
	var winner, catchAll *entity.ShippingRule
	for _, rule := range rules {
		if rule.PincodeType == entity.PincodeTypeAll {
			if catchAll == nil {
				catchAll = rule
			}
			continue
		}
		if ruleMatches(rule, req.Pincode) {
			winner = rule
			break
		}
	}
	if winner == nil {
		winner = catchAll
	}

	if winner == nil {
		// Hard-coded fallback when no rule covers the pincode.
		charge := s.store.DefaultShippingCharge
		free := req.ItemsTotal >= s.store.FreeShippingThreshold
		if free {
			charge = 0
		}
		return &dto.ShippingEstimateResponse{
			Deliverable:  true,
			Charge:       charge,
			FreeShipping: free,
		}, nil
	}

	charge := winner.Charge
	free := winner.FreeShippingThreshold > 0 && req.ItemsTotal >= winner.FreeShippingThreshold
	if free {
		charge = 0
	}

	res := &dto.ShippingEstimateResponse{
		Deliverable:     true,
		Charge:          charge,
		FreeShipping:    free,
		MinDeliveryDays: winner.MinDeliveryDays,
		MaxDeliveryDays: winner.MaxDeliveryDays,
		RuleName:        winner.Name,
	}
	if winner.MaxDeliveryDays > 0 {
		earliest := time.Now().AddDate(0, 0, winner.MinDeliveryDays)
		latest := time.Now().AddDate(0, 0, winner.MaxDeliveryDays)
		res.DeliveryEarliest = &earliest
		res.DeliveryLatest = &latest
	}
	return res, nil
}

// --- Admin Rule Management ---

func (s *shippingService) CreateRule(ctx context.Context, req *dto.CreateShippingRuleRequest) (*dto.ShippingRuleResponse, error) {
	rule := &entity.ShippingRule{
		Id:                    uuid.New(),
		Name:                  req.Name,
		Priority:              req.Priority,
		PincodeType:           entity.PincodeType(req.PincodeType),
		Pincodes:              req.Pincodes,
		Ranges:                toEntityRanges(req.Ranges),
		Charge:                req.Charge,
		FreeShippingThreshold: req.FreeShippingThreshold,
		MinDeliveryDays:       req.MinDeliveryDays,
		MaxDeliveryDays:       req.MaxDeliveryDays,
		Active:                req.Active,
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ShippingRuleRepository().Create(ctx, rule); err != nil {
		return nil, err
	}

	s.cache.Delete(shippingRulesCacheKey)
	return toShippingRuleResponse(rule), nil
}

func (s *shippingService) UpdateRule(ctx context.Context, req *dto.UpdateShippingRuleRequest) (*dto.ShippingRuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rule, err := uow.ShippingRuleRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperror.NotFound("shipping rule not found")
	}

	rule.Name = req.Name
	rule.Priority = req.Priority
	rule.PincodeType = entity.PincodeType(req.PincodeType)
	rule.Pincodes = req.Pincodes
	rule.Ranges = toEntityRanges(req.Ranges)
	rule.Charge = req.Charge
	rule.FreeShippingThreshold = req.FreeShippingThreshold
	rule.MinDeliveryDays = req.MinDeliveryDays
	rule.MaxDeliveryDays = req.MaxDeliveryDays
	rule.Active = req.Active
	rule.UpdatedAt = time.Now()

	if err := uow.ShippingRuleRepository().Update(ctx, rule); err != nil {
		return nil, err
	}

	s.cache.Delete(shippingRulesCacheKey)
	return toShippingRuleResponse(rule), nil
}

func (s *shippingService) DeleteRule(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rule, err := uow.ShippingRuleRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if rule == nil {
		return apperror.NotFound("shipping rule not found")
	}

	if err := uow.ShippingRuleRepository().Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(shippingRulesCacheKey)
	return nil
}

func (s *shippingService) GetRules(ctx context.Context) ([]*dto.ShippingRuleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rules, err := uow.ShippingRuleRepository().FindAll(ctx, specification.OrderBy{Field: "priority"})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ShippingRuleResponse, 0, len(rules))
	for _, r := range rules {
		res = append(res, toShippingRuleResponse(r))
	}
	return res, nil
}

func toEntityRanges(ranges []dto.PincodeRangeDTO) []entity.PincodeRange {
	out := make([]entity.PincodeRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, entity.PincodeRange{Start: r.Start, End: r.End})
	}
	return out
}

func toShippingRuleResponse(r *entity.ShippingRule) *dto.ShippingRuleResponse {
	ranges := make([]dto.PincodeRangeDTO, 0, len(r.Ranges))
	for _, rg := range r.Ranges {
		ranges = append(ranges, dto.PincodeRangeDTO{Start: rg.Start, End: rg.End})
	}
	return &dto.ShippingRuleResponse{
		Id:                    r.Id,
		Name:                  r.Name,
		Priority:              r.Priority,
		PincodeType:           string(r.PincodeType),
		Pincodes:              r.Pincodes,
		Ranges:                ranges,
		Charge:                r.Charge,
		FreeShippingThreshold: r.FreeShippingThreshold,
		MinDeliveryDays:       r.MinDeliveryDays,
		MaxDeliveryDays:       r.MaxDeliveryDays,
		Active:                r.Active,
		CreatedAt:             r.CreatedAt,
	}
}
