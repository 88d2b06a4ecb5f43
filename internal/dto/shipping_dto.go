package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Estimate ---

type ShippingEstimateRequest struct {
	Pincode    string  `json:"pincode" validate:"required,len=6,numeric"`
	ItemsTotal float64 `json:"items_total" validate:"gte=0"`
}

type ShippingEstimateResponse struct {
	Deliverable      bool       `json:"deliverable"`
	Charge           float64    `json:"charge"`
	FreeShipping     bool       `json:"free_shipping"`
	MinDeliveryDays  int        `json:"min_delivery_days,omitempty"`
	MaxDeliveryDays  int        `json:"max_delivery_days,omitempty"`
	DeliveryEarliest *time.Time `json:"delivery_earliest,omitempty"`
	DeliveryLatest   *time.Time `json:"delivery_latest,omitempty"`
	RuleName         string     `json:"rule_name,omitempty"`
}

// --- Admin Rule Management ---

type PincodeRangeDTO struct {
	Start string `json:"start" validate:"required,len=6,numeric"`
	End   string `json:"end" validate:"required,len=6,numeric"`
}

type CreateShippingRuleRequest struct {
	Name                  string            `json:"name" validate:"required"`
	Priority              int               `json:"priority" validate:"gte=0"`
	PincodeType           string            `json:"pincode_type" validate:"required,oneof=list range all"`
	Pincodes              []string          `json:"pincodes" validate:"omitempty,dive,len=6,numeric"`
	Ranges                []PincodeRangeDTO `json:"ranges" validate:"omitempty,dive"`
	Charge                float64           `json:"charge" validate:"gte=0"`
	FreeShippingThreshold float64           `json:"free_shipping_threshold" validate:"gte=0"`
	MinDeliveryDays       int               `json:"min_delivery_days" validate:"gte=0"`
	MaxDeliveryDays       int               `json:"max_delivery_days" validate:"gte=0"`
	Active                bool              `json:"active"`
}

type UpdateShippingRuleRequest struct {
	Id                    uuid.UUID
	Name                  string            `json:"name" validate:"required"`
	Priority              int               `json:"priority" validate:"gte=0"`
	PincodeType           string            `json:"pincode_type" validate:"required,oneof=list range all"`
	Pincodes              []string          `json:"pincodes" validate:"omitempty,dive,len=6,numeric"`
	Ranges                []PincodeRangeDTO `json:"ranges" validate:"omitempty,dive"`
	Charge                float64           `json:"charge" validate:"gte=0"`
	FreeShippingThreshold float64           `json:"free_shipping_threshold" validate:"gte=0"`
	MinDeliveryDays       int               `json:"min_delivery_days" validate:"gte=0"`
	MaxDeliveryDays       int               `json:"max_delivery_days" validate:"gte=0"`
	Active                bool              `json:"active"`
}

type ShippingRuleResponse struct {
	Id                    uuid.UUID         `json:"id"`
	Name                  string            `json:"name"`
	Priority              int               `json:"priority"`
	PincodeType           string            `json:"pincode_type"`
	Pincodes              []string          `json:"pincodes,omitempty"`
	Ranges                []PincodeRangeDTO `json:"ranges,omitempty"`
	Charge                float64           `json:"charge"`
	FreeShippingThreshold float64           `json:"free_shipping_threshold"`
	MinDeliveryDays       int               `json:"min_delivery_days"`
	MaxDeliveryDays       int               `json:"max_delivery_days"`
	Active                bool              `json:"active"`
	CreatedAt             time.Time         `json:"created_at"`
}
