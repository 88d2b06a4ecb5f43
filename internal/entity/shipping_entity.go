package entity

import (
	"time"

	"github.com/google/uuid"
)

type PincodeType string

const (
	PincodeTypeList  PincodeType = "list"
	PincodeTypeRange PincodeType = "range"
	PincodeTypeAll   PincodeType = "all"
)

type PincodeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ShippingRule describes one shipping zone. Rules are evaluated in ascending
// Priority order; the first active match wins.
type ShippingRule struct {
	Id          uuid.UUID
	Name        string
	Priority    int
	PincodeType PincodeType
	Pincodes    []string
	Ranges      []PincodeRange
	Charge      float64

	// FreeShippingThreshold zero means the rule never waives its charge.
	FreeShippingThreshold float64
	MinDeliveryDays       int
	MaxDeliveryDays       int
	Active                bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
