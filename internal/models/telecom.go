package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a subscriber in the telecom database
type Customer struct {
	ID               int64           `json:"customer_id" db:"customer_id"`
	FirstName        string          `json:"first_name" db:"first_name"`
	LastName         string          `json:"last_name" db:"last_name"`
	PhoneNumber      string          `json:"phone_number" db:"phone_number"`
	Email            string          `json:"email" db:"email"`
	Address          string          `json:"address" db:"address"`
	City             string          `json:"city" db:"city"`
	State            string          `json:"state" db:"state"`
	ZipCode          string          `json:"zip_code" db:"zip_code"`
	PlanType         string          `json:"plan_type" db:"plan_type"`
	MonthlyFee       decimal.Decimal `json:"monthly_fee" db:"monthly_fee"`
	RegistrationDate time.Time       `json:"registration_date" db:"registration_date"`
	Status           string          `json:"status" db:"status"`
}

// CustomerRef is the slice of a customer row the dependent generators draw from
type CustomerRef struct {
	ID         int64           `json:"customer_id" db:"customer_id"`
	MonthlyFee decimal.Decimal `json:"monthly_fee" db:"monthly_fee"`
}

// CallRecord is one call detail record
type CallRecord struct {
	ID             int64           `json:"call_id" db:"call_id"`
	CustomerID     int64           `json:"customer_id" db:"customer_id"`
	ReceiverNumber string          `json:"receiver_number" db:"receiver_number"`
	Duration       int             `json:"call_duration" db:"call_duration"` // seconds
	CallType       string          `json:"call_type" db:"call_type"`
	CallDate       time.Time       `json:"call_date" db:"call_date"`
	Cost           decimal.Decimal `json:"cost" db:"cost"`
}

type DataUsageRecord struct {
	ID         int64           `json:"usage_id" db:"usage_id"`
	CustomerID int64           `json:"customer_id" db:"customer_id"`
	UsageDate  time.Time       `json:"usage_date" db:"usage_date"`
	DataUsedMB decimal.Decimal `json:"data_used_mb" db:"data_used_mb"`
	DataType   string          `json:"data_type" db:"data_type"`
	Cost       decimal.Decimal `json:"cost" db:"cost"`
}

type BillingRecord struct {
	ID            int64           `json:"bill_id" db:"bill_id"`
	CustomerID    int64           `json:"customer_id" db:"customer_id"`
	BillDate      time.Time       `json:"bill_date" db:"bill_date"`
	DueDate       time.Time       `json:"due_date" db:"due_date"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentStatus string          `json:"payment_status" db:"payment_status"`
	PaymentDate   *time.Time      `json:"payment_date" db:"payment_date"`
}

// Plan types
const (
	PlanBasic    = "Basic"
	PlanPremium  = "Premium"
	PlanFamily   = "Family"
	PlanBusiness = "Business"
	PlanStudent  = "Student"
)

// Customer statuses
const (
	StatusActive    = "Active"
	StatusSuspended = "Suspended"
	StatusInactive  = "Inactive"
)

// Call types
const (
	CallLocal         = "Local"
	CallLongDistance  = "Long Distance"
	CallInternational = "International"
	CallMobile        = "Mobile"
)

// Data types
const (
	Data4G      = "4G"
	Data5G      = "5G"
	DataWiFi    = "WiFi"
	DataRoaming = "Roaming"
)

// Payment statuses
const (
	PaymentPaid    = "Paid"
	PaymentPending = "Pending"
	PaymentOverdue = "Overdue"
	PaymentFailed  = "Failed"
)

var (
	PlanTypes       = []string{PlanBasic, PlanPremium, PlanFamily, PlanBusiness, PlanStudent}
	Statuses        = []string{StatusActive, StatusSuspended, StatusInactive}
	CallTypes       = []string{CallLocal, CallLongDistance, CallInternational, CallMobile}
	DataTypes       = []string{Data4G, Data5G, DataWiFi, DataRoaming}
	PaymentStatuses = []string{PaymentPaid, PaymentPending, PaymentOverdue, PaymentFailed}
)

// FeeRange is the inclusive monthly fee band of a plan.
type FeeRange struct {
	Min, Max float64
}

var PlanFees = map[string]FeeRange{
	PlanBasic:    {25, 35},
	PlanPremium:  {60, 80},
	PlanFamily:   {90, 120},
	PlanBusiness: {150, 200},
	PlanStudent:  {15, 25},
}

// CallRates is the cost per minute by call type.
var CallRates = map[string]decimal.Decimal{
	CallLocal:         decimal.RequireFromString("0.05"),
	CallLongDistance:  decimal.RequireFromString("0.15"),
	CallInternational: decimal.RequireFromString("0.50"),
	CallMobile:        decimal.RequireFromString("0.10"),
}

// DataRates is the cost per MB by data type.
var DataRates = map[string]decimal.Decimal{
	Data4G:      decimal.RequireFromString("0.01"),
	Data5G:      decimal.RequireFromString("0.015"),
	DataWiFi:    decimal.RequireFromString("0.005"),
	DataRoaming: decimal.RequireFromString("0.05"),
}

// BillingTermDays is the gap between a bill date and its due date.
const BillingTermDays = 30
