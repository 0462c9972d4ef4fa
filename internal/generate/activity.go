package generate

import (
	"fmt"

	"github.com/matthieukhl/telcodata/internal/models"
	"github.com/shopspring/decimal"
)

const (
	MinCallSeconds = 30
	MaxCallSeconds = 7200

	MinDataMB = 10
	MaxDataMB = 50000
)

var sixty = decimal.NewFromInt(60)

// CallCost is duration in minutes times the per-minute rate of callType, rounded to cents.
func CallCost(durationSeconds int, callType string) decimal.Decimal {
	minutes := decimal.NewFromInt(int64(durationSeconds)).Div(sixty)
	return minutes.Mul(models.CallRates[callType]).Round(2)
}

// DataCost is usage times the per-MB rate of dataType, rounded to cents.
func DataCost(usedMB decimal.Decimal, dataType string) decimal.Decimal {
	return usedMB.Mul(models.DataRates[dataType]).Round(2)
}

// Calls generates m call detail records over the past year for customers in pool.
func Calls(src *Source, pool []models.CustomerRef, m int) ([]models.CallRecord, error) {
	if m < 0 {
		return nil, fmt.Errorf("call records: %w: %d", ErrNegativeCount, m)
	}
	if m > 0 && len(pool) == 0 {
		return nil, ErrPrecursorMissing
	}

	now := src.Now()
	start := now.AddDate(-1, 0, 0)

	calls := make([]models.CallRecord, 0, m)
	for i := 0; i < m; i++ {
		customer := pool[src.rng.IntN(len(pool))]
		callType := src.pick(models.CallTypes)
		duration := src.intRange(MinCallSeconds, MaxCallSeconds)

		calls = append(calls, models.CallRecord{
			CustomerID:     customer.ID,
			ReceiverNumber: src.PhoneNumber(),
			Duration:       duration,
			CallType:       callType,
			CallDate:       src.timeBetween(start, now),
			Cost:           CallCost(duration, callType),
		})
	}

	return calls, nil
}

// Usage generates m data usage records over the past year for customers in pool.
func Usage(src *Source, pool []models.CustomerRef, m int) ([]models.DataUsageRecord, error) {
	if m < 0 {
		return nil, fmt.Errorf("data usage: %w: %d", ErrNegativeCount, m)
	}
	if m > 0 && len(pool) == 0 {
		return nil, ErrPrecursorMissing
	}

	today := src.Today()
	start := today.AddDate(-1, 0, 0)

	records := make([]models.DataUsageRecord, 0, m)
	for i := 0; i < m; i++ {
		customer := pool[src.rng.IntN(len(pool))]
		dataType := src.pick(models.DataTypes)
		used := money(src.floatRange(MinDataMB, MaxDataMB))

		records = append(records, models.DataUsageRecord{
			CustomerID: customer.ID,
			UsageDate:  src.dateBetween(start, today),
			DataUsedMB: used,
			DataType:   dataType,
			Cost:       DataCost(used, dataType),
		})
	}

	return records, nil
}

// Bills generates m billing records. The amount varies around the customer's
// monthly fee and only Paid bills carry a payment date.
func Bills(src *Source, pool []models.CustomerRef, m int) ([]models.BillingRecord, error) {
	if m < 0 {
		return nil, fmt.Errorf("billing: %w: %d", ErrNegativeCount, m)
	}
	if m > 0 && len(pool) == 0 {
		return nil, ErrPrecursorMissing
	}

	today := src.Today()
	start := today.AddDate(-1, 0, 0)

	bills := make([]models.BillingRecord, 0, m)
	for i := 0; i < m; i++ {
		customer := pool[src.rng.IntN(len(pool))]
		billDate := src.dateBetween(start, today)
		dueDate := billDate.AddDate(0, 0, models.BillingTermDays)
		variation := decimal.NewFromFloat(src.floatRange(-10, 50))

		bill := models.BillingRecord{
			CustomerID:    customer.ID,
			BillDate:      billDate,
			DueDate:       dueDate,
			Amount:        customer.MonthlyFee.Add(variation).Round(2),
			PaymentStatus: src.pick(models.PaymentStatuses),
		}
		if bill.PaymentStatus == models.PaymentPaid {
			paid := src.dateBetween(billDate, dueDate)
			bill.PaymentDate = &paid
		}

		bills = append(bills, bill)
	}

	return bills, nil
}
