package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/matthieukhl/telcodata/internal/database"
	"github.com/matthieukhl/telcodata/internal/generate"
	"github.com/matthieukhl/telcodata/internal/models"
	"github.com/shopspring/decimal"
)

// Violation is one broken dataset invariant.
type Violation struct {
	Check  string `json:"check"`
	Table  string `json:"table"`
	RowID  int64  `json:"row_id,omitempty"`
	Detail string `json:"detail"`
}

func (v Violation) String() string {
	if v.RowID != 0 {
		return fmt.Sprintf("[%s] %s #%d: %s", v.Check, v.Table, v.RowID, v.Detail)
	}
	return fmt.Sprintf("[%s] %s: %s", v.Check, v.Table, v.Detail)
}

// Verify checks a persisted dataset for duplicate phone numbers, orphaned
// foreign keys, call costs that disagree with the rate table and billing rows
// with inconsistent dates.
func Verify(ctx context.Context, q database.DBTX) ([]Violation, error) {
	var violations []Violation

	checks := []func(context.Context, database.DBTX) ([]Violation, error){
		duplicatePhones,
		orphans,
		callCosts,
		usageCosts,
		billingDates,
	}
	for _, check := range checks {
		found, err := check(ctx, q)
		if err != nil {
			return nil, err
		}
		violations = append(violations, found...)
	}

	return violations, nil
}

func duplicatePhones(ctx context.Context, q database.DBTX) ([]Violation, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT phone_number, COUNT(*) FROM customers
		GROUP BY phone_number HAVING COUNT(*) > 1`)
	if err != nil {
		return nil, fmt.Errorf("check duplicate phones: %w", err)
	}
	defer rows.Close()

	var out []Violation
	for rows.Next() {
		var phone string
		var n int
		if err := rows.Scan(&phone, &n); err != nil {
			return nil, err
		}
		out = append(out, Violation{Check: "unique_phone", Table: "customers", Detail: fmt.Sprintf("%s used by %d customers", phone, n)})
	}
	return out, rows.Err()
}

func orphans(ctx context.Context, q database.DBTX) ([]Violation, error) {
	dependents := map[string]string{
		"call_records": "call_id",
		"data_usage":   "usage_id",
		"billing":      "bill_id",
	}

	var out []Violation
	for _, table := range database.Tables[1:] {
		rows, err := q.QueryContext(ctx, fmt.Sprintf(`
			SELECT x.%s, x.customer_id FROM %s x
			LEFT JOIN customers c ON c.customer_id = x.customer_id
			WHERE c.customer_id IS NULL`, dependents[table], table))
		if err != nil {
			return nil, fmt.Errorf("check orphans in %s: %w", table, err)
		}

		for rows.Next() {
			var id int64
			var customerID sql.NullInt64
			if err := rows.Scan(&id, &customerID); err != nil {
				rows.Close()
				return nil, err
			}
			out = append(out, Violation{Check: "foreign_key", Table: table, RowID: id,
				Detail: fmt.Sprintf("customer %d does not exist", customerID.Int64)})
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func callCosts(ctx context.Context, q database.DBTX) ([]Violation, error) {
	rows, err := q.QueryContext(ctx, "SELECT call_id, call_duration, call_type, cost FROM call_records")
	if err != nil {
		return nil, fmt.Errorf("check call costs: %w", err)
	}
	defer rows.Close()

	var out []Violation
	for rows.Next() {
		var id int64
		var duration int
		var callType string
		var cost decimal.Decimal
		if err := rows.Scan(&id, &duration, &callType, &cost); err != nil {
			return nil, err
		}
		if _, ok := models.CallRates[callType]; !ok {
			out = append(out, Violation{Check: "call_type", Table: "call_records", RowID: id, Detail: "unknown call type " + callType})
			continue
		}
		if duration < generate.MinCallSeconds || duration > generate.MaxCallSeconds {
			out = append(out, Violation{Check: "call_duration", Table: "call_records", RowID: id, Detail: fmt.Sprintf("duration %ds out of range", duration)})
		}
		if want := generate.CallCost(duration, callType); !want.Equal(cost.Round(2)) {
			out = append(out, Violation{Check: "call_cost", Table: "call_records", RowID: id, Detail: fmt.Sprintf("cost %s, expected %s", cost, want)})
		}
	}
	return out, rows.Err()
}

func usageCosts(ctx context.Context, q database.DBTX) ([]Violation, error) {
	rows, err := q.QueryContext(ctx, "SELECT usage_id, data_used_mb, data_type, cost FROM data_usage")
	if err != nil {
		return nil, fmt.Errorf("check usage costs: %w", err)
	}
	defer rows.Close()

	var out []Violation
	for rows.Next() {
		var id int64
		var used, cost decimal.Decimal
		var dataType string
		if err := rows.Scan(&id, &used, &dataType, &cost); err != nil {
			return nil, err
		}
		if _, ok := models.DataRates[dataType]; !ok {
			out = append(out, Violation{Check: "data_type", Table: "data_usage", RowID: id, Detail: "unknown data type " + dataType})
			continue
		}
		if want := generate.DataCost(used.Round(2), dataType); !want.Equal(cost.Round(2)) {
			out = append(out, Violation{Check: "usage_cost", Table: "data_usage", RowID: id, Detail: fmt.Sprintf("cost %s, expected %s", cost, want)})
		}
	}
	return out, rows.Err()
}

func billingDates(ctx context.Context, q database.DBTX) ([]Violation, error) {
	rows, err := q.QueryContext(ctx, "SELECT bill_id, bill_date, due_date, payment_status, payment_date FROM billing")
	if err != nil {
		return nil, fmt.Errorf("check billing dates: %w", err)
	}
	defer rows.Close()

	var out []Violation
	for rows.Next() {
		var id int64
		var billDate, dueDate time.Time
		var status string
		var paid sql.NullTime
		if err := rows.Scan(&id, &billDate, &dueDate, &status, &paid); err != nil {
			return nil, err
		}

		if !dueDate.Equal(billDate.AddDate(0, 0, models.BillingTermDays)) {
			out = append(out, Violation{Check: "due_date", Table: "billing", RowID: id,
				Detail: fmt.Sprintf("due %s is not bill date %s + %d days", dueDate.Format(time.DateOnly), billDate.Format(time.DateOnly), models.BillingTermDays)})
		}

		switch {
		case status == models.PaymentPaid && !paid.Valid:
			out = append(out, Violation{Check: "payment_date", Table: "billing", RowID: id, Detail: "paid bill without payment date"})
		case status != models.PaymentPaid && paid.Valid:
			out = append(out, Violation{Check: "payment_date", Table: "billing", RowID: id, Detail: status + " bill has a payment date"})
		case paid.Valid && (paid.Time.Before(billDate) || paid.Time.After(dueDate)):
			out = append(out, Violation{Check: "payment_date", Table: "billing", RowID: id,
				Detail: fmt.Sprintf("payment %s outside %s..%s", paid.Time.Format(time.DateOnly), billDate.Format(time.DateOnly), dueDate.Format(time.DateOnly))})
		}
	}
	return out, rows.Err()
}
