package report

import (
	"context"
	"fmt"
	"io"

	"github.com/matthieukhl/telcodata/internal/database"
	"github.com/olekukonko/tablewriter"
)

// PlanSummary is one row of the customers-by-plan report.
type PlanSummary struct {
	PlanType  string  `json:"plan_type"`
	Customers int64   `json:"customers"`
	AvgFee    float64 `json:"avg_fee"`
}

type CustomerCallCost struct {
	CustomerID int64   `json:"customer_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	TotalCost  float64 `json:"total_cost"`
}

type DataTypeSummary struct {
	DataType  string  `json:"data_type"`
	Records   int64   `json:"records"`
	AvgMB     float64 `json:"avg_usage_mb"`
	TotalCost float64 `json:"total_cost"`
}

// Summary is the read-only overview printed after a run.
type Summary struct {
	Counts     database.TableCounts `json:"counts"`
	Plans      []PlanSummary        `json:"plans"`
	TopCallers []CustomerCallCost   `json:"top_callers"`
	DataByType []DataTypeSummary    `json:"data_by_type"`
}

// TopCallerLimit is how many customers the call-cost ranking lists.
const TopCallerLimit = 5

// Build runs the sample aggregate queries.
func Build(ctx context.Context, q database.DBTX) (*Summary, error) {
	counts, err := database.NewStore(q).Counts(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Counts: counts}

	if summary.Plans, err = plans(ctx, q); err != nil {
		return nil, fmt.Errorf("customers by plan: %w", err)
	}
	if summary.TopCallers, err = topCallers(ctx, q); err != nil {
		return nil, fmt.Errorf("top callers: %w", err)
	}
	if summary.DataByType, err = dataByType(ctx, q); err != nil {
		return nil, fmt.Errorf("data usage by type: %w", err)
	}

	return summary, nil
}

func plans(ctx context.Context, q database.DBTX) ([]PlanSummary, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT plan_type, COUNT(*) AS count, AVG(monthly_fee) AS avg_fee
		FROM customers
		GROUP BY plan_type
		ORDER BY count DESC, plan_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PlanSummary
	for rows.Next() {
		var p PlanSummary
		if err := rows.Scan(&p.PlanType, &p.Customers, &p.AvgFee); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func topCallers(ctx context.Context, q database.DBTX) ([]CustomerCallCost, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.customer_id, c.first_name, c.last_name, SUM(cr.cost) AS total_cost
		FROM customers c
		JOIN call_records cr ON c.customer_id = cr.customer_id
		GROUP BY c.customer_id, c.first_name, c.last_name
		ORDER BY total_cost DESC, c.customer_id
		LIMIT ?`, TopCallerLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CustomerCallCost
	for rows.Next() {
		var c CustomerCallCost
		if err := rows.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.TotalCost); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func dataByType(ctx context.Context, q database.DBTX) ([]DataTypeSummary, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT data_type, COUNT(*) AS records,
		       AVG(data_used_mb) AS avg_usage,
		       SUM(cost) AS total_cost
		FROM data_usage
		GROUP BY data_type
		ORDER BY data_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DataTypeSummary
	for rows.Next() {
		var d DataTypeSummary
		if err := rows.Scan(&d.DataType, &d.Records, &d.AvgMB, &d.TotalCost); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetBorder(true)
	table.SetHeader(header)
	return table
}

// Render writes the summary as console tables.
func (s *Summary) Render(w io.Writer) {
	fmt.Fprintln(w, "\n=== Database Statistics ===")
	fmt.Fprintf(w, "Total records: %d\n", s.Counts.Total())
	counts := newTable(w, "Table", "Rows")
	counts.Append([]string{"Customers", fmt.Sprintf("%d", s.Counts.Customers)})
	counts.Append([]string{"Call Records", fmt.Sprintf("%d", s.Counts.CallRecords)})
	counts.Append([]string{"Data Usage", fmt.Sprintf("%d", s.Counts.DataUsage)})
	counts.Append([]string{"Billing", fmt.Sprintf("%d", s.Counts.Billing)})
	counts.Render()

	fmt.Fprintln(w, "\n=== Sample Queries ===")

	fmt.Fprintln(w, "\n1. Customers by Plan Type:")
	planTable := newTable(w, "Plan", "Customers", "Avg Fee")
	for _, p := range s.Plans {
		planTable.Append([]string{p.PlanType, fmt.Sprintf("%d", p.Customers), fmt.Sprintf("$%.2f", p.AvgFee)})
	}
	planTable.Render()

	fmt.Fprintf(w, "\n2. Top %d Customers by Call Costs:\n", TopCallerLimit)
	callerTable := newTable(w, "Customer", "Total Cost")
	for _, c := range s.TopCallers {
		callerTable.Append([]string{c.FirstName + " " + c.LastName, fmt.Sprintf("$%.2f", c.TotalCost)})
	}
	callerTable.Render()

	fmt.Fprintln(w, "\n3. Data Usage by Type:")
	dataTable := newTable(w, "Type", "Records", "Avg (MB)", "Total Cost")
	for _, d := range s.DataByType {
		dataTable.Append([]string{d.DataType, fmt.Sprintf("%d", d.Records), fmt.Sprintf("%.2f", d.AvgMB), fmt.Sprintf("$%.2f", d.TotalCost)})
	}
	dataTable.Render()
}
