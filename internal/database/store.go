package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/matthieukhl/telcodata/internal/models"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// Store reads and writes telecom records through a connection or a transaction.
type Store struct {
	q DBTX
}

func NewStore(q DBTX) *Store {
	return &Store{q: q}
}

// TableCounts holds the row count of each telecom table.
type TableCounts struct {
	Customers   int64 `json:"customers"`
	CallRecords int64 `json:"call_records"`
	DataUsage   int64 `json:"data_usage"`
	Billing     int64 `json:"billing"`
}

func (c TableCounts) Total() int64 {
	return c.Customers + c.CallRecords + c.DataUsage + c.Billing
}

// insertEach prepares query once and executes it for every index in [0, n).
func (s *Store) insertEach(ctx context.Context, table, query string, n int, args func(i int) []any, created func(i int, id int64)) error {
	if n == 0 {
		return nil
	}

	stmt, err := s.q.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: prepare insert into %s: %w", ErrPersistence, table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		res, err := stmt.ExecContext(ctx, args(i)...)
		if err != nil {
			return fmt.Errorf("%w: insert into %s (row %d): %w", ErrPersistence, table, i+1, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("%w: %s last insert id: %w", ErrPersistence, table, err)
		}
		created(i, id)
	}

	return nil
}

// InsertCustomers writes customers and fills in their generated IDs.
func (s *Store) InsertCustomers(ctx context.Context, customers []models.Customer) error {
	return s.insertEach(ctx, "customers", `
		INSERT INTO customers (first_name, last_name, phone_number, email, address,
		                       city, state, zip_code, plan_type, monthly_fee,
		                       registration_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(customers),
		func(i int) []any {
			c := customers[i]
			return []any{c.FirstName, c.LastName, c.PhoneNumber, c.Email, c.Address,
				c.City, c.State, c.ZipCode, c.PlanType, c.MonthlyFee,
				c.RegistrationDate.Format(dateLayout), c.Status}
		},
		func(i int, id int64) { customers[i].ID = id },
	)
}

func (s *Store) InsertCalls(ctx context.Context, calls []models.CallRecord) error {
	return s.insertEach(ctx, "call_records", `
		INSERT INTO call_records (customer_id, receiver_number, call_duration,
		                          call_type, call_date, cost)
		VALUES (?, ?, ?, ?, ?, ?)`,
		len(calls),
		func(i int) []any {
			c := calls[i]
			return []any{c.CustomerID, c.ReceiverNumber, c.Duration,
				c.CallType, c.CallDate.Format(dateTimeLayout), c.Cost}
		},
		func(i int, id int64) { calls[i].ID = id },
	)
}

func (s *Store) InsertUsage(ctx context.Context, records []models.DataUsageRecord) error {
	return s.insertEach(ctx, "data_usage", `
		INSERT INTO data_usage (customer_id, usage_date, data_used_mb, data_type, cost)
		VALUES (?, ?, ?, ?, ?)`,
		len(records),
		func(i int) []any {
			r := records[i]
			return []any{r.CustomerID, r.UsageDate.Format(dateLayout), r.DataUsedMB, r.DataType, r.Cost}
		},
		func(i int, id int64) { records[i].ID = id },
	)
}

func (s *Store) InsertBills(ctx context.Context, bills []models.BillingRecord) error {
	return s.insertEach(ctx, "billing", `
		INSERT INTO billing (customer_id, bill_date, due_date, amount,
		                     payment_status, payment_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		len(bills),
		func(i int) []any {
			b := bills[i]
			var paid sql.NullString
			if b.PaymentDate != nil {
				paid = sql.NullString{String: b.PaymentDate.Format(dateLayout), Valid: true}
			}
			return []any{b.CustomerID, b.BillDate.Format(dateLayout), b.DueDate.Format(dateLayout),
				b.Amount, b.PaymentStatus, paid}
		},
		func(i int, id int64) { bills[i].ID = id },
	)
}

// PhoneNumbers returns every customer phone number already persisted.
func (s *Store) PhoneNumbers(ctx context.Context) ([]string, error) {
	rows, err := s.q.QueryContext(ctx, "SELECT phone_number FROM customers")
	if err != nil {
		return nil, fmt.Errorf("%w: load phone numbers: %w", ErrPersistence, err)
	}
	defer rows.Close()

	var numbers []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("%w: scan phone number: %w", ErrPersistence, err)
		}
		numbers = append(numbers, number)
	}

	return numbers, rows.Err()
}

// Counts returns the row count of each telecom table.
func (s *Store) Counts(ctx context.Context) (TableCounts, error) {
	var counts TableCounts
	targets := []*int64{&counts.Customers, &counts.CallRecords, &counts.DataUsage, &counts.Billing}

	for i, table := range Tables {
		if err := s.q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(targets[i]); err != nil {
			return TableCounts{}, fmt.Errorf("count %s: %w", table, err)
		}
	}

	return counts, nil
}
