package generate

import (
	"regexp"
	"testing"
	"time"

	"github.com/matthieukhl/telcodata/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)

var phonePattern = regexp.MustCompile(`^(201|202|203|205|206|207|208|209|210)-\d{3}-\d{4}$`)

func testPool(n int) []models.CustomerRef {
	pool := make([]models.CustomerRef, n)
	for i := range pool {
		pool[i] = models.CustomerRef{ID: int64(i + 1), MonthlyFee: decimal.RequireFromString("30.00")}
	}
	return pool
}

func TestCustomers_UniquePhonesAndFees(t *testing.T) {
	t.Parallel()

	src := NewSource(1, refNow)
	customers, err := Customers(src, 2000, nil)
	require.NoError(t, err)
	require.Len(t, customers, 2000)

	seen := make(map[string]bool)
	earliest := src.Today().AddDate(-3, 0, 0)
	for _, c := range customers {
		require.False(t, seen[c.PhoneNumber], "duplicate phone %s", c.PhoneNumber)
		seen[c.PhoneNumber] = true
		assert.Regexp(t, phonePattern, c.PhoneNumber)

		fees, ok := models.PlanFees[c.PlanType]
		require.True(t, ok, "unknown plan %q", c.PlanType)
		fee := c.MonthlyFee.InexactFloat64()
		assert.GreaterOrEqual(t, fee, fees.Min)
		assert.LessOrEqual(t, fee, fees.Max)
		assert.True(t, c.MonthlyFee.Equal(c.MonthlyFee.Round(2)))

		assert.Contains(t, models.Statuses, c.Status)
		assert.False(t, c.RegistrationDate.Before(earliest))
		assert.False(t, c.RegistrationDate.After(src.Today()))
		assert.NotEmpty(t, c.FirstName)
		assert.NotEmpty(t, c.LastName)
		assert.NotEmpty(t, c.Email)
	}
}

func TestCustomers_AvoidsTakenNumbers(t *testing.T) {
	t.Parallel()

	// Draw the numbers a fresh source would produce, then mark them taken.
	first, err := Customers(NewSource(7, refNow), 50, nil)
	require.NoError(t, err)
	taken := NewPhoneSet()
	for _, c := range first {
		taken[c.PhoneNumber] = struct{}{}
	}

	second, err := Customers(NewSource(7, refNow), 50, taken)
	require.NoError(t, err)
	for _, c := range second {
		for _, prev := range first {
			assert.NotEqual(t, prev.PhoneNumber, c.PhoneNumber)
		}
	}
	assert.Len(t, taken, 100)
}

func TestUniquePhoneNumber_BudgetExhausted(t *testing.T) {
	t.Parallel()

	// A source with the same seed replays the same draws, so every attempt collides.
	replay := NewSource(3, refNow)
	taken := NewPhoneSet()
	for i := 0; i < MaxPhoneAttempts; i++ {
		taken[replay.PhoneNumber()] = struct{}{}
	}

	_, err := NewSource(3, refNow).UniquePhoneNumber(taken)
	require.ErrorIs(t, err, ErrUniquenessViolation)
}

func TestCalls_CostMatchesRate(t *testing.T) {
	t.Parallel()

	src := NewSource(11, refNow)
	calls, err := Calls(src, testPool(5), 1000)
	require.NoError(t, err)
	require.Len(t, calls, 1000)

	for _, c := range calls {
		assert.GreaterOrEqual(t, c.Duration, MinCallSeconds)
		assert.LessOrEqual(t, c.Duration, MaxCallSeconds)
		assert.Contains(t, models.CallTypes, c.CallType)
		assert.GreaterOrEqual(t, c.CustomerID, int64(1))
		assert.LessOrEqual(t, c.CustomerID, int64(5))

		rate := models.CallRates[c.CallType]
		want := decimal.NewFromInt(int64(c.Duration)).Div(decimal.NewFromInt(60)).Mul(rate).Round(2)
		assert.True(t, want.Equal(c.Cost), "cost %s want %s", c.Cost, want)

		minutes := float64(c.Duration) / 60
		assert.InDelta(t, minutes*rate.InexactFloat64(), c.Cost.InexactFloat64(), 0.0051)
		perMinute := c.Cost.InexactFloat64() / minutes
		assert.GreaterOrEqual(t, perMinute, 0.05-0.01)
		assert.LessOrEqual(t, perMinute, 0.50+0.01)

		assert.False(t, c.CallDate.Before(refNow.AddDate(-1, 0, 0).Truncate(time.Second)))
		assert.False(t, c.CallDate.After(refNow))
	}
}

func TestCallCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		duration int
		callType string
		want     string
	}{
		{60, models.CallLocal, "0.05"},
		{30, models.CallLocal, "0.03"},
		{7200, models.CallInternational, "60"},
		{90, models.CallLongDistance, "0.23"},
		{125, models.CallMobile, "0.21"},
	}
	for _, tt := range tests {
		got := CallCost(tt.duration, tt.callType)
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "%d %s: got %s want %s", tt.duration, tt.callType, got, tt.want)
	}
}

func TestUsage_CostMatchesRate(t *testing.T) {
	t.Parallel()

	src := NewSource(12, refNow)
	records, err := Usage(src, testPool(3), 500)
	require.NoError(t, err)
	require.Len(t, records, 500)

	for _, r := range records {
		mb := r.DataUsedMB.InexactFloat64()
		assert.GreaterOrEqual(t, mb, float64(MinDataMB))
		assert.LessOrEqual(t, mb, float64(MaxDataMB))
		assert.Contains(t, models.DataTypes, r.DataType)
		want := r.DataUsedMB.Mul(models.DataRates[r.DataType]).Round(2)
		assert.True(t, want.Equal(r.Cost), "cost %s want %s", r.Cost, want)
		assert.False(t, r.UsageDate.After(src.Today()))
		assert.False(t, r.UsageDate.Before(src.Today().AddDate(-1, 0, 0)))
	}
}

func TestBills_DatesAndPayment(t *testing.T) {
	t.Parallel()

	src := NewSource(13, refNow)
	bills, err := Bills(src, testPool(4), 800)
	require.NoError(t, err)
	require.Len(t, bills, 800)

	paid := 0
	for _, b := range bills {
		assert.Equal(t, b.BillDate.AddDate(0, 0, 30), b.DueDate)
		assert.False(t, b.BillDate.Before(src.Today().AddDate(-1, 0, 0)))
		assert.False(t, b.BillDate.After(src.Today()))
		assert.Contains(t, models.PaymentStatuses, b.PaymentStatus)

		amount := b.Amount.InexactFloat64()
		assert.GreaterOrEqual(t, amount, 20.0)
		assert.LessOrEqual(t, amount, 80.0)
		assert.True(t, b.Amount.Equal(b.Amount.Round(2)))

		if b.PaymentStatus == models.PaymentPaid {
			paid++
			require.NotNil(t, b.PaymentDate)
			assert.False(t, b.PaymentDate.Before(b.BillDate))
			assert.False(t, b.PaymentDate.After(b.DueDate))
		} else {
			assert.Nil(t, b.PaymentDate)
		}
	}
	assert.Positive(t, paid)
}

func TestDependentGenerators_PrecursorMissing(t *testing.T) {
	t.Parallel()

	src := NewSource(1, refNow)

	_, err := Calls(src, nil, 1)
	require.ErrorIs(t, err, ErrPrecursorMissing)
	_, err = Usage(src, nil, 1)
	require.ErrorIs(t, err, ErrPrecursorMissing)
	_, err = Bills(src, nil, 1)
	require.ErrorIs(t, err, ErrPrecursorMissing)

	calls, err := Calls(src, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, calls)
}

func TestGenerators_NegativeCount(t *testing.T) {
	t.Parallel()

	src := NewSource(1, refNow)
	pool := testPool(2)

	_, err := Customers(src, -1, nil)
	require.ErrorIs(t, err, ErrNegativeCount)
	_, err = Calls(src, pool, -1)
	require.ErrorIs(t, err, ErrNegativeCount)
	_, err = Usage(src, pool, -5)
	require.ErrorIs(t, err, ErrNegativeCount)
	_, err = Bills(src, nil, -1)
	require.ErrorIs(t, err, ErrNegativeCount)
}

func TestSource_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := Customers(NewSource(99, refNow), 20, nil)
	require.NoError(t, err)
	b, err := Customers(NewSource(99, refNow), 20, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Customers(NewSource(100, refNow), 20, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
