package generate

import (
	"fmt"

	"github.com/matthieukhl/telcodata/internal/models"
)

// Customers generates n customers whose phone numbers are unique among
// themselves and against taken. taken is updated with every number issued.
func Customers(src *Source, n int, taken PhoneSet) ([]models.Customer, error) {
	if n < 0 {
		return nil, fmt.Errorf("customers: %w: %d", ErrNegativeCount, n)
	}
	if taken == nil {
		taken = NewPhoneSet()
	}

	today := src.Today()
	earliest := today.AddDate(-3, 0, 0)

	customers := make([]models.Customer, 0, n)
	for i := 0; i < n; i++ {
		phone, err := src.UniquePhoneNumber(taken)
		if err != nil {
			return nil, fmt.Errorf("customer %d: %w", i+1, err)
		}

		plan := src.pick(models.PlanTypes)
		fees := models.PlanFees[plan]

		customers = append(customers, models.Customer{
			FirstName:        src.faker.FirstName(),
			LastName:         src.faker.LastName(),
			PhoneNumber:      phone,
			Email:            src.faker.Email(),
			Address:          src.faker.Street(),
			City:             src.faker.City(),
			State:            src.faker.StateAbr(),
			ZipCode:          src.faker.Zip(),
			PlanType:         plan,
			MonthlyFee:       money(src.floatRange(fees.Min, fees.Max)),
			RegistrationDate: src.dateBetween(earliest, today),
			Status:           src.pick(models.Statuses),
		})
	}

	return customers, nil
}
