package balance

import balanceerrors "timecraft/internal/balance/errors"

const (
	CategoryVacation = "VACATION"
	CategorySick     = "SICK"
	CategoryPersonal = "PERSONAL"
	CategoryOther    = "OTHER"
)

// Categories lists every valid time off category in display order.
var Categories = []string{CategoryVacation, CategorySick, CategoryPersonal, CategoryOther}

// ParseCategory normalizes and validates a category string.
func ParseCategory(v string) (string, error) {
	switch v {
	case CategoryVacation, CategorySick, CategoryPersonal, CategoryOther:
		return v, nil
	default:
		return "", balanceerrors.ErrUnknownCategory
	}
}

// Days returns the remaining days for one category.
func (b *TimeoffBalance) Days(category string) (int, error) {
	switch category {
	case CategoryVacation:
		return b.VacationDays, nil
	case CategorySick:
		return b.SickDays, nil
	case CategoryPersonal:
		return b.PersonalDays, nil
	case CategoryOther:
		return b.OtherDays, nil
	default:
		return 0, balanceerrors.ErrUnknownCategory
	}
}

// AddDays adjusts one category by delta. Negative results are allowed, a
// balance can be driven below zero by an approval.
func (b *TimeoffBalance) AddDays(category string, delta int) error {
	switch category {
	case CategoryVacation:
		b.VacationDays += delta
	case CategorySick:
		b.SickDays += delta
	case CategoryPersonal:
		b.PersonalDays += delta
	case CategoryOther:
		b.OtherDays += delta
	default:
		return balanceerrors.ErrUnknownCategory
	}
	return nil
}

// Remaining sums every category, negatives included.
func (b *TimeoffBalance) Remaining() int {
	return b.VacationDays + b.SickDays + b.PersonalDays + b.OtherDays
}
