package expense

import (
	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/core/common/validation"
)

// CreateExpenseDTO represents the request payload for recording an expense
type CreateExpenseDTO struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
}

func (dto CreateExpenseDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("category", dto.Category).Required(internal.ErrCodeInvalidCategory).MaxLength(100)
	v.Field("description", dto.Description).Required(internal.ErrCodeInvalidDescription).MaxLength(500)
	v.Field("date", dto.Date).Required(internal.ErrCodeInvalidDate).Date(ParseDate)
	v.Field("amount", dto.Amount).Positive(internal.ErrCodeInvalidAmount)

	if err := v.ValidateWithMessage(internal.ErrInvalidExpense.Message); err != nil {
		return err
	}
	return nil
}

type SearchDTO struct {
	Query string `json:"query"`
}

// FilterDTO carries raw filter form values. Empty values mean "no bound".
type FilterDTO struct {
	Categories []string `json:"categories"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	MinAmount  *float64 `json:"min_amount,omitempty"`
	MaxAmount  *float64 `json:"max_amount,omitempty"`
}

func (dto FilterDTO) ToCriteria() (Criteria, error) {
	v := validation.NewValidator()
	v.Field("from", dto.From).Date(ParseDate)
	v.Field("to", dto.To).Date(ParseDate)
	if dto.MinAmount != nil {
		v.Field("min_amount", *dto.MinAmount).NonNegative(internal.ErrCodeInvalidAmount)
	}
	if dto.MaxAmount != nil {
		v.Field("max_amount", *dto.MaxAmount).NonNegative(internal.ErrCodeInvalidAmount)
	}
	if err := v.Validate(); err != nil {
		return Criteria{}, err
	}

	criteria := Criteria{
		MinAmount: dto.MinAmount,
		MaxAmount: dto.MaxAmount,
	}
	for _, c := range dto.Categories {
		if c != "" {
			criteria.Categories = append(criteria.Categories, c)
		}
	}
	if from, ok := ParseDate(dto.From); ok {
		criteria.From = &from
	}
	if to, ok := ParseDate(dto.To); ok {
		criteria.To = &to
	}
	return criteria, nil
}

type ExpenseResponse struct {
	Expense Record   `json:"expense"`
	Alerts  []string `json:"alerts,omitempty"`
}

type RecordsResponse struct {
	Count   int      `json:"count"`
	Records []Record `json:"records"`
}

type ListResponse struct {
	Source Source  `json:"source"`
	Count  int     `json:"count"`
	Groups []Group `json:"groups"`
}

type CategoryDetail struct {
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Month    string  `json:"month"`
	Year     int     `json:"year"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Groups   []Group `json:"groups"`
}

// Source names the sequence a list or detail view reads from.
type Source string

const (
	SourceAll      Source = "all"
	SourceSearch   Source = "search"
	SourceFiltered Source = "filtered"
)

// SourceFromFlags mirrors the ?search / ?filtered page parameters; search wins.
func SourceFromFlags(search, filtered bool) Source {
	switch {
	case search:
		return SourceSearch
	case filtered:
		return SourceFiltered
	default:
		return SourceAll
	}
}
