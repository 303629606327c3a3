package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Transaction kinds.
	Receita Kind = "receita"
	Despesa Kind = "despesa"

	// Transaction statuses.
	Pendente Status = "pendente"
	Pago     Status = "pago"

	// Category types. Ambos accepts transactions of either kind.
	CategoryDespesa CategoryType = "despesa"
	CategoryReceita CategoryType = "receita"
	CategoryAmbos   CategoryType = "ambos"

	// Goal types.
	GoalEconomizar   GoalType = "economizar"
	GoalInvestir     GoalType = "investir"
	GoalAbaterDivida GoalType = "abater_divida"
	GoalOutros       GoalType = "outros"
)

type (
	Kind         string
	Status       string
	CategoryType string
	GoalType     string

	// Date is a calendar date normalized to midnight UTC.
	Date struct {
		time.Time
	}

	// Transaction is a read-only snapshot of a ledger entry owned by the backend.
	Transaction struct {
		ID          int64
		Description string
		Amount      Money
		Date        Date
		Kind        Kind
		Status      Status
		CategoryID  int64
	}

	// Category constrains which transaction kinds may reference it.
	Category struct {
		ID          int64
		Name        string
		Description string
		Type        CategoryType
	}

	// Goal is a user-maintained savings/debt target. AchievedAmount is edited
	// by the user, not derived from transactions.
	Goal struct {
		ID             int64
		Name           string
		Description    string
		Type           GoalType
		TargetAmount   Money
		AchievedAmount Money
		StartDate      Date
		DueDate        Date
		Completed      bool
	}

	// MonthBucket aggregates one calendar month of income and expense.
	MonthBucket struct {
		Year    int
		Month   int // 1-12
		Income  Money
		Expense Money
		Net     Money
	}

	// CategoryMonth is one category's expense total for one calendar month.
	CategoryMonth struct {
		Year         int
		Month        int // 1-12
		CategoryName string
		Total        Money
	}
)

var (
	ErrInvalidDay       = errors.New("invalid day")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrUnknownTag       = errors.New("unknown tag")
	ErrKindMismatch     = errors.New("transaction kind does not match category type")
)

// ParseKind rejects unknown kind tags at the boundary.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Receita, Despesa:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: kind %q", ErrUnknownTag, s)
}

// ParseStatus rejects unknown status tags at the boundary.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case Pendente, Pago:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: status %q", ErrUnknownTag, s)
}

// ParseCategoryType rejects unknown category type tags at the boundary.
func ParseCategoryType(s string) (CategoryType, error) {
	switch CategoryType(s) {
	case CategoryDespesa, CategoryReceita, CategoryAmbos:
		return CategoryType(s), nil
	}
	return "", fmt.Errorf("%w: category type %q", ErrUnknownTag, s)
}

// ParseGoalType rejects unknown goal type tags at the boundary.
func ParseGoalType(s string) (GoalType, error) {
	switch GoalType(s) {
	case GoalEconomizar, GoalInvestir, GoalAbaterDivida, GoalOutros:
		return GoalType(s), nil
	}
	return "", fmt.Errorf("%w: goal type %q", ErrUnknownTag, s)
}

// Accepts returns whether a category of type ct may hold a transaction of kind k.
func (ct CategoryType) Accepts(k Kind) bool {
	if ct == CategoryAmbos {
		return true
	}
	return string(ct) == string(k)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Truncate normalizes any timestamp to its calendar date at midnight UTC,
// so that date arithmetic is immune to DST and parsing-zone artifacts.
func Truncate(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as an int in 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// IsEmpty returns true if the date is zero (optional dates).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// ParseDate parses the backend's ISO calendar date form YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// Key renders the canonical YYYY-MM-DD form.
func (d Date) Key() string {
	return d.Format("2006-01-02")
}

// UnmarshalJSON accepts "YYYY-MM-DD"; null and "" yield the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON emits "YYYY-MM-DD", or null for the zero date.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Key() + `"`), nil
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if t.Amount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if _, err := ParseKind(string(t.Kind)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(t.Status)); err != nil {
		return err
	}
	return nil
}

// ValidateAgainst enforces the kind/category-type invariant.
func (t Transaction) ValidateAgainst(c Category) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if !c.Type.Accepts(t.Kind) {
		return fmt.Errorf("%w: %s into %s category %q", ErrKindMismatch, t.Kind, c.Type, c.Name)
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	if _, err := ParseCategoryType(string(c.Type)); err != nil {
		return err
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if _, err := ParseGoalType(string(g.Type)); err != nil {
		return err
	}
	if g.TargetAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if g.AchievedAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if err := g.DueDate.Validate(); err != nil {
		return errors.New("invalid due date: " + err.Error())
	}
	if !g.StartDate.IsEmpty() && g.DueDate.Before(g.StartDate.Time) {
		return errors.New("due date must not precede start date")
	}
	return nil
}

// Before reports whether bucket (Year, Month) sorts before other, chronologically.
func (b MonthBucket) Before(other MonthBucket) bool {
	if b.Year != other.Year {
		return b.Year < other.Year
	}
	return b.Month < other.Month
}
