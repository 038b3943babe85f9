// Package validation checks back-office form input field by field and reports
// one human-readable message per failing field.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/example/aseertime/pkg/money"
	"github.com/example/aseertime/pkg/schedule"
	"github.com/go-playground/validator/v10"
)

type Field string

const (
	FieldName           Field = "name"
	FieldAddress        Field = "address"
	FieldPhone          Field = "phone"
	FieldEmail          Field = "email"
	FieldBranchID       Field = "branchId"
	FieldDeliveryFee    Field = "deliveryFee"
	FieldMinimumOrder   Field = "minimumOrder"
	FieldDeliveryTime   Field = "deliveryTime"
	FieldDescription    Field = "description"
	FieldImage          Field = "image"
	FieldPrice          Field = "price"
	FieldOriginalPrice  Field = "originalPrice"
	FieldCategoryID     Field = "categoryId"
	FieldSiteName       Field = "siteName"
	FieldLogo           Field = "logo"
	FieldBannerImage    Field = "bannerImage"
	FieldWhatsAppNumber Field = "whatsappNumber"
	FieldTaxRate        Field = "taxRate"
	FieldSubmit         Field = "submit"
)

// HoursField is the error key for one weekday's window, e.g. "monday_hours".
func HoursField(d time.Weekday) Field {
	return Field(schedule.DayKey(d) + "_hours")
}

// Input is raw form input. Values hold what the user typed, untrimmed.
type Input struct {
	Values map[Field]string
	Hours  schedule.Weekly
}

func (in Input) value(f Field) string {
	return strings.TrimSpace(in.Values[f])
}

// Errors maps a field to its message.
type Errors map[Field]string

// Clear drops a field's error, as on the first keystroke after a failed submit.
func (e Errors) Clear(f Field) {
	delete(e, f)
}

func (e Errors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Submit records the single submission-level error.
func (e Errors) Submit(msg string) {
	e[FieldSubmit] = msg
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for f, m := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", f, m))
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

type Result struct {
	Errors Errors `json:"errors"`
	Valid  bool   `json:"valid"`
}

// Rule checks one field. Check returns a message when the input fails.
type Rule struct {
	Field Field
	Check func(in Input) (string, bool)
}

// Validate runs rules in order; the first failure per field wins.
func Validate(in Input, rules ...Rule) Result {
	errs := Errors{}
	for _, r := range rules {
		if errs.Has(r.Field) {
			continue
		}
		if msg, failed := r.Check(in); failed {
			errs[r.Field] = msg
		}
	}
	return Result{Errors: errs, Valid: len(errs) == 0}
}

var validate = validator.New()

// Required fails on empty or whitespace-only input.
func Required(f Field, msg string) Rule {
	return Rule{Field: f, Check: func(in Input) (string, bool) {
		if validate.Var(in.value(f), "required") != nil {
			return msg, true
		}
		return "", false
	}}
}

// Bound is one side of a numeric range.
type Bound func(v float64) bool

func Min(n float64) Bound   { return func(v float64) bool { return v >= n } }
func Above(n float64) Bound { return func(v float64) bool { return v > n } }
func Max(n float64) Bound   { return func(v float64) bool { return v <= n } }

// NumericRange fails when a non-empty value is not a number or breaks a bound.
// Empty values pass; pair with Required when the field is mandatory.
func NumericRange(f Field, msg string, bounds ...Bound) Rule {
	return Rule{Field: f, Check: func(in Input) (string, bool) {
		raw := in.value(f)
		if raw == "" {
			return "", false
		}
		if validate.Var(raw, "numeric") != nil {
			return msg, true
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return msg, true
		}
		return msg, !within(v, bounds)
	}}
}

// Amount is NumericRange for money: the value must also parse to whole fils,
// and bounds see the parsed amount.
func Amount(f Field, msg string, bounds ...Bound) Rule {
	return Rule{Field: f, Check: func(in Input) (string, bool) {
		raw := in.value(f)
		if raw == "" {
			return "", false
		}
		if validate.Var(raw, "numeric") != nil {
			return msg, true
		}
		a, err := money.Parse(raw)
		if err != nil {
			return msg, true
		}
		return msg, !within(a.Float(), bounds)
	}}
}

// Integer fails when a non-empty value is not a whole number or breaks a bound.
func Integer(f Field, msg string, bounds ...Bound) Rule {
	return Rule{Field: f, Check: func(in Input) (string, bool) {
		raw := in.value(f)
		if raw == "" {
			return "", false
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return msg, true
		}
		return msg, !within(float64(n), bounds)
	}}
}

func within(v float64, bounds []Bound) bool {
	for _, ok := range bounds {
		if !ok(v) {
			return false
		}
	}
	return true
}

// Regex fails when a non-empty value, after normalize, does not match re.
func Regex(f Field, re *regexp.Regexp, normalize func(string) string, msg string) Rule {
	return Rule{Field: f, Check: func(in Input) (string, bool) {
		raw := in.value(f)
		if raw == "" {
			return "", false
		}
		if normalize != nil {
			raw = normalize(raw)
		}
		if !re.MatchString(raw) {
			return msg, true
		}
		return "", false
	}}
}

// URLOrNonEmpty requires a value and, when it carries a scheme, a valid URL.
// Relative paths such as "/logo.png" pass.
func URLOrNonEmpty(f Field, requiredMsg, invalidMsg string) Rule {
	return Rule{Field: f, Check: func(in Input) (string, bool) {
		raw := in.value(f)
		if raw == "" {
			return requiredMsg, true
		}
		if strings.Contains(raw, "://") && validate.Var(raw, "url") != nil {
			return invalidMsg, true
		}
		return "", false
	}}
}

// TimeOrdering yields one rule per weekday: an open day whose start is not
// before its end fails with "<Weekday>: <msg>". Clocks compare as "HH:MM"
// strings. With overnight set only an empty window (start == end) fails.
func TimeOrdering(msg string, overnight bool) []Rule {
	rules := make([]Rule, 0, 7)
	for _, d := range schedule.Days() {
		day := d
		rules = append(rules, Rule{Field: HoursField(day), Check: func(in Input) (string, bool) {
			w, ok := in.Hours[day]
			if !ok || !w.IsOpen {
				return "", false
			}
			if w.Open == w.Close || (!overnight && w.Open > w.Close) {
				return fmt.Sprintf("%s: %s", day, msg), true
			}
			return "", false
		}})
	}
	return rules
}

// StripSpaces removes all whitespace.
func StripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
