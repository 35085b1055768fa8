package application

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/go-employee-directory/internal/domain/entity"
)

// Recognised employee input fields. Anything else submitted is dropped.
const (
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldEmail         = "email"
	FieldPosition      = "position"
	FieldSalary        = "salary"
	FieldDateOfJoining = "date_of_joining"
	FieldDepartment    = "department"
)

var AllowedFields = []string{
	FieldFirstName, FieldLastName, FieldEmail, FieldPosition,
	FieldSalary, FieldDateOfJoining, FieldDepartment,
}

// salary is stored as NUMERIC(14,2): two decimals, below 10^12.
const maxSalary = 1e12

// plain decimals with an optional exponent; no hex, underscores or signs other than +
var decimalPattern = regexp.MustCompile(`^\+?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var dateLayouts = []string{"2006-01-02", time.RFC3339Nano, "2006-01-02T15:04:05"}

// Payload is the allow-listed projection of an employee input map.
// A nil field was not supplied and leaves the target untouched on Apply.
type Payload struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Position      *string
	Department    *string
	Salary        *float64
	DateOfJoining *time.Time
}

// BuildPayload copies only the allow-listed keys of fields. Empty salary and
// date values count as not supplied; non-empty ones are coerced and must be a
// positive number and a calendar date respectively.
func BuildPayload(fields map[string]string) (Payload, error) {
	var p Payload
	for _, key := range AllowedFields {
		v, ok := fields[key]
		if !ok {
			continue
		}
		switch key {
		case FieldFirstName:
			p.FirstName = &v
		case FieldLastName:
			p.LastName = &v
		case FieldEmail:
			p.Email = &v
		case FieldPosition:
			p.Position = &v
		case FieldDepartment:
			p.Department = &v
		case FieldSalary:
			if v == "" {
				continue
			}
			salary, err := parseSalary(v)
			if err != nil {
				return Payload{}, err
			}
			p.Salary = &salary
		case FieldDateOfJoining:
			if v == "" {
				continue
			}
			d, err := parseDate(v)
			if err != nil {
				return Payload{}, err
			}
			p.DateOfJoining = &d
		}
	}
	return p, nil
}

// Apply merges the supplied fields into e.
func (p Payload) Apply(e *entity.Employee) {
	if p.FirstName != nil {
		e.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		e.LastName = *p.LastName
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Salary != nil {
		s := *p.Salary
		e.Salary = &s
	}
	if p.DateOfJoining != nil {
		d := *p.DateOfJoining
		e.DateOfJoining = &d
	}
}

// parseSalary rounds to cents; anything that rounds to zero or does not fit
// the column is rejected here rather than by the database.
func parseSalary(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if !decimalPattern.MatchString(v) {
		return 0, fieldError(FieldSalary, "must be a number greater than 0")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, fieldError(FieldSalary, "is too large")
	}
	f = math.Round(f*100) / 100
	switch {
	case f <= 0:
		return 0, fieldError(FieldSalary, "must be a number greater than 0")
	case f >= maxSalary:
		return 0, fieldError(FieldSalary, "is too large")
	}
	return f, nil
}

// parseDate accepts an ISO-8601 date or timestamp and keeps the calendar day in UTC.
func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fieldError(FieldDateOfJoining, "must be a valid date")
}
