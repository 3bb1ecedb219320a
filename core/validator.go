package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Upper bounds on subject input. Weekly hours cannot exceed the hours in a
// week, so WeeklyHours*TotalWeeks cannot overflow for a realistic term.
const (
	MaxWeeklyHours  = 168
	MaxCurrentSkips = math.MaxInt32
)

var validate = validator.New()

type subjectInput struct {
	Name         string `validate:"required"`
	WeeklyHours  int    `validate:"gt=0,lte=168"`
	CurrentSkips int    `validate:"gte=0,lte=2147483647"`
}

func validateSubjectInput(name string, weeklyHours int) (subjectInput, error) {
	return validateSubject(name, weeklyHours, 0)
}

func validateSubject(name string, weeklyHours, currentSkips int) (subjectInput, error) {
	in := subjectInput{
		Name:         name,
		WeeklyHours:  weeklyHours,
		CurrentSkips: currentSkips,
	}
	if err := validate.Struct(&in); err != nil {
		return in, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}
	return in, nil
}

func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Name":
			parts = append(parts, "name must not be empty")
		case "WeeklyHours":
			parts = append(parts, fmt.Sprintf("weekly hours must be between 1 and %d, got %v", MaxWeeklyHours, fe.Value()))
		case "CurrentSkips":
			parts = append(parts, fmt.Sprintf("current skips must be between 0 and %d, got %v", MaxCurrentSkips, fe.Value()))
		default:
			parts = append(parts, fe.Error())
		}
	}
	return strings.Join(parts, "; ")
}
