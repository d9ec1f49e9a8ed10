package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lazypower/tended/internal/model"
)

func newValidator() *validator.Validate {
	v := validator.New()
	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}
	must("tier", func(fl validator.FieldLevel) bool {
		return model.Tier(fl.Field().Int()).Valid()
	})
	must("role", func(fl validator.FieldLevel) bool {
		return model.Role(fl.Field().String()).Valid()
	})
	must("interaction_type", func(fl validator.FieldLevel) bool {
		return model.InteractionType(fl.Field().String()).Valid()
	})
	must("initiator", func(fl validator.FieldLevel) bool {
		return model.Initiator(fl.Field().String()).Valid()
	})
	must("pot_style", func(fl validator.FieldLevel) bool {
		return model.PotStyle(fl.Field().String()).Valid()
	})
	must("pot_color", func(fl validator.FieldLevel) bool {
		return model.PotColor(fl.Field().String()).Valid()
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(NewFriend)
		checkDates(sl, in.Birthday, in.ImportantDates)
	}, NewFriend{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		in := sl.Current().Interface().(FriendUpdate)
		var dates []model.SignificantDate
		if in.ImportantDates != nil {
			dates = *in.ImportantDates
		}
		checkDates(sl, in.Birthday, dates)
	}, FriendUpdate{})
	return v
}

// checkDates reports month/day values that do not name a calendar day.
// MonthDay is a struct, so it is checked at struct level rather than by tag.
func checkDates(sl validator.StructLevel, birthday *model.MonthDay, dates []model.SignificantDate) {
	if birthday != nil && !birthday.Valid() {
		sl.ReportError(*birthday, "Birthday", "Birthday", "monthday", "")
	}
	for _, d := range dates {
		if !d.Date.Valid() {
			sl.ReportError(d.Date, "ImportantDates", "ImportantDates", "monthday", "")
			return
		}
	}
}

// check validates in and folds field errors into one ErrInvalidInput.
func (s *Store) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "tier":
		return fmt.Sprintf("%s %v out of range 1-5", field, fe.Value())
	case "role", "interaction_type", "initiator", "pot_style", "pot_color":
		return fmt.Sprintf("%s %q is not a known %s", field, fe.Value(), strings.ReplaceAll(fe.Tag(), "_", " "))
	case "monthday":
		return fmt.Sprintf("%s %v is not a calendar day", field, fe.Value())
	default:
		return field + " is invalid"
	}
}
