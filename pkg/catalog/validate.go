package catalog

import (
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/agentstation/bookshelf/pkg/constants"
	"github.com/agentstation/bookshelf/pkg/errors"
)

// Messages returned for rejected input to Add.
const (
	MsgTitleRequired = "enter a title"
	MsgYearInvalid   = "year is invalid"
	MsgAuthorInvalid = "author name must not be empty or purely numeric"
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

var errNumericAuthor = validation.NewError("validation_author_numeric", "must not be purely numeric")

// CheckYear reports whether year is all decimal digits with a value in
// [MinYear, MaxYear].
func CheckYear(year string) bool {
	return validateYear(year) == nil
}

// CheckAuthor reports whether author is non-empty and not purely numeric.
func CheckAuthor(author string) bool {
	return validateAuthor(author) == nil
}

func validateTitle(title string) error {
	return validation.Validate(title, validation.Required)
}

func validateYear(year string) error {
	if err := validation.Validate(year,
		validation.Required,
		validation.Match(digitsOnly),
	); err != nil {
		return err
	}

	n, err := strconv.Atoi(year)
	if err != nil {
		return err
	}

	// Required rejects 0, which Min would otherwise skip as empty.
	return validation.Validate(n,
		validation.Required,
		validation.Min(constants.MinYear),
		validation.Max(constants.MaxYear),
	)
}

func validateAuthor(author string) error {
	return validation.Validate(author,
		validation.Required,
		validation.By(func(value any) error {
			if s, _ := value.(string); digitsOnly.MatchString(s) {
				return errNumericAuthor
			}
			return nil
		}),
	)
}

// validateNew checks the fields of a new book in a fixed order and stops
// at the first failure.
func validateNew(title, author, year string) error {
	checks := []struct {
		field   string
		value   string
		message string
		rule    func(string) error
	}{
		{"title", title, MsgTitleRequired, validateTitle},
		{"year", year, MsgYearInvalid, validateYear},
		{"author", author, MsgAuthorInvalid, validateAuthor},
	}

	for _, c := range checks {
		if err := c.rule(c.value); err != nil {
			return errors.NewValidationError(c.field, c.value, c.message)
		}
	}
	return nil
}
