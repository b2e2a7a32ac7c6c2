package session

import (
	"errors"
	"fmt"

	"recipe-finder/internal/fetch"
	"recipe-finder/internal/ingredients"
)

// Notice is a blocking message shown to the user after a failed action.
type Notice struct {
	Title   string
	Message string
}

// NoticeFor maps an error from SubmitInput or Fetch to a user notice.
// The zero Notice is returned for nil and for superseded fetches.
func NoticeFor(err error) Notice {
	switch {
	case err == nil, errors.Is(err, ErrSuperseded):
		return Notice{}
	case errors.Is(err, ingredients.ErrEmptyInput):
		return Notice{Title: "Invalid Input", Message: "Please enter an ingredient"}
	case errors.Is(err, ingredients.ErrCapacityExceeded):
		return Notice{Title: "Maximum Ingredients", Message: fmt.Sprintf("You can only add up to %d ingredients", ingredients.MaxItems)}
	case errors.Is(err, ingredients.ErrDuplicateEntry):
		return Notice{Title: "Duplicate Ingredient", Message: "This ingredient is already in your list"}
	case errors.Is(err, ingredients.ErrTooLong):
		return Notice{Title: "Invalid Input", Message: fmt.Sprintf("Ingredients can be at most %d characters", ingredients.MaxLength)}
	case errors.Is(err, fetch.ErrNoIngredients):
		return Notice{Title: "No Ingredients", Message: "Please add at least one ingredient first."}
	case errors.Is(err, ErrFetchInProgress):
		return Notice{Title: "Please Wait", Message: "Recipes are already being generated"}
	case errors.Is(err, ErrClosed):
		return Notice{Title: "Error", Message: "This session has ended"}
	default:
		return Notice{Title: "Error", Message: fetch.Message(err)}
	}
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool {
	return n.Title == "" && n.Message == ""
}
