package recipes

import (
	"fmt"
	"strings"

	"recipe-finder/internal/ingredients"
)

// DefaultNumRecipes is the number of recipes requested per fetch.
const DefaultNumRecipes = 3

// Recipe is the canonical recipe shape used everywhere past the JSON boundary.
type Recipe struct {
	Name         string    `json:"recipe_name"`
	CookingTime  string    `json:"cooking_time"`
	Difficulty   string    `json:"difficulty"`
	Nutrition    Nutrition `json:"nutrition"`
	Ingredients  []Item    `json:"ingredients_list"`
	Instructions []string  `json:"instructions"`
	Tips         []string  `json:"tips"`
}

// Nutrition holds per-serving display values.
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
}

// Item is one recipe ingredient. Amount is empty when the backend sent a bare string.
type Item struct {
	Amount string `json:"amount,omitempty"`
	Name   string `json:"name"`
}

// String renders the item the way it is shown to the user.
func (i Item) String() string {
	if i.Amount == "" {
		return i.Name
	}
	return i.Amount + " " + i.Name
}

// ResultSet is the list of recipes from the latest successful fetch.
type ResultSet []Recipe

// Request is the generation request body.
type Request struct {
	Ingredients string `json:"ingredients"`
	NumRecipes  int    `json:"num_recipes"`
}

// NewRequest builds a request from the current ingredient list.
func NewRequest(list *ingredients.List) Request {
	return Request{
		Ingredients: list.Joined(),
		NumRecipes:  DefaultNumRecipes,
	}
}

// Summary renders a one-line description of the recipe.
func (r Recipe) Summary() string {
	parts := []string{r.Name}
	if r.CookingTime != "" {
		parts = append(parts, r.CookingTime)
	}
	if r.Difficulty != "" {
		parts = append(parts, r.Difficulty)
	}
	return strings.Join(parts, " | ")
}

// Detail renders the full recipe as plain text.
func (r Recipe) Detail() string {
	var b strings.Builder
	b.WriteString(r.Summary())
	b.WriteString("\n")
	if r.Nutrition.Calories != "" || r.Nutrition.Protein != "" {
		fmt.Fprintf(&b, "Nutrition: calories %s, protein %s\n", orDash(r.Nutrition.Calories), orDash(r.Nutrition.Protein))
	}
	if len(r.Ingredients) > 0 {
		b.WriteString("Ingredients:\n")
		for _, it := range r.Ingredients {
			fmt.Fprintf(&b, "  - %s\n", it)
		}
	}
	if len(r.Instructions) > 0 {
		b.WriteString("Instructions:\n")
		for i, step := range r.Instructions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}
	if len(r.Tips) > 0 {
		b.WriteString("Tips:\n")
		for _, tip := range r.Tips {
			fmt.Fprintf(&b, "  * %s\n", tip)
		}
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
