package llm

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed prompts/recipes.txt
var recipesPrompt string

// RecipePrompt fills the recipe-generation template.
func RecipePrompt(ingredients string, numRecipes int) string {
	r := strings.NewReplacer(
		"{ingredients}", ingredients,
		"{num_recipes}", strconv.Itoa(numRecipes),
	)
	return r.Replace(recipesPrompt)
}
