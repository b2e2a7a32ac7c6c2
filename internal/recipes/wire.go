package recipes

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// errNotObject marks a recipe element that is not a JSON object.
var errNotObject = errors.New("recipe is not an object")

// recipeWire accepts both response shapes the backend has produced. Every field is
// raw so one badly typed value only blanks that field.
type recipeWire struct {
	RecipeName      json.RawMessage `json:"recipe_name"`
	Name            json.RawMessage `json:"name"`
	CookingTime     json.RawMessage `json:"cooking_time"`
	Difficulty      json.RawMessage `json:"difficulty"`
	Nutrition       json.RawMessage `json:"nutrition"`
	Calories        json.RawMessage `json:"calories"`
	Protein         json.RawMessage `json:"protein"`
	IngredientsList json.RawMessage `json:"ingredients_list"`
	Ingredients     json.RawMessage `json:"ingredients"`
	Instructions    json.RawMessage `json:"instructions"`
	Tips            json.RawMessage `json:"tips"`
}

type nutritionWire struct {
	Calories json.RawMessage `json:"calories"`
	Protein  json.RawMessage `json:"protein"`
}

// UnmarshalJSON normalizes either wire variant into the canonical shape.
// Only a non-object document is an error.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	if !isObject(data) {
		return errNotObject
	}
	var w recipeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	out := Recipe{
		Name:        firstNonEmpty(scalarString(w.RecipeName, ""), scalarString(w.Name, "")),
		CookingTime: scalarString(w.CookingTime, "m"),
		Difficulty:  scalarString(w.Difficulty, ""),
	}

	calories, protein := w.Calories, w.Protein
	if isObject(w.Nutrition) {
		var n nutritionWire
		if err := json.Unmarshal(w.Nutrition, &n); err == nil {
			calories, protein = n.Calories, n.Protein
		}
	}
	out.Nutrition = Nutrition{
		Calories: scalarString(calories, ""),
		Protein:  scalarString(protein, "g"),
	}

	raw := w.IngredientsList
	if isAbsent(raw) {
		raw = w.Ingredients
	}
	out.Ingredients = parseItems(raw)
	out.Instructions = parseStrings(w.Instructions)
	out.Tips = parseStrings(w.Tips)

	*r = out
	return nil
}

// UnmarshalJSON decodes a recipe list, skipping null and non-object elements.
func (rs *ResultSet) UnmarshalJSON(data []byte) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return err
	}
	out := make(ResultSet, 0, len(elems))
	for _, el := range elems {
		if isAbsent(el) {
			continue
		}
		var r Recipe
		if err := json.Unmarshal(el, &r); err != nil {
			if errors.Is(err, errNotObject) {
				continue
			}
			return err
		}
		out = append(out, r)
	}
	*rs = out
	return nil
}

// scalarString renders a JSON string or number. Numbers get unit appended.
// Anything else yields "".
func scalarString(raw json.RawMessage, unit string) string {
	if isAbsent(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		return formatNumber(n) + unit
	}
	return ""
}

func formatNumber(n json.Number) string {
	if f, err := n.Float64(); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return n.String()
}

// textKeys are tried in order when a list element is an object instead of a string.
var textKeys = []string{"text", "instruction", "description", "tip", "step", "name"}

// parseStrings accepts a single string or a list whose elements are strings,
// numbers or objects carrying one of textKeys. Blanks and other shapes are dropped.
func parseStrings(raw json.RawMessage) []string {
	out := []string{}
	if isAbsent(raw) {
		return out
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if s := strings.TrimSpace(single); s != "" {
			out = append(out, s)
		}
		return out
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return out
	}
	for _, el := range list {
		s := scalarString(el, "")
		if s == "" && isObject(el) {
			s = objectText(el)
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// objectText returns the first string value under textKeys.
func objectText(raw json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	for _, key := range textKeys {
		var s string
		if err := json.Unmarshal(fields[key], &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// parseItems accepts a single string or a list whose elements are strings or
// {amount, name} objects. Other shapes are dropped.
func parseItems(raw json.RawMessage) []Item {
	out := []Item{}
	if isAbsent(raw) {
		return out
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if s := strings.TrimSpace(single); s != "" {
			out = append(out, Item{Name: s})
		}
		return out
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return out
	}
	for _, el := range list {
		if !isObject(el) {
			if s := scalarString(el, ""); s != "" {
				out = append(out, Item{Name: s})
			}
			continue
		}
		var obj struct {
			Amount json.RawMessage `json:"amount"`
			Name   json.RawMessage `json:"name"`
		}
		if err := json.Unmarshal(el, &obj); err != nil {
			continue
		}
		item := Item{Amount: scalarString(obj.Amount, ""), Name: scalarString(obj.Name, "")}
		if item.Name == "" && item.Amount == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
