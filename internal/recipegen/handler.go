package recipegen

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"recipe-finder/internal/shared/server/respond"
	"recipe-finder/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the generation route.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/generate-recipes", h.generate)
	r.OPTIONS("/generate-recipes", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

type generateRequest struct {
	Ingredients json.RawMessage `json:"ingredients" binding:"required"`
	NumRecipes  json.RawMessage `json:"num_recipes" binding:"required"`
}

type failureResponse struct {
	Recipes []any  `json:"recipes"`
	Error   string `json:"error"`
}

func (h *Handler) generate(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || isEmptyBody(body) {
		respond.Error(c, http.StatusBadRequest, "No data provided")
		return
	}
	var req generateRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
			respond.Error(c, http.StatusBadRequest, "Invalid JSON format")
			return
		}
		respond.Error(c, http.StatusBadRequest, "Missing required parameters")
		return
	}

	ingredients, err := parseIngredients(req.Ingredients)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	numRecipes, err := parseNumRecipes(req.NumRecipes)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	c.Set("numRecipes", numRecipes)
	telemetry.Info("recipegen.request", map[string]any{
		"ingredients": ingredients,
		"num_recipes": numRecipes,
	})

	out, err := h.Svc.Generate(c.Request.Context(), ingredients, numRecipes)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, strings.TrimPrefix(err.Error(), ErrInvalidInput.Error()+": "))
			return
		}
		// Generation failures are reported in-band, as the mobile client expects.
		respond.OK(c, failureResponse{Recipes: []any{}, Error: err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", out)
}

// isEmptyBody reports a missing body or one that decodes to a falsy JSON value
// such as null, {} or [].
func isEmptyBody(body []byte) bool {
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	}
	return false
}

// parseIngredients accepts a comma-separated string or a list of strings.
func parseIngredients(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s), nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, it := range list {
			if trimmed := strings.TrimSpace(it); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		return strings.Join(parts, ", "), nil
	}
	return "", errors.New("ingredients must be a string or a list of strings")
}

// parseNumRecipes accepts a JSON number or a string holding an integer.
func parseNumRecipes(raw json.RawMessage) (int, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, errors.New("num_recipes must be an integer")
		}
		return int(f), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, errors.New("num_recipes must be an integer")
		}
		return n, nil
	}
	return 0, errors.New("num_recipes must be an integer")
}
