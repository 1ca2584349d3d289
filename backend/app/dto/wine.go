package dto

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"wine-cellar/backend/app/models"
)

var ErrInvalidQuantity = errors.New("quantity must be a number")

// WineForm is a create/update submission. Fields names the columns that were
// present in the request; absent fields are left alone on update.
type WineForm struct {
	Wine   models.Wine
	Fields []string
}

func (f WineForm) Has(column string) bool {
	for _, c := range f.Fields {
		if c == column {
			return true
		}
	}
	return false
}

// ParseWineForm reads the wine[...] namespace of an urlencoded body.
func ParseWineForm(form url.Values) (WineForm, error) {
	var f WineForm
	text := []struct {
		column string
		dst    *string
	}{
		{"name", &f.Wine.Name},
		{"location", &f.Wine.Location},
		{"type", &f.Wine.Type},
		{"rating", &f.Wine.Rating},
	}
	for _, t := range text {
		if vals, ok := form["wine["+t.column+"]"]; ok {
			if len(vals) > 0 {
				*t.dst = vals[0]
			}
			f.Fields = append(f.Fields, t.column)
		}
	}

	if vals, ok := form["wine[quantity]"]; ok {
		raw := ""
		if len(vals) > 0 {
			raw = strings.TrimSpace(vals[0])
		}
		if raw != "" {
			q, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(q) || math.IsInf(q, 0) {
				return WineForm{}, ErrInvalidQuantity
			}
			f.Wine.Quantity = &q
		}
		f.Fields = append(f.Fields, "quantity")
	}
	return f, nil
}
