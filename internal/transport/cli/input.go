package cli

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func (h *Handler) readLine(prompt string) (string, error) {
	fmt.Fprint(h.out, prompt)
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", err
		}
		h.println()
		return "", errQuit
	}
	return strings.TrimRight(h.in.Text(), "\r"), nil
}

// ask re-prompts until parse accepts the input.
func ask[T any](h *Handler, prompt string, parse func(string) (T, error)) (T, error) {
	for {
		line, err := h.readLine(prompt)
		if err != nil {
			var zero T
			return zero, err
		}

		v, err := parse(line)
		if err != nil {
			h.failure("%s", unwrapAll(err))
			continue
		}
		return v, nil
	}
}

func parseText(field string) func(string) (string, error) {
	return func(s string) (string, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", fmt.Errorf("%s cannot be empty", field)
		}
		return s, nil
	}
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a price", s)
	}
	if !d.IsPositive() {
		return decimal.Zero, errors.New("price must be greater than 0")
	}
	return d, nil
}

func parsePositiveInt(field string) func(string) (int, error) {
	return func(s string) (int, error) {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("%q is not a whole number", s)
		}
		if n <= 0 {
			return 0, fmt.Errorf("%s must be greater than 0", field)
		}
		return n, nil
	}
}

func parsePositiveFloat(field string) func(string) (float64, error) {
	return func(s string) (float64, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, fmt.Errorf("%q is not a number", s)
		}
		if f <= 0 {
			return 0, fmt.Errorf("%s must be greater than 0", field)
		}
		return f, nil
	}
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, errors.New("please answer y or n")
	}
}
