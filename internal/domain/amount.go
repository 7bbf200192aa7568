package domain

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Amount — «сырое» числовое значение опции (цена или коэффициент) в том виде,
// в каком оно пришло из конфига или формы. Разбирается только при расчёте.
type Amount string

var (
	// числовой префикс строки: "1500abc" -> "1500"
	amountPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	// строгий JSON-number, чтобы отдавать числом, а не строкой
	jsonNumber = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?([eE][+-]?\d+)?$`)
)

// Float разбирает значение мягко: берём числовой префикс, всё остальное
// (пусто, мусор, 0, отрицательное, бесконечность) превращается в fallback.
func (a Amount) Float(fallback float64) float64 {
	v, ok := a.parse()
	if !ok || v <= 0 {
		return fallback
	}
	return v
}

// Negative — значение читается и оно меньше нуля
func (a Amount) Negative() bool {
	v, ok := a.parse()
	return ok && v < 0
}

func (a Amount) parse() (float64, bool) {
	s := strings.TrimLeft(string(a), " \t\r\n")
	m := amountPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// UnmarshalJSON принимает и число, и строку, и null.
func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*a = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*a = Amount(str)
	default:
		*a = Amount(s)
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if jsonNumber.MatchString(string(a)) {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
		*a = ""
		return nil
	}
	*a = Amount(value.Value)
	return nil
}

func (a Amount) MarshalYAML() (interface{}, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: string(a)}, nil
}
