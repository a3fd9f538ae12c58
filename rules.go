package plaidsheets

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Transform post-processes mapped records before serialization, typically to
// refine categorization. Implementations must preserve order and return
// records with identical column sets across the batch, the serializer derives
// the column layout from the first record.
type Transform interface {
	Apply([]Record) ([]Record, error)
}

// TransformFunc adapts a function to the Transform interface.
type TransformFunc func([]Record) ([]Record, error)

func (f TransformFunc) Apply(records []Record) ([]Record, error) {
	return f(records)
}

// NopTransform passes records through unchanged.
var NopTransform = TransformFunc(func(records []Record) ([]Record, error) {
	return records, nil
})

// Chain applies transforms in order, feeding each one's output to the next.
func Chain(transforms ...Transform) Transform {
	return TransformFunc(func(records []Record) ([]Record, error) {
		var err error
		for _, t := range transforms {
			records, err = t.Apply(records)
			if err != nil {
				return nil, err
			}
		}
		return records, nil
	})
}

// Condition is one node of a rule's condition tree. A node is either a
// composite (And/Or set) or a leaf comparing a column against a value.
type Condition struct {
	Field string      `json:"field,omitempty"`
	Op    string      `json:"op,omitempty"`
	Value any         `json:"value,omitempty"`
	And   []Condition `json:"and,omitempty"`
	Or    []Condition `json:"or,omitempty"`
}

// Match evaluates the condition against one record.
func (c Condition) Match(r Record) (bool, error) {
	if len(c.And) > 0 {
		for _, sub := range c.And {
			ok, err := sub.Match(r)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
	if len(c.Or) > 0 {
		for _, sub := range c.Or {
			ok, err := sub.Match(r)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	return c.matchLeaf(r)
}

func (c Condition) matchLeaf(r Record) (bool, error) {
	value := r.Value(Column(c.Field))
	switch c.Op {
	case "eq":
		return asString(value) == asString(c.Value), nil
	case "contains":
		return strings.Contains(
			strings.ToLower(asString(value)),
			strings.ToLower(asString(c.Value)),
		), nil
	case "prefix":
		return strings.HasPrefix(asString(value), asString(c.Value)), nil
	case "gt":
		a, b, ok := asNumbers(value, c.Value)
		return ok && a > b, nil
	case "lt":
		a, b, ok := asNumbers(value, c.Value)
		return ok && a < b, nil
	default:
		return false, fmt.Errorf("rule condition: unknown op %q", c.Op)
	}
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(v)
	}
}

func asNumbers(a, b any) (float64, float64, bool) {
	x, ok1 := asFloat(a)
	y, ok2 := asFloat(b)
	return x, y, ok1 && ok2
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// Rule assigns categorization labels to rows matching its condition tree.
type Rule struct {
	Name       string    `json:"name"`
	Conditions Condition `json:"conditions"`

	// Category is written to the Category column on match. Rollup, when set,
	// overrides the default rollup label.
	Category string `json:"category"`
	Rollup   string `json:"rollup,omitempty"`
}

// Rules applies user-defined categorization rules to mapped records. The
// first matching rule wins. Column sets are never extended, only the Category
// and Rollup values change, which upholds the Transform contract.
type Rules []Rule

// Apply implements Transform.
func (rules Rules) Apply(records []Record) ([]Record, error) {
	for i := range records {
		for _, rule := range rules {
			ok, err := rule.Conditions.Match(records[i])
			if err != nil {
				return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
			}
			if !ok {
				continue
			}
			if rule.Category != "" {
				records[i].Set(ColumnCategory, rule.Category)
			}
			if rule.Rollup != "" {
				records[i].Set(ColumnRollup, rule.Rollup)
			}
			break
		}
	}
	return records, nil
}

// LoadRules reads a JSON rules file.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rules Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	return rules, nil
}
