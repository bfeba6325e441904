package mcptools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/halcyonlabs/mcp-firestore/pkg/document"
)

// Argument validation helpers. Each returns a non-nil *mcp.CallToolResult
// on failure: a structured payload naming the offending field path,
// produced before any database access.

func stringArg(args map[string]any, key string) (string, *mcp.CallToolResult) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", fieldError(key, fmt.Sprintf("%s is required", key))
	}
	s, ok := v.(string)
	if !ok {
		return "", fieldError(key, fmt.Sprintf("%s must be a string", key))
	}
	if s == "" {
		return "", fieldError(key, fmt.Sprintf("%s must not be empty", key))
	}
	return s, nil
}

func optionalStringArg(args map[string]any, key, fallback string) (string, *mcp.CallToolResult) {
	v, ok := args[key]
	if !ok || v == nil {
		return fallback, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fieldError(key, fmt.Sprintf("%s must be a string", key))
	}
	if s == "" {
		return fallback, nil
	}
	return s, nil
}

func mapArg(args map[string]any, key string) (map[string]any, *mcp.CallToolResult) {
	v, ok := args[key]
	if !ok || v == nil {
		return nil, fieldError(key, fmt.Sprintf("%s is required", key))
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fieldError(key, fmt.Sprintf("%s must be an object", key))
	}
	return m, nil
}

func boolArg(args map[string]any, key string, fallback bool) (bool, *mcp.CallToolResult) {
	v, ok := args[key]
	if !ok || v == nil {
		return fallback, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fieldError(key, fmt.Sprintf("%s must be a boolean", key))
	}
	return b, nil
}

// limitArg accepts an optional positive integer limit; zero means no limit.
func limitArg(args map[string]any, key string) (int, *mcp.CallToolResult) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, nil
	}
	n, ok := v.(float64)
	if !ok {
		return 0, fieldError(key, fmt.Sprintf("%s must be a number", key))
	}
	if n != float64(int(n)) || n <= 0 {
		return 0, fieldError(key, fmt.Sprintf("%s must be a positive integer", key))
	}
	return int(n), nil
}

// parseFilters validates the filters argument: a sequence of {field,
// operator, value} clauses with the operator drawn from the Firestore set.
func parseFilters(args map[string]any) ([]document.Filter, *mcp.CallToolResult) {
	v, ok := args["filters"]
	if !ok || v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fieldError("filters", "filters must be an array")
	}

	filters := make([]document.Filter, 0, len(raw))
	for i, e := range raw {
		clause, ok := e.(map[string]any)
		if !ok {
			return nil, fieldError(fmt.Sprintf("filters[%d]", i), "filter must be an object")
		}
		field, ok := clause["field"].(string)
		if !ok || field == "" {
			return nil, fieldError(fmt.Sprintf("filters[%d].field", i), "field must be a non-empty string")
		}
		op, ok := clause["operator"].(string)
		if !ok {
			return nil, fieldError(fmt.Sprintf("filters[%d].operator", i), "operator must be a string")
		}
		if !document.ValidOperator(op) {
			return nil, fieldError(fmt.Sprintf("filters[%d].operator", i),
				fmt.Sprintf("unsupported operator %q", op))
		}
		value, ok := clause["value"]
		if !ok {
			return nil, fieldError(fmt.Sprintf("filters[%d].value", i), "value is required")
		}
		filters = append(filters, document.Filter{
			Field:    field,
			Operator: op,
			Value:    document.Normalize(value),
		})
	}
	return filters, nil
}

// parseOrders validates the orderBy argument, defaulting direction to
// ascending.
func parseOrders(args map[string]any) ([]document.Order, *mcp.CallToolResult) {
	v, ok := args["orderBy"]
	if !ok || v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fieldError("orderBy", "orderBy must be an array")
	}

	orders := make([]document.Order, 0, len(raw))
	for i, e := range raw {
		clause, ok := e.(map[string]any)
		if !ok {
			return nil, fieldError(fmt.Sprintf("orderBy[%d]", i), "order directive must be an object")
		}
		field, ok := clause["field"].(string)
		if !ok || field == "" {
			return nil, fieldError(fmt.Sprintf("orderBy[%d].field", i), "field must be a non-empty string")
		}
		direction := "asc"
		if d, ok := clause["direction"]; ok && d != nil {
			s, ok := d.(string)
			if !ok || !document.ValidDirection(s) {
				return nil, fieldError(fmt.Sprintf("orderBy[%d].direction", i),
					`direction must be "asc" or "desc"`)
			}
			direction = s
		}
		orders = append(orders, document.Order{Field: field, Direction: direction})
	}
	return orders, nil
}
