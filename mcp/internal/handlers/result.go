package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult marshals v as the tool's text content.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// idArg reads an integer id argument. JSON numbers arrive as float64; hosts
// that quote numbers send strings.
func idArg(req mcp.CallToolRequest, name string, required bool) (int64, error) {
	raw, ok := req.GetArguments()[name]
	if !ok || raw == nil {
		if required {
			return 0, fmt.Errorf("%s is required", name)
		}
		return 0, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || v < 0 {
			return 0, fmt.Errorf("%s must be a non-negative integer", name)
		}
		return int64(v), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case json.Number:
		return v.Int64()
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer: %q", name, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s has unsupported type %T", name, raw)
	}
}

func stringArg(req mcp.CallToolRequest, name string) string {
	if v, ok := req.GetArguments()[name].(string); ok {
		return v
	}
	return ""
}

// floatArg reads an optional number argument. Absent means zero.
func floatArg(req mcp.CallToolRequest, name string) (float64, error) {
	raw, ok := req.GetArguments()[name]
	if !ok || raw == nil {
		return 0, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number: %q", name, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s has unsupported type %T", name, raw)
	}
}
