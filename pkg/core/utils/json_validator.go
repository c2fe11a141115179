// Package utils holds small helpers for taming LLM output: JSON repair,
// lenient parsing and markdown cleanup.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON fixes common JSON errors in LLM output: missing quotes around
// keys, single quotes, unclosed arrays, trailing commas, wrapping markdown
// code fences.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// MustRepairJSON is RepairJSON with an empty object on failure, for paths
// that need a guaranteed JSON output.
func MustRepairJSON(malformedJSON string) string {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "{}"
	}
	return repaired
}

// ParseHJSON parses Human-friendly JSON (comments, unquoted keys, optional
// commas) and returns standard JSON. Second line of defense after
// RepairJSON for models that emit commented output.
func ParseHJSON(input string) (string, error) {
	var node interface{}
	if err := hjson.Unmarshal([]byte(input), &node); err != nil {
		return "", fmt.Errorf("HJSON_PARSE_FAILED: %v", err)
	}

	out, err := json.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("HJSON_REMARSHAL_FAILED: %v", err)
	}
	return string(out), nil
}

// DecodeLenient unmarshals LLM output into target, trying strict JSON
// first, then repaired JSON, then HJSON.
func DecodeLenient(raw string, target interface{}) error {
	if err := json.Unmarshal([]byte(raw), target); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(raw); err == nil {
		if err := json.Unmarshal([]byte(repaired), target); err == nil {
			return nil
		}
	}

	relaxed, err := ParseHJSON(raw)
	if err != nil {
		return fmt.Errorf("output is not parseable as JSON: %w", err)
	}
	return json.Unmarshal([]byte(relaxed), target)
}
