package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/schemas"
	"github.com/jonathan/candidate-ranker/internal/types"
)

// readJSON decodes the file at path into v. A path of "-" reads stdin.
func readJSON(path string, v any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v as indented JSON to path, or to out when path is empty,
// and then checks the written document against schema. Schema mismatches are
// reported on stderr but do not fail the command.
func writeJSON(out io.Writer, path string, v any, schema string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		if _, err := out.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", path, err)
		}
	}

	if schema == "" {
		return nil
	}
	if schemaPath := schemas.ResolveSchemaPath(schema); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
		}
	}
	return nil
}

// parseWeights reads "experience,skills,education,location" weights.
func parseWeights(raw string) (types.Weights, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return types.Weights{}, fmt.Errorf("--weights needs four comma-separated values (experience,skills,education,location), got %q", raw)
	}

	values := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return types.Weights{}, fmt.Errorf("invalid weight %q: %w", p, err)
		}
		values[i] = v
	}

	return types.Weights{
		ExperienceWeight: values[0],
		SkillsWeight:     values[1],
		EducationWeight:  values[2],
		LocationWeight:   values[3],
	}, nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
