package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func plural(count int, one, many string) string {
	if count == 1 {
		return one
	}
	return many
}

// readDescription resolves a description flag value; "-" reads stdin.
func readDescription(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}

	value := strings.TrimSuffix(string(input), "\n")
	value = strings.TrimSuffix(value, "\r")
	return value, nil
}
