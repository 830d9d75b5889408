package snapshot

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode writes project as indented JSON. Durations are in nanoseconds.
func Encode(w io.Writer, project *Project) error {
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Decode reads a project written by Encode.
func Decode(r io.Reader) (*Project, error) {
	var project Project
	if err := json.NewDecoder(r).Decode(&project); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &project, nil
}
