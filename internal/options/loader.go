package options

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MyCarrier-DevOps/go-versionheight/internal/semver"
)

// LoadJSONBytes parses a version.json document. Unknown fields are
// ignored (spec.md §6); `$schema` is accepted and ignored by Equal and
// Hash.
func LoadJSONBytes(data []byte) (*VersionOptions, error) {
	var o VersionOptions
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parsing version.json: %w", err)
	}
	return &o, nil
}

// LoadTextBytes parses a version.txt document: line 1 is
// "major.minor[.build[.revision]]", line 2 is the prerelease tag (a
// leading '-' is optional and inserted if missing).
func LoadTextBytes(data []byte) (*VersionOptions, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	var line1, line2 string
	if scanner.Scan() {
		line1 = strings.TrimSpace(scanner.Text())
	}
	if scanner.Scan() {
		line2 = strings.TrimSpace(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading version.txt: %w", err)
	}
	if line1 == "" {
		return nil, &semver.ParseError{Input: string(data), Cause: "version.txt has no version line"}
	}

	versionStr := line1
	if line2 != "" {
		if !strings.HasPrefix(line2, "-") {
			line2 = "-" + line2
		}
		versionStr += line2
	}

	v, err := semver.Parse(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parsing version.txt: %w", err)
	}

	return &VersionOptions{Version: &v}, nil
}

// JSONFileName and TextFileName are the two sentinel config file names;
// how their case is matched is up to each resolver.FileSource.
const (
	JSONFileName = "version.json"
	TextFileName = "version.txt"
)
