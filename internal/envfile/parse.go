package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoDefaultEnvironment is reported when the state file has no usable pointer.
var ErrNoDefaultEnvironment = errors.New("defaultEnvironment is missing or empty")

// ParseResult is the outcome of reading the default-environment pointer.
// Exactly one of Environment and Failure is set.
type ParseResult struct {
	Environment string
	Failure     error
}

// OK reports whether the pointer was parsed successfully.
func (r ParseResult) OK() bool {
	return r.Failure == nil
}

type stateFile struct {
	Version            int    `yaml:"version"`
	DefaultEnvironment string `yaml:"defaultEnvironment"`
}

// ParseDefaultEnvironment extracts defaultEnvironment from the provisioning
// state file. The file is JSON, which parses as YAML flow syntax.
func ParseDefaultEnvironment(data []byte) ParseResult {
	var doc stateFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ParseResult{Failure: fmt.Errorf("parse state file: %w", err)}
	}

	name := strings.TrimSpace(doc.DefaultEnvironment)
	if name == "" {
		return ParseResult{Failure: ErrNoDefaultEnvironment}
	}
	return ParseResult{Environment: name}
}

// Entry is one name=value assignment from a settings file.
type Entry struct {
	Name  string
	Value string
}

// ParseSettings reads name=value lines. Blank lines, lines starting with '#'
// after optional whitespace, and lines without '=' are skipped. Names and
// values are trimmed; a value wrapped in one pair of matching quotes is
// unquoted.
func ParseSettings(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		entries = append(entries, Entry{
			Name:  name,
			Value: unquote(strings.TrimSpace(value)),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	return entries, nil
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return strings.TrimSpace(value[1 : len(value)-1])
	}
	return value
}
