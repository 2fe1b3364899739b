package config

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/xeipuuv/gojsonschema"
)

const FileName = "siri.config.json"

//go:embed schema.json
var schema string

type Author struct {
	Factor float64 `json:"factor"`
}

type Config struct {
	Authors       map[string]*Author `json:"authors"`
	CodeFiles     []string           `json:"code-files"`
	ResourceFiles []string           `json:"resource-files"`
	CommentMarker string             `json:"comment-marker,omitempty"`
}

// Error is returned when the configuration file is missing or malformed.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return "invalid configuration " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load reads FileName from dir.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	result, err := Parse(data)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}

	return result, nil
}

func Parse(data []byte) (*Config, error) {
	validation, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing json")
	}

	if !validation.Valid() {
		msgs := lo.Map(validation.Errors(), func(e gojsonschema.ResultError, _ int) string { return e.String() })
		sort.Strings(msgs)
		return nil, errors.New(strings.Join(msgs, "; "))
	}

	var result Config
	err = json.Unmarshal(data, &result)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing json")
	}

	if result.Authors == nil {
		result.Authors = map[string]*Author{}
	}

	return &result, nil
}

// Weights returns the factor of each configured author.
func (c *Config) Weights() map[string]float64 {
	return lo.MapValues(c.Authors, func(a *Author, _ string) float64 { return a.Factor })
}

// Extensions returns the file extensions allowed by the selected categories.
// An empty result means every file is allowed.
func (c *Config) Extensions(code bool, resource bool) []string {
	var result []string
	if code {
		result = append(result, c.CodeFiles...)
	}
	if resource {
		result = append(result, c.ResourceFiles...)
	}
	return result
}
