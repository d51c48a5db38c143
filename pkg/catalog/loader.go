package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/survey/pkg/domain"
	"github.com/mitchellh/mapstructure"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a catalog document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

type document struct {
	Entry     int           `mapstructure:"entry"`
	Title     string        `mapstructure:"title"`
	Questions []questionDoc `mapstructure:"questions"`
}

type questionDoc struct {
	ID      int             `mapstructure:"id"`
	Prompt  string          `mapstructure:"prompt"`
	Kind    string          `mapstructure:"kind"`
	Options []domain.Option `mapstructure:"options"`
	Next    any             `mapstructure:"next"`
}

// LoadFile reads a catalog from a YAML or JSON file. The format is chosen by
// extension; anything that is not .json is read as YAML.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes, schema-checks and builds a catalog document.
func Parse(data []byte, format Format) (*Catalog, error) {
	jsonData := data
	if format == FormatYAML {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
		}
		normalized, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("catalog yaml is not JSON compatible: %w", err)
		}
		jsonData = normalized
	}

	// jsonschema wants json.Number for numbers, so decode through it.
	raw, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog json: %w", err)
	}
	schema, err := documentSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("catalog does not match schema: %w", err)
	}

	var doc document
	if err := decode(raw, &doc); err != nil {
		return nil, err
	}
	return build(doc)
}

func decode(raw any, out *document) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode catalog: %w", err)
	}
	return nil
}

func build(doc document) (*Catalog, error) {
	questions := make([]domain.Question, 0, len(doc.Questions))
	for _, qd := range doc.Questions {
		kind, err := domain.ParseKind(qd.Kind)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", qd.ID, err)
		}
		route, err := RouteFromValue(qd.Next)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", qd.ID, err)
		}
		questions = append(questions, domain.Question{
			ID:      qd.ID,
			Prompt:  qd.Prompt,
			Kind:    kind,
			Options: qd.Options,
			Route:   route,
		})
	}

	entry := doc.Entry
	if entry == 0 && len(questions) > 0 {
		entry = questions[0].ID
	}
	return New(entry, questions...)
}

// RouteFromValue converts a decoded "next" field into a Route:
// absent/null is terminal, a number is fixed, an object maps option values to ids.
func RouteFromValue(v any) (domain.Route, error) {
	switch next := v.(type) {
	case nil:
		return domain.TerminalRoute(), nil
	case map[string]any:
		targets := make(map[string]int, len(next))
		for key, raw := range next {
			id, err := ToInt(raw)
			if err != nil {
				return domain.Route{}, fmt.Errorf("next[%q]: %w", key, err)
			}
			targets[key] = id
		}
		return domain.AnswerRoute(targets), nil
	case map[string]int:
		return domain.AnswerRoute(next), nil
	case map[any]any: // frontmatter decoders may produce untyped keys
		targets := make(map[string]int, len(next))
		for key, raw := range next {
			id, err := ToInt(raw)
			if err != nil {
				return domain.Route{}, fmt.Errorf("next[%v]: %w", key, err)
			}
			targets[fmt.Sprint(key)] = id
		}
		return domain.AnswerRoute(targets), nil
	default:
		id, err := ToInt(v)
		if err != nil {
			return domain.Route{}, fmt.Errorf("next: %w", err)
		}
		return domain.FixedRoute(id), nil
	}
}

// ToInt accepts the numeric shapes YAML, JSON and frontmatter decoders produce.
func ToInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("expected an integer, got %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected an integer, got %q", n.String())
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("expected an integer, got %q", n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("expected an integer, got %T", v)
}
