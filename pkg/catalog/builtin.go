package catalog

import (
	_ "embed"
	"fmt"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Builtin returns the catalog shipped with the binary.
func Builtin() (*Catalog, error) {
	c, err := Parse(builtinYAML, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}
	return c, nil
}
