// Package rules assembles the built-in rule registry.
package rules

import (
	"github.com/walteh/phpfix/pkg/fixer"
	"github.com/walteh/phpfix/pkg/fixer/controlparen"
	"github.com/walteh/phpfix/pkg/fixer/trailingspace"
	"gitlab.com/tozd/go/errors"
)

// Registry returns a registry holding every built-in rule.
func Registry() (*fixer.Registry, error) {
	registry := fixer.NewRegistry()
	builtin := []fixer.Fixer{
		controlparen.New(controlparen.DefaultCapabilities()),
		trailingspace.New(),
	}
	for _, f := range builtin {
		if err := registry.Register(f); err != nil {
			return nil, errors.Errorf("registering built-in rules: %w", err)
		}
	}
	return registry, nil
}
