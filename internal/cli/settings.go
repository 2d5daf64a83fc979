package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/aretw0/autoquote/pkg/domain"
	"gopkg.in/yaml.v3"
)

// RunSettingsGet prints the effective settings as YAML or JSON.
func RunSettingsGet(ctx context.Context, opts Options, format string, out io.Writer) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	settings, err := s.ext.Settings(ctx)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(settings)
	case "", "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(settings)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// RunSettingsSet assigns value to key; values are weakly typed ("true", "1").
func RunSettingsSet(ctx context.Context, opts Options, key, value string, out io.Writer) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	old, updated, err := s.ext.SettingsManager().Set(ctx, key, value)
	if err != nil {
		return err
	}
	if domain.Diff(old, updated).IsEmpty() {
		printSystemMessage(out, "%s unchanged", key)
		return nil
	}
	printSystemMessage(out, "%s set to %v", key, updated.Encode()[key])
	return nil
}

// RunSettingsToggle flips the enabled flag, like the "//aq" command.
func RunSettingsToggle(ctx context.Context, opts Options, out io.Writer) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	enabled, err := s.ext.SettingsManager().Toggle(ctx)
	if err != nil {
		return err
	}
	printSystemMessage(out, "AutoQuote %s", enabledLabel(enabled))
	return nil
}

// RunSettingsReset removes the stored settings.
func RunSettingsReset(ctx context.Context, opts Options, out io.Writer) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ext.SettingsManager().Reset(ctx); err != nil {
		return err
	}
	printSystemMessage(out, "Settings of %s reset to defaults", s.ext.SettingsManager().Name())
	return nil
}

// RunSettingsList prints the names that have settings in the store.
func RunSettingsList(ctx context.Context, opts Options, out io.Writer) error {
	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	names, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

// RunSettingsImport replaces the stored settings with the content of a YAML
// or JSON file. The blob is validated before anything is saved.
func RunSettingsImport(ctx context.Context, opts Options, path string, out io.Writer) error {
	blob, err := loadSettingsFile(path)
	if err != nil {
		return err
	}
	imported, err := domain.Decode(blob)
	if err != nil {
		return err
	}

	s, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, _, err := s.ext.SettingsManager().Update(ctx, func(current *domain.Settings) error {
		*current = imported
		return nil
	}); err != nil {
		return err
	}
	printSystemMessage(out, "Imported settings from %s", path)
	return nil
}
