package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/autoquote/pkg/annotate"
)

// RunAnnotate annotates (or with Undo, cleans) paragraph markup. Files given
// as arguments are printed, or rewritten with InPlace; without arguments
// the markup is read from in. Without --variant the stored settings decide.
func RunAnnotate(ctx context.Context, opts Options, aopts AnnotateOptions, files []string, in io.Reader, out io.Writer) error {
	transform, err := annotateFunc(ctx, opts, aopts)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		_, err = io.WriteString(out, transform(string(data)))
		return err
	}

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		result := transform(string(data))
		if aopts.InPlace {
			if err := os.WriteFile(path, []byte(result), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			continue
		}
		if _, err := io.WriteString(out, result); err != nil {
			return err
		}
	}
	return nil
}

func annotateFunc(ctx context.Context, opts Options, aopts AnnotateOptions) (func(string) string, error) {
	if aopts.Undo {
		return annotate.Unannotate, nil
	}

	if aopts.Variant != "" {
		variant, ok := annotate.ParseVariant(aopts.Variant)
		if !ok {
			return nil, fmt.Errorf("unknown variant %q (want names, full or none)", aopts.Variant)
		}
		cfg := annotate.Config{
			Variant:    variant,
			NameColor:  aopts.NameColor,
			TextColor:  aopts.TextColor,
			QuoteColor: aopts.QuoteColor,
		}
		return func(markup string) string { return annotate.Annotate(markup, cfg) }, nil
	}

	s, err := newSession(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	settings, err := s.ext.Settings(ctx)
	if err != nil {
		return nil, err
	}
	cfg, ok := settings.AnnotationConfig()
	if !ok {
		s.logger.Info("annotation disabled in settings, markup left unchanged")
		return func(markup string) string { return markup }, nil
	}
	return func(markup string) string { return annotate.Annotate(markup, cfg) }, nil
}
