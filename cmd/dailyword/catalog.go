package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/config"
	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/validate"
)

func newCatalogCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect, validate and import word catalogs",
	}
	command.AddCommand(
		newCatalogListCommand(),
		newCatalogValidateCommand(),
		newCatalogImportCommand(),
	)
	return command
}

func newCatalogLoader(cfg *config.Config) *catalog.Loader {
	return catalog.NewLoader(
		catalog.WithDirectory(cfg.Content.CatalogDirectory),
		catalog.WithDefaultLanguage(cfg.Content.DefaultLanguage),
		catalog.WithLogger(slog.Default()),
	)
}

func newCatalogListCommand() *cobra.Command {
	var target language.Code

	command := &cobra.Command{
		Use:   "list",
		Short: "List the catalogs, or the items of one catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			loader := newCatalogLoader(cfg)
			out := cmd.OutOrStdout()

			if target == "" {
				for _, code := range loader.Languages() {
					items, err := loader.Load(code)
					if err != nil {
						return fmt.Errorf("loader.Load(%s) > %w", code, err)
					}
					_, _ = fmt.Fprintf(out, "%s %s (%s): %d items\n", code.Flag(), code.NativeName(), code, len(items))
				}
				return nil
			}

			items, err := loader.Load(target)
			if err != nil {
				return fmt.Errorf("loader.Load(%s) > %w", target, err)
			}
			for _, item := range items {
				_, _ = fmt.Fprintf(out, "%-12s [%s] %s: %s\n", item.ID, item.Level, item.TargetText, catalog.Translation(item, language.Default))
			}
			return nil
		},
	}

	command.Flags().Var(&target, "language", "list the items of this target language")

	return command
}

func newCatalogValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [catalog-file...]",
		Short: "Validate catalog files, or every available catalog when no file is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			validator, err := validate.New()
			if err != nil {
				return fmt.Errorf("validate.New() > %w", err)
			}

			catalogs := make(map[string][]catalog.Item)
			var names []string
			if len(args) > 0 {
				for _, path := range args {
					items, err := catalog.ReadFile(path)
					if err != nil {
						return fmt.Errorf("catalog.ReadFile() > %w", err)
					}
					catalogs[path] = items
					names = append(names, path)
				}
			} else {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				loader := newCatalogLoader(cfg)
				for _, code := range loader.Languages() {
					items, err := loader.Load(code)
					if err != nil {
						return fmt.Errorf("loader.Load(%s) > %w", code, err)
					}
					catalogs[string(code)] = items
					names = append(names, string(code))
				}
			}

			totalErrors := 0
			for _, name := range names {
				result := catalog.Validate(validator, catalogs[name])
				displayValidationResults(cmd.OutOrStdout(), name, result)
				totalErrors += len(result.Errors)
			}
			if totalErrors > 0 {
				return fmt.Errorf("validation failed with %d error(s)", totalErrors)
			}
			return nil
		},
	}
}

func displayValidationResults(out io.Writer, name string, result *catalog.ValidationResult) {
	_, _ = fmt.Fprintf(out, "=== %s ===\n", name)

	if len(result.Errors) > 0 {
		_, _ = fmt.Fprintf(out, "✗ Errors (%d):\n", len(result.Errors))
		for _, err := range result.Errors {
			_, _ = fmt.Fprintf(out, "  - %s\n", err.Error())
		}
	}

	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintf(out, "⚠ Warnings (%d):\n", len(result.Warnings))
		displayCount := min(len(result.Warnings), 10)
		for _, warning := range result.Warnings[:displayCount] {
			_, _ = fmt.Fprintf(out, "  - %s\n", warning.Error())
		}
		if len(result.Warnings) > displayCount {
			_, _ = fmt.Fprintf(out, "  ... and %d more\n", len(result.Warnings)-displayCount)
		}
	}

	if len(result.Errors) == 0 && len(result.Warnings) == 0 {
		_, _ = fmt.Fprintln(out, "✓ All validations passed!")
	}
	_, _ = fmt.Fprintln(out)
}

func newCatalogImportCommand() *cobra.Command {
	var target language.Code
	var outputDirectory string
	importConfig := catalog.DefaultImportConfig()

	command := &cobra.Command{
		Use:   "import <spreadsheet>",
		Short: "Build a catalog file from an .xlsx or .csv spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if target == "" {
				return errors.New("--language is required")
			}
			if outputDirectory == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				outputDirectory = cfg.Content.CatalogDirectory
				if outputDirectory == "" {
					outputDirectory = "catalogs"
				}
			}

			result, err := catalog.Import(args[0], importConfig)
			if err != nil {
				return fmt.Errorf("catalog.Import() > %w", err)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Processed %d row(s), imported %d, skipped %d\n",
				result.TotalProcessed, len(result.Items), result.Skipped)
			for _, rowErr := range result.Errors {
				_, _ = fmt.Fprintf(out, "  - %s\n", rowErr)
			}

			validator, err := validate.New()
			if err != nil {
				return fmt.Errorf("validate.New() > %w", err)
			}
			validation := catalog.Validate(validator, result.Items)
			if validation.HasErrors() {
				displayValidationResults(out, args[0], validation)
				return fmt.Errorf("validation failed with %d error(s)", len(validation.Errors))
			}

			path := filepath.Join(outputDirectory, string(target)+".yml")
			if err := catalog.WriteFile(path, result.Items); err != nil {
				return fmt.Errorf("catalog.WriteFile() > %w", err)
			}
			_, _ = fmt.Fprintf(out, "Wrote %s\n", path)
			return nil
		},
	}

	command.Flags().Var(&target, "language", "target language of the spreadsheet")
	command.Flags().StringVar(&outputDirectory, "output", "", "directory to write <language>.yml to (defaults to content.catalog_directory)")
	command.Flags().StringVar(&importConfig.SheetName, "sheet", "", "sheet to read from an xlsx file")
	command.Flags().Var(&importConfig.DefaultLevel, "default-level", "level for rows without one")

	return command
}
