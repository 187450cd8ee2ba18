package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/dailyword/internal/bootstrap"
	"github.com/at-ishikawa/dailyword/internal/language"
	"github.com/at-ishikawa/dailyword/internal/locale"
	"github.com/at-ishikawa/dailyword/internal/progress"
)

func newOnboardCommand() *cobra.Command {
	var native language.Code
	var target language.Code
	var level language.Level

	command := &cobra.Command{
		Use:   "onboard",
		Short: "Choose the language you speak and the language you want to learn",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithServices(cmd, func(ctx context.Context, services *bootstrap.Services) error {
				out := cmd.OutOrStdout()
				in := bufio.NewReader(cmd.InOrStdin())

				var err error
				if native == "" {
					native, err = promptLanguage(in, out, services.Tables.Text(language.Default, locale.KeyLanguageSelect), language.Supported())
					if err != nil {
						return err
					}
				}
				if target == "" {
					target, err = promptLanguage(in, out, "Which language do you want to learn?", services.Catalog.Languages())
					if err != nil {
						return err
					}
				}

				preferences := progress.Preferences{
					NativeLanguage:   native,
					TargetLanguage:   target,
					ProficiencyLevel: level,
				}
				if err := services.Tracker.SavePreferences(ctx, preferences); err != nil {
					return fmt.Errorf("tracker.SavePreferences() > %w", err)
				}

				_, _ = fmt.Fprintf(out, "%s %s → %s %s\n",
					native.Flag(), native.NativeName(),
					target.Flag(), target.DisplayName(native),
				)
				return nil
			})
		},
	}

	command.Flags().Var(&native, "native", "the language you speak, e.g. tr")
	command.Flags().Var(&target, "target", "the language you want to learn, e.g. en")
	command.Flags().Var(&level, "level", "your proficiency level (A1-C2); only items at or below it are shown")

	return command
}

// promptLanguage lists choices and reads either a number from the list or a language code.
func promptLanguage(in *bufio.Reader, out io.Writer, title string, choices []language.Code) (language.Code, error) {
	if len(choices) == 0 {
		return "", errors.New("no language to choose from")
	}

	_, _ = fmt.Fprintln(out, title)
	for i, code := range choices {
		_, _ = fmt.Fprintf(out, "  [%d] %s %s\n", i+1, code.Flag(), code.NativeName())
	}

	for {
		_, _ = fmt.Fprint(out, "> ")
		line, err := in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("read a language: %w", err)
		}
		answer := strings.TrimSpace(line)

		if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(choices) {
			return choices[n-1], nil
		}
		if code, parseErr := language.Parse(answer); parseErr == nil {
			return code, nil
		}
		_, _ = fmt.Fprintf(out, "%q is not one of the languages\n", answer)
		if err != nil {
			return "", fmt.Errorf("read a language: %w", err)
		}
	}
}
