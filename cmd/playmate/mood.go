package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/playmate/backend/internal/analysis/mood"
)

func newMoodCmd() *cobra.Command {
	var (
		rulesFile string
		list      bool
	)

	cmd := &cobra.Command{
		Use:   "mood [text...]",
		Short: "Classify the mood of text",
		Long: `Prints the mood label (sad, happy or neutral) of each argument, or of
each line on stdin when no arguments are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := mood.LoadRules(rulesFile)
			if err != nil {
				return err
			}
			classifier := mood.NewClassifier(rules)

			if list {
				return listRules(cmd.OutOrStdout(), classifier)
			}
			if len(args) > 0 {
				return classifyAll(cmd.OutOrStdout(), classifier, args)
			}
			return classifyLines(cmd.OutOrStdout(), classifier, cmd.InOrStdin())
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print the active rules in match order and exit")
	cmd.Flags().StringVar(&rulesFile, "rules", os.Getenv("PLAYMATE_MOOD_RULES_FILE"), "YAML mood rules file (default: built-in rules)")
	return cmd
}

func listRules(w io.Writer, classifier *mood.Classifier) error {
	for _, rule := range classifier.Rules() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", rule.Label, strings.Join(rule.Keywords, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func classifyAll(w io.Writer, classifier *mood.Classifier, texts []string) error {
	for _, text := range texts {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", classifier.Classify(text), text); err != nil {
			return err
		}
	}
	return nil
}

func classifyLines(w io.Writer, classifier *mood.Classifier, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", classifier.Classify(line), line); err != nil {
			return err
		}
	}
	return scanner.Err()
}
