package config

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// Rules is the shape of the optional repo-local rules file. Non-empty fields
// override the flag/env configuration so operators can keep file selection and
// issue metadata next to the files they track.
type Rules struct {
	Include   []string `json:"include,omitempty"`
	Exclude   []string `json:"exclude,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
	Milestone string   `json:"milestone,omitempty"`
}

func applyRules(opts *Options, name string) error {
	if name == "" {
		return nil
	}
	path := filepath.Join(opts.RepoPath, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read rules file %s: %w", path, err)
	}
	var rules Rules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return fmt.Errorf("parse rules file %s: %w", path, err)
	}
	if len(rules.Include) > 0 {
		opts.IncludePatterns = rules.Include
	}
	if len(rules.Exclude) > 0 {
		opts.ExcludePatterns = rules.Exclude
	}
	if len(rules.Labels) > 0 {
		opts.Labels = rules.Labels
	}
	if len(rules.Assignees) > 0 {
		opts.Assignees = rules.Assignees
	}
	if rules.Milestone != "" {
		opts.Milestone = rules.Milestone
	}
	return nil
}
