package store

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vitalctl/vital/internal/model"
)

// Prompter asks the user to resolve ambiguous lookups. Injected so the
// disambiguation flows are testable without a terminal.
type Prompter interface {
	// Confirm asks a yes/no question
	Confirm(question string) (bool, error)
	// Select asks the user to pick one of the numbered options,
	// returning its index
	Select(question string, options []string) (int, error)
}

// TerminalPrompter prompts on an io stream pair (normally stdin/stdout)
type TerminalPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm asks a y/n question and reads one line
func (p *TerminalPrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.Out, "%s [y/N]: ", question)
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Select prints numbered options and reads a 1-based selection
func (p *TerminalPrompter) Select(question string, options []string) (int, error) {
	fmt.Fprintln(p.Out, question)
	for i, opt := range options {
		fmt.Fprintf(p.Out, "  %d. %s\n", i+1, opt)
	}
	fmt.Fprintf(p.Out, "Choice [1-%d]: ", len(options))

	line, err := p.readLine()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(options) {
		return 0, fmt.Errorf("invalid selection: %s", strings.TrimSpace(line))
	}
	return n - 1, nil
}

func (p *TerminalPrompter) readLine() (string, error) {
	reader := bufio.NewReader(p.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return line, nil
}

// FindChoiceByName resolves a user-supplied name against the loaded
// choices. An exact case-insensitive match wins immediately; otherwise
// prefix matches are collected in load order, then substring matches
// not already collected, and the prompter disambiguates.
func FindChoiceByName(choices []model.Choice, name string, prompter Prompter) (*model.Choice, error) {
	query := strings.ToLower(strings.TrimSpace(name))

	for i := range choices {
		if strings.ToLower(choices[i].Name) == query {
			return &choices[i], nil
		}
	}

	var candidates []*model.Choice
	seen := make(map[string]bool)
	for i := range choices {
		if strings.HasPrefix(strings.ToLower(choices[i].Name), query) {
			candidates = append(candidates, &choices[i])
			seen[choices[i].Name] = true
		}
	}
	for i := range choices {
		if seen[choices[i].Name] {
			continue
		}
		if strings.Contains(strings.ToLower(choices[i].Name), query) {
			candidates = append(candidates, &choices[i])
		}
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("no choice matching %q", name)
	case 1:
		ok, err := prompter.Confirm(fmt.Sprintf("Did you mean %q?", candidates[0].Name))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("no choice matching %q", name)
		}
		return candidates[0], nil
	default:
		options := make([]string, len(candidates))
		for i, c := range candidates {
			options[i] = fmt.Sprintf("%s (%s)", c.Name, c.Domain)
		}
		idx, err := prompter.Select(fmt.Sprintf("Multiple choices match %q:", name), options)
		if err != nil {
			return nil, err
		}
		return candidates[idx], nil
	}
}
