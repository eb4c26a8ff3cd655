package program

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads a textual normal logic program and builds it.
//
// The accepted syntax is the normal-rule fragment of the usual ASP surface
// syntax: one rule per statement, terminated by '.', with '%' line comments.
//
//	a.
//	b :- not a.
//	:- a, b.
//
// Out-of-scope constructs (disjunctive heads, choice rules, aggregates,
// classical negation, variables) are rejected with ErrUnsupportedConstruct.
func Parse(r io.Reader) (*Program, error) {
	rules, err := ParseRules(r)
	if err != nil {
		return nil, err
	}
	return Build(rules)
}

// ParseRules reads a textual program and returns its rules without building
// a Program.
func ParseRules(r io.Reader) ([]Rule, error) {
	var sb strings.Builder
	sc := bufio.NewScanner(r)
	lineno := 0
	var rules []Rule
	flush := func() error {
		stmt := strings.TrimSpace(sb.String())
		sb.Reset()
		if stmt == "" {
			return nil
		}
		rule, err := parseRule(stmt)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		rules = append(rules, rule)
		return nil
	}
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if i := strings.IndexByte(line, '%'); i >= 0 {
			line = line[:i]
		}
		for {
			dot := strings.IndexByte(line, '.')
			if dot < 0 {
				sb.WriteString(line)
				sb.WriteByte(' ')
				break
			}
			sb.WriteString(line[:dot])
			if err := flush(); err != nil {
				return nil, err
			}
			line = line[dot+1:]
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read program: %w", err)
	}
	if strings.TrimSpace(sb.String()) != "" {
		return nil, fmt.Errorf("%w: unterminated rule %q", ErrMalformedProgram, strings.TrimSpace(sb.String()))
	}
	return rules, nil
}

func parseRule(stmt string) (Rule, error) {
	if err := checkSupported(stmt); err != nil {
		return Rule{}, err
	}
	head, body, hasBody := strings.Cut(stmt, ":-")
	if !hasBody {
		// A fact.
		name, err := parseAtom(head)
		if err != nil {
			return Rule{}, err
		}
		if name == "" {
			return Rule{}, fmt.Errorf("%w: empty statement", ErrMalformedProgram)
		}
		return Rule{Head: name}, nil
	}
	rule := Rule{}
	headName, err := parseAtom(head)
	if err != nil {
		return Rule{}, err
	}
	rule.Head = headName // empty head means constraint
	body = strings.TrimSpace(body)
	if body == "" {
		// ":- ." is the empty-body constraint, a derivable contradiction.
		return rule, nil
	}
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "not" {
			return Rule{}, fmt.Errorf("%w: 'not' without atom", ErrMalformedProgram)
		}
		if neg, ok := strings.CutPrefix(part, "not "); ok {
			name, err := parseAtom(neg)
			if err != nil {
				return Rule{}, err
			}
			if name == "" {
				return Rule{}, fmt.Errorf("%w: 'not' without atom", ErrMalformedProgram)
			}
			rule.Neg = append(rule.Neg, name)
			continue
		}
		name, err := parseAtom(part)
		if err != nil {
			return Rule{}, err
		}
		if name == "" {
			return Rule{}, fmt.Errorf("%w: empty body literal", ErrMalformedProgram)
		}
		rule.Pos = append(rule.Pos, name)
	}
	return rule, nil
}

func checkSupported(stmt string) error {
	switch {
	case strings.ContainsAny(stmt, "|;"):
		return fmt.Errorf("%w: disjunctive rule %q", ErrUnsupportedConstruct, stmt)
	case strings.ContainsAny(stmt, "{}"):
		return fmt.Errorf("%w: choice rule %q", ErrUnsupportedConstruct, stmt)
	case strings.ContainsRune(stmt, '#'):
		return fmt.Errorf("%w: aggregate or directive %q", ErrUnsupportedConstruct, stmt)
	case strings.ContainsAny(stmt, "()"):
		return fmt.Errorf("%w: non-ground rule %q", ErrUnsupportedConstruct, stmt)
	case strings.HasPrefix(strings.TrimSpace(stmt), "-"):
		return fmt.Errorf("%w: classical negation %q", ErrUnsupportedConstruct, stmt)
	}
	return nil
}

// parseAtom validates a single atom name. An all-blank input yields the
// empty name (used for constraint heads); anything else must be an
// identifier: a letter or underscore followed by letters, digits or
// underscores.
func parseAtom(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if s[0] == '-' {
		return "", fmt.Errorf("%w: classical negation %q", ErrUnsupportedConstruct, s)
	}
	for i, c := range s {
		ok := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9')
		if !ok {
			return "", fmt.Errorf("%w: invalid atom %q", ErrMalformedProgram, s)
		}
	}
	if s[0] >= 'A' && s[0] <= 'Z' {
		return "", fmt.Errorf("%w: variable %q (programs must be ground)", ErrUnsupportedConstruct, s)
	}
	return s, nil
}
