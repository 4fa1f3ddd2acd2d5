package cst

import "fmt"

// coreRuleNames are the grammar productions built into the parser. A
// [GrammarRegistry] rejects any extension whose name collides with one of
// these.
var coreRuleNames = map[string]bool{
	"Document":     true,
	"Directive":    true,
	"Node":         true,
	"Edge":         true,
	"NodeIdent":    true,
	"NodeRef":      true,
	"TypeList":     true,
	"Arrow":        true,
	"NodeBlock":    true,
	"Property":     true,
	"Value":        true,
	"ArrayLiteral": true,
}

// ExtensionRule describes a named grammar extension. The core parser does
// not currently invoke registered rules during parsing — the hook exists so
// callers can register named extensions with dependency and priority
// metadata ahead of a future grammar-extension mechanism, per the contract
// that registration (and its collision checks) be available even when no
// extension actually alters parsing behavior.
type ExtensionRule struct {
	Name      string
	DependsOn []string
	Priority  int
}

// GrammarRegistry holds named grammar extensions. It is consulted only at
// [NewBuilder] construction time; there is no runtime re-registration path,
// matching the "registry is owned by the parser instance" resource model.
type GrammarRegistry struct {
	rules map[string]ExtensionRule
}

// NewGrammarRegistry creates an empty registry.
func NewGrammarRegistry() *GrammarRegistry {
	return &GrammarRegistry{rules: make(map[string]ExtensionRule)}
}

// Register adds a named extension rule.
//
// Returns an error if the name collides with a core grammar rule, is empty,
// or has already been registered.
func (r *GrammarRegistry) Register(rule ExtensionRule) error {
	if rule.Name == "" {
		return fmt.Errorf("cst: extension rule name must not be empty")
	}
	if coreRuleNames[rule.Name] {
		return fmt.Errorf("cst: extension rule %q collides with a core grammar rule", rule.Name)
	}
	if _, exists := r.rules[rule.Name]; exists {
		return fmt.Errorf("cst: extension rule %q already registered", rule.Name)
	}
	for _, dep := range rule.DependsOn {
		if _, exists := r.rules[dep]; !exists && !coreRuleNames[dep] {
			return fmt.Errorf("cst: extension rule %q depends on unregistered rule %q", rule.Name, dep)
		}
	}
	r.rules[rule.Name] = rule
	return nil
}

// Rules returns the registered extension rules in no particular order.
func (r *GrammarRegistry) Rules() []ExtensionRule {
	out := make([]ExtensionRule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	return out
}

// Len returns the number of registered extension rules.
func (r *GrammarRegistry) Len() int {
	return len(r.rules)
}
