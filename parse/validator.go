package parse

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	"github.com/mxkacsa/botgen/ast"
)

// SupportedVersions is the range of graph format versions this compiler
// reads. A graph without a version is accepted.
const SupportedVersions = ">= 1.0.0, < 3.0.0"

// Validator validates a parsed graph
type Validator interface {
	Validate(g *ast.Graph) error
}

func nodeProblem(id, field, message string) string {
	return (&NodeError{NodeID: id, Field: field, Message: message}).Error()
}

// VersionValidator checks the graph format version against
// SupportedVersions.
type VersionValidator struct{}

// Validate validates the format version
func (v *VersionValidator) Validate(g *ast.Graph) error {
	if g.Version == "" {
		return nil
	}
	version, err := semver.NewVersion(g.Version)
	if err != nil {
		return errors.Wrapf(ErrUnsupportedVersion, "version %q is not a semantic version", g.Version)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return errors.Wrap(err, "supported versions constraint")
	}
	if !constraint.Check(version) {
		return errors.WithHint(
			errors.Wrapf(ErrUnsupportedVersion, "version %s", version),
			"this compiler reads graph versions "+SupportedVersions,
		)
	}
	return nil
}

// RequiredFieldsValidator validates that required fields are present
type RequiredFieldsValidator struct{}

// Validate validates required fields
func (v *RequiredFieldsValidator) Validate(g *ast.Graph) error {
	var problems []string

	for i, n := range g.Nodes {
		if n.ID == "" {
			problems = append(problems, fmt.Sprintf("nodes[%d]: id is required", i))
		}
		if n.Type == "" {
			problems = append(problems, fmt.Sprintf("nodes[%d]: type is required", i))
		}
		if n.Data == nil {
			problems = append(problems, fmt.Sprintf("nodes[%d]: data is required", i))
		}
		if d, ok := n.Data.(*ast.ContactData); ok && strings.TrimSpace(d.PhoneNumber) == "" {
			problems = append(problems, nodeProblem(n.ID, "phoneNumber", "is required"))
		}
	}

	for i, c := range g.Connections {
		if c.Source == "" || c.Target == "" {
			problems = append(problems, fmt.Sprintf("connections[%d]: source and target are required", i))
		}
	}

	return failure("validation", problems)
}

// DuplicateIDValidator rejects node ids used more than once.
type DuplicateIDValidator struct{}

// Validate validates node id uniqueness
func (v *DuplicateIDValidator) Validate(g *ast.Graph) error {
	var problems []string
	seen := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			continue
		}
		if first, dup := seen[n.ID]; dup {
			problems = append(problems, fmt.Sprintf("nodes[%d]: id '%s' already used by nodes[%d]", i, n.ID, first))
			continue
		}
		seen[n.ID] = i
	}
	return failure("duplicate id validation", problems)
}

// ConnectionValidator checks that drawn edges join existing nodes. Edges
// leaving the sheet are not checked.
type ConnectionValidator struct{}

// Validate validates connection endpoints
func (v *ConnectionValidator) Validate(g *ast.Graph) error {
	ids := g.NodeIDs()
	var problems []string
	for i, c := range g.Connections {
		if c.CrossSheet != nil || c.Source == "" || c.Target == "" {
			continue
		}
		if !ids[c.Source] {
			problems = append(problems, fmt.Sprintf("connections[%d]: source '%s' does not exist", i, c.Source))
		}
		if !ids[c.Target] {
			problems = append(problems, fmt.Sprintf("connections[%d]: target '%s' does not exist", i, c.Target))
		}
	}
	return failure("connection validation", problems)
}

// TargetValidator checks every node id a node names: button targets, auto
// transitions and the next node of inputs, conditions and multi-selects.
type TargetValidator struct{}

// Validate validates transition targets
func (v *TargetValidator) Validate(g *ast.Graph) error {
	ids := g.NodeIDs()
	var problems []string

	check := func(n *ast.Node, field, target string) {
		if target != "" && !ids[target] {
			problems = append(problems, nodeProblem(n.ID, field, fmt.Sprintf("target '%s' does not exist", target)))
		}
	}
	buttons := func(n *ast.Node, prefix string, list []ast.Button) {
		for j, b := range list {
			if b.Action == ast.ActionGoto {
				check(n, fmt.Sprintf("%sbuttons[%d]", prefix, j), b.Target)
			}
		}
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		if at, ok := ast.AutoTransitionOf(n); ok {
			check(n, "autoTransitionTo", at.AutoTransitionTo)
		}
		base := messageBase(n.Data)
		if base == nil {
			continue
		}
		buttons(n, "", base.Buttons)
		for j, m := range base.ConditionalMessages {
			prefix := fmt.Sprintf("conditionalMessages[%d].", j)
			buttons(n, prefix, m.Buttons)
			if m.WaitForTextInput {
				check(n, prefix+"nextNodeAfterInput", m.NextNodeAfterInput)
			}
		}
		switch d := n.Data.(type) {
		case *ast.InputData:
			check(n, "inputTargetNodeId", d.InputTargetNodeID)
		case *ast.MultiSelectData:
			check(n, "continueButtonTarget", d.ContinueButtonTarget)
		}
	}

	return failure("target validation", problems)
}

// ConditionValidator checks conditional messages: known condition kinds,
// variables for variable based kinds and a known logic operator.
type ConditionValidator struct{}

// Validate validates conditional messages
func (v *ConditionValidator) Validate(g *ast.Graph) error {
	var problems []string

	for i := range g.Nodes {
		n := &g.Nodes[i]
		base := messageBase(n.Data)
		if base == nil {
			continue
		}
		for j, m := range base.ConditionalMessages {
			field := fmt.Sprintf("conditionalMessages[%d]", j)
			switch m.Condition {
			case ast.ConditionFirstTime, ast.ConditionReturning:
			case ast.ConditionExists, ast.ConditionNotExists, ast.ConditionEquals, ast.ConditionContains:
				if len(m.VariableNames) == 0 {
					problems = append(problems, nodeProblem(n.ID, field, fmt.Sprintf("condition '%s' needs variableNames", m.Condition)))
				}
			default:
				problems = append(problems, nodeProblem(n.ID, field, fmt.Sprintf("unknown condition '%s'", m.Condition)))
			}
			switch strings.ToUpper(string(m.LogicOperator)) {
			case "", string(ast.LogicAnd), string(ast.LogicOr):
			default:
				problems = append(problems, nodeProblem(n.ID, field, fmt.Sprintf("unknown logic operator '%s'", m.LogicOperator)))
			}
		}
	}

	return failure("condition validation", problems)
}

// CompositeValidator combines multiple validators
type CompositeValidator struct {
	validators []Validator
}

// NewCompositeValidator creates a new composite validator
func NewCompositeValidator(validators ...Validator) *CompositeValidator {
	return &CompositeValidator{validators: validators}
}

// Validate runs all validators
func (v *CompositeValidator) Validate(g *ast.Graph) error {
	var errs []error
	for _, validator := range v.validators {
		if err := validator.Validate(g); err != nil {
			errs = append(errs, err)
		}
	}
	return CombineErrors(errs...)
}

// messageBase returns the shared message fields of a payload, or nil for
// action kinds.
func messageBase(d ast.Data) *ast.MessageBase {
	switch d := d.(type) {
	case *ast.StartData:
		return &d.MessageBase
	case *ast.CommandData:
		return &d.MessageBase
	case *ast.MessageData:
		return &d.MessageBase
	case *ast.MediaData:
		return &d.MessageBase
	case *ast.LocationData:
		return &d.MessageBase
	case *ast.ContactData:
		return &d.MessageBase
	case *ast.InputData:
		return &d.MessageBase
	case *ast.ConditionalData:
		return &d.MessageBase
	case *ast.MultiSelectData:
		return &d.MessageBase
	}
	return nil
}
