package parse

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxkacsa/botgen/ast"
)

// ============================================================================
// Helpers
// ============================================================================

func message(id string, mut func(d *ast.MessageData)) ast.Node {
	d := &ast.MessageData{}
	if mut != nil {
		mut(d)
	}
	return ast.MustNode(id, ast.NodeMessage, d)
}

func graphOf(nodes ...ast.Node) *ast.Graph {
	return &ast.Graph{Nodes: nodes}
}

// ============================================================================
// Version
// ============================================================================

func TestVersionValidator(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{"absent", "", false},
		{"lowest", "1.0.0", false},
		{"minor", "2.4.1", false},
		{"too new", "3.0.0", true},
		{"too old", "0.9.0", true},
		{"garbage", "latest", true},
	}

	v := &VersionValidator{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&ast.Graph{Version: tt.version})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedVersion))
		})
	}
}

func TestVersionValidator_Hint(t *testing.T) {
	err := (&VersionValidator{}).Validate(&ast.Graph{Version: "5.0.0"})
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), SupportedVersions)
}

// ============================================================================
// Required fields
// ============================================================================

func TestRequiredFieldsValidator(t *testing.T) {
	g := &ast.Graph{
		Nodes: []ast.Node{
			{ID: "", Type: ast.NodeMessage, Data: &ast.MessageData{}},
			{ID: "b", Type: "", Data: nil},
			ast.MustNode("c", ast.NodeContact, &ast.ContactData{FirstName: "Shop"}),
		},
		Connections: []ast.Connection{{ID: "x", Source: "b"}},
	}

	err := (&RequiredFieldsValidator{}).Validate(g)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidGraph))

	msg := err.Error()
	assert.Contains(t, msg, "nodes[0]: id is required")
	assert.Contains(t, msg, "nodes[1]: type is required")
	assert.Contains(t, msg, "nodes[1]: data is required")
	assert.Contains(t, msg, "node 'c'.phoneNumber: is required")
	assert.Contains(t, msg, "connections[0]: source and target are required")
}

func TestRequiredFieldsValidator_Valid(t *testing.T) {
	g := graphOf(
		message("a", nil),
		ast.MustNode("c", ast.NodeContact, &ast.ContactData{PhoneNumber: "+100", FirstName: "Shop"}),
	)
	assert.NoError(t, (&RequiredFieldsValidator{}).Validate(g))
}

// ============================================================================
// Duplicate ids
// ============================================================================

func TestDuplicateIDValidator(t *testing.T) {
	g := graphOf(message("a", nil), message("b", nil), message("a", nil), message("a", nil))

	err := (&DuplicateIDValidator{}).Validate(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodes[2]: id 'a' already used by nodes[0]")
	assert.Contains(t, err.Error(), "nodes[3]: id 'a' already used by nodes[0]")
	assert.NotContains(t, err.Error(), "'b'")
}

func TestDuplicateIDValidator_EmptyIDsIgnored(t *testing.T) {
	g := &ast.Graph{Nodes: []ast.Node{
		{Type: ast.NodeMessage, Data: &ast.MessageData{}},
		{Type: ast.NodeMessage, Data: &ast.MessageData{}},
	}}
	assert.NoError(t, (&DuplicateIDValidator{}).Validate(g))
}

// ============================================================================
// Connections
// ============================================================================

func TestConnectionValidator(t *testing.T) {
	tests := []struct {
		name    string
		conn    ast.Connection
		wantErr string
	}{
		{"valid", ast.Connection{ID: "1", Source: "a", Target: "b"}, ""},
		{"missing source", ast.Connection{ID: "1", Source: "zz", Target: "b"}, "source 'zz' does not exist"},
		{"missing target", ast.Connection{ID: "1", Source: "a", Target: "zz"}, "target 'zz' does not exist"},
		{
			"cross sheet",
			ast.Connection{ID: "1", Source: "a", Target: "elsewhere", CrossSheet: &ast.CrossSheetRef{SourceSheetID: "s1", TargetSheetID: "s2"}},
			"",
		},
		{"incomplete is left to required fields", ast.Connection{ID: "1", Source: "a"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graphOf(message("a", nil), message("b", nil))
			g.Connections = []ast.Connection{tt.conn}

			err := (&ConnectionValidator{}).Validate(g)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "connections[0]: "+tt.wantErr)
		})
	}
}

// ============================================================================
// Targets
// ============================================================================

func TestTargetValidator(t *testing.T) {
	tests := []struct {
		name    string
		node    ast.Node
		wantErr string
	}{
		{
			name: "auto transition",
			node: message("x", func(d *ast.MessageData) {
				d.EnableAutoTransition = true
				d.AutoTransitionTo = "ghost"
			}),
			wantErr: "node 'x'.autoTransitionTo: target 'ghost' does not exist",
		},
		{
			name: "disabled auto transition is ignored",
			node: message("x", func(d *ast.MessageData) {
				d.AutoTransitionTo = "ghost"
			}),
		},
		{
			name: "goto button",
			node: message("x", func(d *ast.MessageData) {
				d.Buttons = []ast.Button{
					{ID: "1", Text: "ok", Action: ast.ActionGoto, Target: "ok"},
					{ID: "2", Text: "bad", Action: ast.ActionGoto, Target: "ghost"},
				}
			}),
			wantErr: "node 'x'.buttons[1]: target 'ghost' does not exist",
		},
		{
			name: "url button target is not a node",
			node: message("x", func(d *ast.MessageData) {
				d.Buttons = []ast.Button{{ID: "1", Text: "site", Action: ast.ActionURL, Target: "ghost", URL: "https://example.com"}}
			}),
		},
		{
			name: "conditional message button",
			node: message("x", func(d *ast.MessageData) {
				d.ConditionalMessages = []ast.ConditionalMessage{{
					Condition: ast.ConditionFirstTime,
					Buttons:   []ast.Button{{ID: "1", Text: "go", Action: ast.ActionGoto, Target: "ghost"}},
				}}
			}),
			wantErr: "node 'x'.conditionalMessages[0].buttons[0]: target 'ghost' does not exist",
		},
		{
			name: "next node after input",
			node: message("x", func(d *ast.MessageData) {
				d.ConditionalMessages = []ast.ConditionalMessage{{
					Condition:          ast.ConditionFirstTime,
					WaitForTextInput:   true,
					NextNodeAfterInput: "ghost",
				}}
			}),
			wantErr: "conditionalMessages[0].nextNodeAfterInput: target 'ghost' does not exist",
		},
		{
			name:    "input target",
			node:    ast.MustNode("x", ast.NodeInput, &ast.InputData{InputTargetNodeID: "ghost"}),
			wantErr: "node 'x'.inputTargetNodeId: target 'ghost' does not exist",
		},
		{
			name:    "multi-select continue target",
			node:    ast.MustNode("x", ast.NodeMultiSelect, &ast.MultiSelectData{ContinueButtonTarget: "ghost"}),
			wantErr: "node 'x'.continueButtonTarget: target 'ghost' does not exist",
		},
		{
			name: "existing targets",
			node: ast.MustNode("x", ast.NodeInput, &ast.InputData{InputTargetNodeID: "ok"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graphOf(message("ok", nil), tt.node)

			err := (&TargetValidator{}).Validate(g)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidGraph))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ============================================================================
// Conditions
// ============================================================================

func TestConditionValidator(t *testing.T) {
	tests := []struct {
		name    string
		cond    ast.ConditionalMessage
		wantErr string
	}{
		{"first time", ast.ConditionalMessage{Condition: ast.ConditionFirstTime}, ""},
		{"returning", ast.ConditionalMessage{Condition: ast.ConditionReturning}, ""},
		{
			"equals with variable",
			ast.ConditionalMessage{Condition: ast.ConditionEquals, VariableNames: []string{"city"}, ExpectedValue: "Riga"},
			"",
		},
		{
			"lowercase operator",
			ast.ConditionalMessage{Condition: ast.ConditionExists, VariableNames: []string{"a", "b"}, LogicOperator: "or"},
			"",
		},
		{
			"exists without variables",
			ast.ConditionalMessage{Condition: ast.ConditionExists},
			"condition 'user_data_exists' needs variableNames",
		},
		{
			"unknown kind",
			ast.ConditionalMessage{Condition: "moon_phase"},
			"unknown condition 'moon_phase'",
		},
		{
			"unknown operator",
			ast.ConditionalMessage{Condition: ast.ConditionContains, VariableNames: []string{"a"}, LogicOperator: "XOR"},
			"unknown logic operator 'XOR'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graphOf(message("m", func(d *ast.MessageData) {
				d.EnableConditionalMessages = true
				d.ConditionalMessages = []ast.ConditionalMessage{tt.cond}
			}))

			err := (&ConditionValidator{}).Validate(g)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "node 'm'.conditionalMessages[0]: "+tt.wantErr)
		})
	}
}

// ============================================================================
// Composite
// ============================================================================

func TestCompositeValidator(t *testing.T) {
	g := graphOf(message("a", nil), message("a", func(d *ast.MessageData) {
		d.EnableAutoTransition = true
		d.AutoTransitionTo = "ghost"
	}))

	t.Run("collects every failure", func(t *testing.T) {
		v := NewCompositeValidator(&DuplicateIDValidator{}, &TargetValidator{}, &ConnectionValidator{})
		err := v.Validate(g)
		require.Error(t, err)

		var verrs *ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs.Errors, 2)
		assert.True(t, verrs.HasErrors())
	})

	t.Run("single failure is returned as is", func(t *testing.T) {
		v := NewCompositeValidator(&DuplicateIDValidator{}, &ConnectionValidator{})
		err := v.Validate(g)
		require.Error(t, err)

		var verrs *ValidationErrors
		assert.False(t, errors.As(err, &verrs))
		assert.True(t, errors.Is(err, ErrInvalidGraph))
	})

	t.Run("no validators", func(t *testing.T) {
		assert.NoError(t, NewCompositeValidator().Validate(g))
	})
}

func TestCombineErrors(t *testing.T) {
	assert.NoError(t, CombineErrors())
	assert.NoError(t, CombineErrors(nil, nil))

	one := errors.New("one")
	assert.Equal(t, one, CombineErrors(nil, one))

	err := CombineErrors(one, errors.New("two"))
	assert.Contains(t, err.Error(), "2 validation errors")
	assert.True(t, errors.Is(err, one))
}

func TestValidationErrors_Empty(t *testing.T) {
	e := &ValidationErrors{}
	assert.Equal(t, "no errors", e.Error())
	assert.False(t, e.HasErrors())
	assert.Nil(t, e.Unwrap())
}
