// Package ast defines the graph IR the editor produces: typed nodes,
// connections, buttons and conditional messages. It holds data only; the
// compiler in package gen gives it behavior.
package ast

// Graph is one editor sheet: the nodes and the edges between them.
type Graph struct {
	Version     string       `json:"version,omitempty"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// Node is one typed unit of bot behavior. Data holds the kind specific
// payload and is decoded according to Type.
type Node struct {
	ID       string    `json:"id"`
	Type     NodeType  `json:"type"`
	Position *Position `json:"position,omitempty"`
	Data     Data      `json:"data"`
}

// Position is the editor canvas position. The compiler ignores it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Connection is a directed edge between two nodes.
type Connection struct {
	ID              string         `json:"id"`
	Source          string         `json:"source"`
	Target          string         `json:"target"`
	SourceHandle    string         `json:"sourceHandle,omitempty"`
	TargetHandle    string         `json:"targetHandle,omitempty"`
	CrossSheet      *CrossSheetRef `json:"crossSheet,omitempty"`
	IsAutoGenerated bool           `json:"isAutoGenerated,omitempty"`
}

// CrossSheetRef marks an edge that leaves the sheet it was drawn on.
type CrossSheetRef struct {
	SourceSheetID string `json:"sourceSheetId"`
	TargetSheetID string `json:"targetSheetId"`
}

// NodeType is the discriminator of Node.Data.
type NodeType string

const (
	// Messages and commands
	NodeStart    NodeType = "start"
	NodeCommand  NodeType = "command"
	NodeMessage  NodeType = "message"
	NodePhoto    NodeType = "photo"
	NodeVideo    NodeType = "video"
	NodeAudio    NodeType = "audio"
	NodeDocument NodeType = "document"
	NodeLocation NodeType = "location"
	NodeContact  NodeType = "contact"

	// Content management
	NodePinMessage    NodeType = "pin_message"
	NodeUnpinMessage  NodeType = "unpin_message"
	NodeDeleteMessage NodeType = "delete_message"

	// User moderation
	NodeBanUser    NodeType = "ban_user"
	NodeUnbanUser  NodeType = "unban_user"
	NodeMuteUser   NodeType = "mute_user"
	NodeUnmuteUser NodeType = "unmute_user"
	NodeKickUser   NodeType = "kick_user"

	// Administrator rights
	NodePromoteUser NodeType = "promote_user"
	NodeDemoteUser  NodeType = "demote_user"
	NodeAdminRights NodeType = "admin_rights"

	// Flow
	NodeInput       NodeType = "input"
	NodeConditional NodeType = "conditional"
	NodeMultiSelect NodeType = "multi_select"
)

// ButtonAction is what happens when a button is pressed.
type ButtonAction string

const (
	ActionGoto      ButtonAction = "goto"
	ActionCommand   ButtonAction = "command"
	ActionURL       ButtonAction = "url"
	ActionContact   ButtonAction = "contact"
	ActionLocation  ButtonAction = "location"
	ActionSelection ButtonAction = "selection"
)

// Button is one keyboard button.
type Button struct {
	ID                 string       `json:"id"`
	Text               string       `json:"text"`
	Action             ButtonAction `json:"action"`
	Target             string       `json:"target,omitempty"`
	URL                string       `json:"url,omitempty"`
	SkipDataCollection bool         `json:"skipDataCollection,omitempty"`
	HideAfterClick     bool         `json:"hideAfterClick,omitempty"`
}

// KeyboardType selects the markup a message carries.
type KeyboardType string

const (
	KeyboardNone   KeyboardType = "none"
	KeyboardInline KeyboardType = "inline"
	KeyboardReply  KeyboardType = "reply"
)

// ConditionKind is the test a conditional message performs on user state.
type ConditionKind string

const (
	ConditionExists    ConditionKind = "user_data_exists"
	ConditionEquals    ConditionKind = "user_data_equals"
	ConditionNotExists ConditionKind = "user_data_not_exists"
	ConditionContains  ConditionKind = "user_data_contains"
	ConditionFirstTime ConditionKind = "first_time"
	ConditionReturning ConditionKind = "returning_user"
)

// LogicOperator combines the per-variable tests of one condition.
type LogicOperator string

const (
	LogicAnd LogicOperator = "AND"
	LogicOr  LogicOperator = "OR"
)

// ConditionalMessage is one branch of a priority ordered decision chain.
type ConditionalMessage struct {
	ID                 string        `json:"id"`
	Condition          ConditionKind `json:"condition"`
	VariableNames      []string      `json:"variableNames,omitempty"`
	LogicOperator      LogicOperator `json:"logicOperator,omitempty"`
	ExpectedValue      string        `json:"expectedValue,omitempty"`
	MessageText        string        `json:"messageText"`
	KeyboardType       KeyboardType  `json:"keyboardType,omitempty"`
	Buttons            []Button      `json:"buttons,omitempty"`
	Priority           int           `json:"priority,omitempty"`
	WaitForTextInput   bool          `json:"waitForTextInput,omitempty"`
	TextInputVariable  string        `json:"textInputVariable,omitempty"`
	NextNodeAfterInput string        `json:"nextNodeAfterInput,omitempty"`
}

// AddressingMode tells a moderation node where its target comes from when
// the incoming message neither replies to anything nor names an id.
type AddressingMode string

const (
	AddressReply    AddressingMode = "reply"
	AddressManual   AddressingMode = "manual"
	AddressVariable AddressingMode = "variable"
)

// InputType is the expected shape of a collected answer.
type InputType string

const (
	InputText   InputType = "text"
	InputNumber InputType = "number"
	InputEmail  InputType = "email"
	InputPhone  InputType = "phone"
	InputAny    InputType = "any"
)

// ResponseType selects how the predefined answers of an input node are
// offered.
type ResponseType string

const (
	// ResponseButtons renders the options as an inline keyboard. An empty
	// response type means the same.
	ResponseButtons ResponseType = "buttons"
	// ResponseText expects a typed reply; an option's text maps to its value.
	ResponseText ResponseType = "text"
)

// MediaAsset is a stored file referenced by a media variable name.
type MediaAsset struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	URL      string `json:"url,omitempty"`
	FileID   string `json:"fileId,omitempty"`
	FilePath string `json:"filePath,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// Group is a chat the bot is configured to manage.
type Group struct {
	ID          string `json:"id" mapstructure:"id" toml:"id"`
	Name        string `json:"name" mapstructure:"name" toml:"name"`
	ChatID      string `json:"chatId" mapstructure:"chat_id" toml:"chat_id"`
	Description string `json:"description,omitempty" mapstructure:"description" toml:"description,omitempty"`
	IsAdmin     bool   `json:"isAdmin,omitempty" mapstructure:"is_admin" toml:"is_admin,omitempty"`
}

// Synonyms builds an explicit synonym list. An explicit empty list
// suppresses synonym handlers, unlike a nil list which falls back to the
// kind's defaults.
func Synonyms(items ...string) *[]string {
	if items == nil {
		items = []string{}
	}
	return &items
}

// Bool returns a pointer to b, for optional flags.
func Bool(b bool) *bool {
	return &b
}
