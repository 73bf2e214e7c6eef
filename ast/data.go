package ast

// Data is the kind specific payload of a node. The set of implementations is
// closed: every kind has exactly one Visit method on Visitor, so a compiler
// implementing Visitor stops building when a kind is added without a
// synthesizer.
type Data interface {
	Accept(n *Node, v Visitor) error
	isNodeData()
}

// Visitor dispatches on the concrete node payload.
type Visitor interface {
	VisitStart(n *Node, d *StartData) error
	VisitCommand(n *Node, d *CommandData) error
	VisitMessage(n *Node, d *MessageData) error
	VisitMedia(n *Node, d *MediaData) error
	VisitLocation(n *Node, d *LocationData) error
	VisitContact(n *Node, d *ContactData) error

	VisitPinMessage(n *Node, d *PinMessageData) error
	VisitUnpinMessage(n *Node, d *UnpinMessageData) error
	VisitDeleteMessage(n *Node, d *DeleteMessageData) error

	VisitBanUser(n *Node, d *BanUserData) error
	VisitUnbanUser(n *Node, d *UnbanUserData) error
	VisitMuteUser(n *Node, d *MuteUserData) error
	VisitUnmuteUser(n *Node, d *UnmuteUserData) error
	VisitKickUser(n *Node, d *KickUserData) error

	VisitPromoteUser(n *Node, d *PromoteUserData) error
	VisitDemoteUser(n *Node, d *DemoteUserData) error
	VisitAdminRights(n *Node, d *AdminRightsData) error

	VisitInput(n *Node, d *InputData) error
	VisitConditional(n *Node, d *ConditionalData) error
	VisitMultiSelect(n *Node, d *MultiSelectData) error
}

// ============================================================================
// Shared payload pieces
// ============================================================================

// Keyboard is the markup attached to a message.
type Keyboard struct {
	KeyboardType    KeyboardType `json:"keyboardType,omitempty"`
	Buttons         []Button     `json:"buttons,omitempty"`
	OneTimeKeyboard bool         `json:"oneTimeKeyboard,omitempty"`
	ResizeKeyboard  *bool        `json:"resizeKeyboard,omitempty"`
}

// AutoTransition moves on to another node right after the message is shown.
type AutoTransition struct {
	EnableAutoTransition bool   `json:"enableAutoTransition,omitempty"`
	AutoTransitionTo     string `json:"autoTransitionTo,omitempty"`
}

// Conditions attaches a conditional message chain to a node.
type Conditions struct {
	EnableConditionalMessages bool                 `json:"enableConditionalMessages,omitempty"`
	ConditionalMessages       []ConditionalMessage `json:"conditionalMessages,omitempty"`
}

// MessageBase is shared by every kind that shows a message.
type MessageBase struct {
	MessageText   string    `json:"messageText,omitempty"`
	FormatMode    string    `json:"formatMode,omitempty"`
	Synonyms      *[]string `json:"synonyms,omitempty"`
	AttachedMedia []string  `json:"attachedMedia,omitempty"`
	Keyboard
	AutoTransition
	Conditions
}

// ActionBase is shared by moderation and content management kinds.
type ActionBase struct {
	MessageText   string    `json:"messageText,omitempty"`
	Synonyms      *[]string `json:"synonyms,omitempty"`
	GroupOnly     *bool     `json:"groupOnly,omitempty"`
	TargetGroupID string    `json:"targetGroupId,omitempty"`
}

// CommandBase is shared by start and command kinds.
type CommandBase struct {
	Command       string `json:"command,omitempty"`
	Description   string `json:"description,omitempty"`
	ShowInMenu    bool   `json:"showInMenu,omitempty"`
	AdminOnly     bool   `json:"adminOnly,omitempty"`
	IsPrivateOnly bool   `json:"isPrivateOnly,omitempty"`
}

// MessageTarget addresses the message a content action works on.
type MessageTarget struct {
	MessageIDSource       AddressingMode `json:"messageIdSource,omitempty"`
	TargetMessageID       int64          `json:"targetMessageId,omitempty"`
	TargetMessageVariable string         `json:"targetMessageVariable,omitempty"`
}

// UserTarget addresses the user a moderation action works on.
type UserTarget struct {
	UserIDSource       AddressingMode `json:"userIdSource,omitempty"`
	TargetUserID       int64          `json:"targetUserId,omitempty"`
	TargetUserVariable string         `json:"targetUserVariable,omitempty"`
}

// ChatPermissions are the restrictions applied by mute and lifted by unmute.
// Nil flags take the kind default.
type ChatPermissions struct {
	CanSendMessages       *bool `json:"canSendMessages,omitempty"`
	CanSendAudios         *bool `json:"canSendAudios,omitempty"`
	CanSendDocuments      *bool `json:"canSendDocuments,omitempty"`
	CanSendPhotos         *bool `json:"canSendPhotos,omitempty"`
	CanSendVideos         *bool `json:"canSendVideos,omitempty"`
	CanSendPolls          *bool `json:"canSendPolls,omitempty"`
	CanSendOtherMessages  *bool `json:"canSendOtherMessages,omitempty"`
	CanAddWebPagePreviews *bool `json:"canAddWebPagePreviews,omitempty"`
	CanChangeInfo         *bool `json:"canChangeInfo,omitempty"`
	CanInviteUsers        *bool `json:"canInviteUsers,omitempty"`
	CanPinMessages        *bool `json:"canPinMessages,omitempty"`
}

// AdminRights are administrator flags. Nil flags take the kind default.
type AdminRights struct {
	IsAnonymous         *bool `json:"isAnonymous,omitempty"`
	CanManageChat       *bool `json:"canManageChat,omitempty"`
	CanDeleteMessages   *bool `json:"canDeleteMessages,omitempty"`
	CanManageVideoChats *bool `json:"canManageVideoChats,omitempty"`
	CanRestrictMembers  *bool `json:"canRestrictMembers,omitempty"`
	CanPromoteMembers   *bool `json:"canPromoteMembers,omitempty"`
	CanChangeInfo       *bool `json:"canChangeInfo,omitempty"`
	CanInviteUsers      *bool `json:"canInviteUsers,omitempty"`
	CanPinMessages      *bool `json:"canPinMessages,omitempty"`
	CanManageTopics     *bool `json:"canManageTopics,omitempty"`
}

// SynonymList returns the raw synonym list: nil when absent, possibly empty
// when given explicitly.
func (b *MessageBase) SynonymList() *[]string { return b.Synonyms }

// SynonymList returns the raw synonym list.
func (b *ActionBase) SynonymList() *[]string { return b.Synonyms }

// Transition returns the auto-transition settings.
func (b *MessageBase) Transition() AutoTransition { return b.AutoTransition }

// Message returns b itself, for payloads that embed it.
func (b *MessageBase) Message() *MessageBase { return b }

// Messaging is implemented by payloads that send a message of their own.
type Messaging interface {
	Message() *MessageBase
}

// Synonymous is implemented by payloads that accept text synonyms.
type Synonymous interface {
	SynonymList() *[]string
}

// Transitioning is implemented by payloads that can auto-transition.
type Transitioning interface {
	Transition() AutoTransition
}

// ============================================================================
// Messages and commands
// ============================================================================

// StartData is the /start entry point.
type StartData struct {
	MessageBase
	CommandBase
}

// CommandData is a slash command.
type CommandData struct {
	MessageBase
	CommandBase
}

// MessageData is a plain message.
type MessageData struct {
	MessageBase
}

// MediaData sends a photo, video, audio or document. Kind is set from the
// node type when the node is decoded.
type MediaData struct {
	MessageBase
	MediaURL      string   `json:"mediaUrl,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	VideoURL      string   `json:"videoUrl,omitempty"`
	AudioURL      string   `json:"audioUrl,omitempty"`
	DocumentURL   string   `json:"documentUrl,omitempty"`
	DocumentName  string   `json:"documentName,omitempty"`
	FileID        string   `json:"fileId,omitempty"`
	MediaVariable string   `json:"mediaVariable,omitempty"`
	Kind          NodeType `json:"-"`
}

// Source returns the first configured URL, in kind specific order.
func (d *MediaData) Source() string {
	var specific string
	switch d.Kind {
	case NodePhoto:
		specific = d.ImageURL
	case NodeVideo:
		specific = d.VideoURL
	case NodeAudio:
		specific = d.AudioURL
	case NodeDocument:
		specific = d.DocumentURL
	}
	if specific != "" {
		return specific
	}
	return d.MediaURL
}

// LocationData sends a map point.
type LocationData struct {
	MessageBase
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Title     string  `json:"title,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// ContactData sends a phone contact.
type ContactData struct {
	MessageBase
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName,omitempty"`
	UserID      int64  `json:"userId,omitempty"`
}

// ============================================================================
// Content management
// ============================================================================

// PinMessageData pins a message.
type PinMessageData struct {
	ActionBase
	MessageTarget
	DisableNotification bool `json:"disableNotification,omitempty"`
}

// UnpinMessageData unpins one message or all pinned messages.
type UnpinMessageData struct {
	ActionBase
	MessageTarget
	UnpinAll bool `json:"unpinAll,omitempty"`
}

// DeleteMessageData deletes a message.
type DeleteMessageData struct {
	ActionBase
	MessageTarget
}

// ============================================================================
// User moderation
// ============================================================================

// BanUserData bans a user, permanently unless UntilDate is set.
type BanUserData struct {
	ActionBase
	UserTarget
	Reason         string `json:"reason,omitempty"`
	UntilDate      int64  `json:"untilDate,omitempty"`
	RevokeMessages bool   `json:"revokeMessages,omitempty"`
}

// UnbanUserData lifts a ban.
type UnbanUserData struct {
	ActionBase
	UserTarget
	OnlyIfBanned *bool `json:"onlyIfBanned,omitempty"`
}

// MuteUserData restricts a user for Duration seconds.
type MuteUserData struct {
	ActionBase
	UserTarget
	ChatPermissions
	Reason   string `json:"reason,omitempty"`
	Duration int64  `json:"duration,omitempty"`
}

// UnmuteUserData restores a user's permissions.
type UnmuteUserData struct {
	ActionBase
	UserTarget
	ChatPermissions
}

// KickUserData removes a user without a lasting ban.
type KickUserData struct {
	ActionBase
	UserTarget
	Reason string `json:"reason,omitempty"`
}

// ============================================================================
// Administrator rights
// ============================================================================

// PromoteUserData makes a user an administrator.
type PromoteUserData struct {
	ActionBase
	UserTarget
	AdminRights
	CustomTitle string `json:"customTitle,omitempty"`
}

// DemoteUserData removes administrator rights.
type DemoteUserData struct {
	ActionBase
	UserTarget
	AdminRights
}

// AdminRightsData applies an explicit rights set.
type AdminRightsData struct {
	ActionBase
	UserTarget
	AdminRights
}

// ============================================================================
// Flow
// ============================================================================

// ResponseOption is one predefined answer of an input node.
type ResponseOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value,omitempty"`
}

// InputData asks a question and stores the answer in a user variable.
type InputData struct {
	MessageBase
	InputPrompt         string           `json:"inputPrompt,omitempty"`
	InputType           InputType        `json:"inputType,omitempty"`
	InputVariable       string           `json:"inputVariable,omitempty"`
	MinLength           int              `json:"minLength,omitempty"`
	MaxLength           int              `json:"maxLength,omitempty"`
	InputValidation     string           `json:"inputValidation,omitempty"`
	InputRetryMessage   string           `json:"inputRetryMessage,omitempty"`
	MaxRetries          int              `json:"maxRetries,omitempty"`
	ResponseType        ResponseType     `json:"responseType,omitempty"`
	ResponseOptions     []ResponseOption `json:"responseOptions,omitempty"`
	SaveToDatabase      bool             `json:"saveToDatabase,omitempty"`
	InputSuccessMessage string           `json:"inputSuccessMessage,omitempty"`
	InputTargetNodeID   string           `json:"inputTargetNodeId,omitempty"`
}

// ConditionalData shows the first matching conditional message. MessageText
// is the fallback; an empty text declares no fallback.
type ConditionalData struct {
	MessageBase
}

// MultiSelectData lets the user toggle several options before continuing.
// Options are the keyboard buttons with the selection action.
type MultiSelectData struct {
	MessageBase
	MultiSelectVariable  string `json:"multiSelectVariable,omitempty"`
	ContinueButtonText   string `json:"continueButtonText,omitempty"`
	ContinueButtonTarget string `json:"continueButtonTarget,omitempty"`
	MinSelections        int    `json:"minSelections,omitempty"`
}

// ============================================================================
// Dispatch
// ============================================================================

func (d *StartData) Accept(n *Node, v Visitor) error         { return v.VisitStart(n, d) }
func (d *CommandData) Accept(n *Node, v Visitor) error       { return v.VisitCommand(n, d) }
func (d *MessageData) Accept(n *Node, v Visitor) error       { return v.VisitMessage(n, d) }
func (d *MediaData) Accept(n *Node, v Visitor) error         { return v.VisitMedia(n, d) }
func (d *LocationData) Accept(n *Node, v Visitor) error      { return v.VisitLocation(n, d) }
func (d *ContactData) Accept(n *Node, v Visitor) error       { return v.VisitContact(n, d) }
func (d *PinMessageData) Accept(n *Node, v Visitor) error    { return v.VisitPinMessage(n, d) }
func (d *UnpinMessageData) Accept(n *Node, v Visitor) error  { return v.VisitUnpinMessage(n, d) }
func (d *DeleteMessageData) Accept(n *Node, v Visitor) error { return v.VisitDeleteMessage(n, d) }
func (d *BanUserData) Accept(n *Node, v Visitor) error       { return v.VisitBanUser(n, d) }
func (d *UnbanUserData) Accept(n *Node, v Visitor) error     { return v.VisitUnbanUser(n, d) }
func (d *MuteUserData) Accept(n *Node, v Visitor) error      { return v.VisitMuteUser(n, d) }
func (d *UnmuteUserData) Accept(n *Node, v Visitor) error    { return v.VisitUnmuteUser(n, d) }
func (d *KickUserData) Accept(n *Node, v Visitor) error      { return v.VisitKickUser(n, d) }
func (d *PromoteUserData) Accept(n *Node, v Visitor) error   { return v.VisitPromoteUser(n, d) }
func (d *DemoteUserData) Accept(n *Node, v Visitor) error    { return v.VisitDemoteUser(n, d) }
func (d *AdminRightsData) Accept(n *Node, v Visitor) error   { return v.VisitAdminRights(n, d) }
func (d *InputData) Accept(n *Node, v Visitor) error         { return v.VisitInput(n, d) }
func (d *ConditionalData) Accept(n *Node, v Visitor) error   { return v.VisitConditional(n, d) }
func (d *MultiSelectData) Accept(n *Node, v Visitor) error   { return v.VisitMultiSelect(n, d) }

func (*StartData) isNodeData()         {}
func (*CommandData) isNodeData()       {}
func (*MessageData) isNodeData()       {}
func (*MediaData) isNodeData()         {}
func (*LocationData) isNodeData()      {}
func (*ContactData) isNodeData()       {}
func (*PinMessageData) isNodeData()    {}
func (*UnpinMessageData) isNodeData()  {}
func (*DeleteMessageData) isNodeData() {}
func (*BanUserData) isNodeData()       {}
func (*UnbanUserData) isNodeData()     {}
func (*MuteUserData) isNodeData()      {}
func (*UnmuteUserData) isNodeData()    {}
func (*KickUserData) isNodeData()      {}
func (*PromoteUserData) isNodeData()   {}
func (*DemoteUserData) isNodeData()    {}
func (*AdminRightsData) isNodeData()   {}
func (*InputData) isNodeData()         {}
func (*ConditionalData) isNodeData()   {}
func (*MultiSelectData) isNodeData()   {}
