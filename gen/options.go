package gen

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/mxkacsa/botgen/ast"
)

// TokenPlaceholder is the credential literal every generated program carries
// exactly once. Callers substitute the real token before running it.
const TokenPlaceholder = "YOUR_BOT_TOKEN_HERE"

var (
	// ErrInvalidNode is returned for a node the compiler cannot synthesize:
	// empty id or missing payload.
	ErrInvalidNode = errors.New("invalid node")

	// ErrUnknownTarget is returned in strict mode when a transition, button
	// or input names a node id that is not in the graph.
	ErrUnknownTarget = errors.New("unknown transition target")
)

// Options control one generation run.
type Options struct {
	BotName             string
	Groups              []ast.Group
	UserDatabaseEnabled bool
	// ProjectID is emitted as PROJECT_ID; nil emits None.
	ProjectID     *int64
	EnableLogging bool

	// TemplateOverrides replaces built-in user facing texts by message key,
	// e.g. "pin_message.success" or "error.not_found". Texts set on a node
	// win over overrides.
	TemplateOverrides map[string]string

	// Media maps media variable names to stored assets.
	Media map[string]ast.MediaAsset

	// StrictTargets turns dangling transition targets into ErrUnknownTarget
	// instead of a runtime warning in the generated program.
	StrictTargets bool

	// Logger receives debug output about the run. It never affects the
	// generated text.
	Logger *zap.Logger
}

// PreviewOptions are the placeholder options of the template preview path.
func PreviewOptions() Options {
	return Options{BotName: "Preview Bot"}
}
