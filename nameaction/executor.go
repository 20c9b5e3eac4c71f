package nameaction

import (
	"fmt"

	"github.com/ScottyPoi/stellar-name-service/log"
)

// Handler is implemented by the registry, resolver and registrar packages.
type Handler interface {
	CanHandle(kind ActionKind) bool
	Handle(ctx *Context, act *Action) error
}

// Registry holds registered handlers.
type Registry struct{ handlers []Handler }

// DefaultRegistry is the process-wide handler registry. Contract packages
// register with it from their init functions.
var DefaultRegistry = &Registry{}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) { r.handlers = append(r.handlers, h) }

// Execute decodes data, dispatches to a registered handler and reverts all
// state changes made by the handler if it fails. Contract failure is a
// normal outcome, not a corrupted context: after a non-nil return the
// state is exactly as it was before the call.
func Execute(ctx *Context, data []byte) error {
	act, err := Decode(data)
	if err != nil {
		return err
	}
	snap := ctx.State.Snapshot()
	for _, h := range DefaultRegistry.handlers {
		if !h.CanHandle(act.Action) {
			continue
		}
		if err := h.Handle(ctx, act); err != nil {
			ctx.State.RevertToSnapshot(snap)
			log.Debug("Name action reverted", "action", act.Action, "from", ctx.From, "err", err)
			return err
		}
		log.Debug("Name action applied", "action", act.Action, "from", ctx.From)
		return nil
	}
	ctx.State.RevertToSnapshot(snap)
	return fmt.Errorf("unknown name action: %q", act.Action)
}
