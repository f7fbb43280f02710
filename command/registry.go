package command

import (
	"strings"

	"github.com/himakhaitan/respkv/pkg/metrics"
	"github.com/himakhaitan/respkv/resp"
	"go.uber.org/zap"
)

// Registry resolves command names, case-insensitively, to handlers.
type Registry struct {
	handlers map[string]Handler
	metrics  *metrics.Metrics
}

// NewRegistry creates a registry holding every built-in command. m may be nil.
func NewRegistry(m *metrics.Metrics) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		metrics:  m,
	}
	for _, h := range builtins() {
		r.Register(h)
	}
	return r
}

func builtins() []Handler {
	return []Handler{
		Ping{},
		Echo{},
		Get{},
		MGet{},
		Set{},
		Del{},
		Keys{},
		Info{},
	}
}

// Register adds h, replacing any handler with the same name.
func (r *Registry) Register(h Handler) {
	r.handlers[strings.ToUpper(h.Name())] = h
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[strings.ToUpper(name)]
	return h, ok
}

// Names returns the registered command names in unspecified order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Dispatch executes one command frame and returns the reply. Frames that are
// not a non-empty array led by a bulk string, and unknown commands, produce
// error replies; nothing here ends the connection.
func (r *Registry) Dispatch(frame resp.Value, ctx *Context) resp.Value {
	if frame.Type != resp.TypeArray || frame.Null || len(frame.Elems) == 0 {
		return errorReply("invalid command format")
	}
	name, ok := stringArg(frame.Elems[0])
	if !ok {
		return errorReply("invalid command format")
	}

	h, ok := r.Lookup(name)
	if !ok {
		r.observe("UNKNOWN", metrics.StatusUnknown)
		if ctx.Logger != nil {
			ctx.Logger.Debug("unknown command", zap.String("command", name))
		}
		return errorReply("unknown command '%s'", name)
	}

	reply := h.Execute(frame.Elems[1:], ctx)

	status := metrics.StatusOK
	if reply.IsError() {
		status = metrics.StatusError
	}
	r.observe(strings.ToUpper(h.Name()), status)
	return reply
}

func (r *Registry) observe(name, status string) {
	if r.metrics == nil {
		return
	}
	r.metrics.ObserveCommand(name, status)
}
