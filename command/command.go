// Package command maps command frames to handlers that operate on the
// shared state.
package command

import (
	"fmt"

	"github.com/himakhaitan/respkv/engine"
	"github.com/himakhaitan/respkv/resp"
	"github.com/himakhaitan/respkv/types"
	"go.uber.org/zap"
)

// Context is what a handler may touch while executing.
type Context struct {
	DB     *engine.DB
	Role   types.Role
	Logger *zap.Logger
}

// Handler executes one command. args excludes the command name. The returned
// value is the reply written to the client.
type Handler interface {
	Name() string
	Execute(args []resp.Value, ctx *Context) resp.Value
}

func errorReply(format string, args ...any) resp.Value {
	return resp.Error("ERR " + fmt.Sprintf(format, args...))
}

func wrongArity(name string) resp.Value {
	return errorReply("wrong number of arguments for '%s' command", name)
}

// stringArg returns the payload of a present bulk string argument.
func stringArg(arg resp.Value) (string, bool) {
	return arg.BulkString()
}

// stringArgs converts every argument, failing on the first that is not a
// present bulk string.
func stringArgs(args []resp.Value) ([]string, bool) {
	out := make([]string, len(args))
	for i, arg := range args {
		s, ok := stringArg(arg)
		if !ok {
			return nil, false
		}
		out[i] = s
	}
	return out, true
}
