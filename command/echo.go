package command

import "github.com/himakhaitan/respkv/resp"

// Echo returns its single argument.
type Echo struct{}

func (Echo) Name() string { return "ECHO" }

func (Echo) Execute(args []resp.Value, _ *Context) resp.Value {
	if len(args) != 1 {
		return errorReply("ECHO takes exactly one argument")
	}
	message, ok := stringArg(args[0])
	if !ok {
		return errorReply("invalid ECHO argument")
	}
	return resp.Bulk(message)
}
