package command

import "github.com/himakhaitan/respkv/resp"

// Del removes keys and reports how many existed.
type Del struct{}

func (Del) Name() string { return "DEL" }

func (Del) Execute(args []resp.Value, ctx *Context) resp.Value {
	if len(args) == 0 {
		return errorReply("DEL requires at least one argument")
	}
	keys, ok := stringArgs(args)
	if !ok {
		return errorReply("invalid DEL key")
	}
	return resp.Integer(int64(ctx.DB.Delete(keys...)))
}
