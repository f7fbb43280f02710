package command

import "github.com/himakhaitan/respkv/resp"

// Ping answers PONG.
type Ping struct{}

func (Ping) Name() string { return "PING" }

func (Ping) Execute(args []resp.Value, _ *Context) resp.Value {
	if len(args) != 0 {
		return errorReply("PING takes no arguments")
	}
	return resp.SimpleString("PONG")
}
