package command

import (
	"strconv"
	"strings"

	"github.com/himakhaitan/respkv/resp"
)

// Info reports the replication section.
type Info struct{}

func (Info) Name() string { return "INFO" }

func (Info) Execute(args []resp.Value, ctx *Context) resp.Value {
	if len(args) > 1 {
		return errorReply("INFO takes at most one argument")
	}
	if len(args) == 1 {
		if _, ok := stringArg(args[0]); !ok {
			return errorReply("invalid INFO section")
		}
	}

	var b strings.Builder
	b.WriteString("# Replication\n")
	b.WriteString("role:" + string(ctx.Role.Kind) + "\n")
	if ctx.Role.IsMaster() {
		b.WriteString("master_replid:" + ctx.Role.ReplID + "\n")
		b.WriteString("master_repl_offset:" + strconv.FormatInt(ctx.Role.ReplOffset, 10) + "\n")
	}
	return resp.Bulk(b.String())
}
