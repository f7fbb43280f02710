package command

import (
	"github.com/himakhaitan/respkv/engine"
	"github.com/himakhaitan/respkv/resp"
	"github.com/samber/lo"
)

// Get returns the value of one key, or null.
type Get struct{}

func (Get) Name() string { return "GET" }

func (Get) Execute(args []resp.Value, ctx *Context) resp.Value {
	if len(args) != 1 {
		return errorReply("GET takes exactly one argument")
	}
	key, ok := stringArg(args[0])
	if !ok {
		return errorReply("invalid GET key")
	}

	value, found := ctx.DB.Get(key)
	if !found {
		return resp.NullBulk()
	}
	return resp.Bulk(value)
}

// MGet returns the values of several keys, null for each missing one.
type MGet struct{}

func (MGet) Name() string { return "MGET" }

func (MGet) Execute(args []resp.Value, ctx *Context) resp.Value {
	if len(args) == 0 {
		return wrongArity("mget")
	}
	keys, ok := stringArgs(args)
	if !ok {
		return errorReply("invalid MGET key")
	}

	return resp.Array(lo.Map(ctx.DB.MGet(keys), func(l engine.Lookup, _ int) resp.Value {
		if !l.Found {
			return resp.NullBulk()
		}
		return resp.Bulk(l.Value)
	})...)
}
