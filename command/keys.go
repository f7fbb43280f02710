package command

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/himakhaitan/respkv/resp"
	"github.com/samber/lo"
)

// Keys lists the keys matching a glob pattern (*, ?, [...]).
type Keys struct{}

func (Keys) Name() string { return "KEYS" }

func (Keys) Execute(args []resp.Value, ctx *Context) resp.Value {
	if len(args) != 1 {
		return errorReply("KEYS requires exactly one argument")
	}
	pattern, ok := stringArg(args[0])
	if !ok {
		return errorReply("invalid pattern format")
	}

	// No separators: '*' matches across any character.
	g, err := glob.Compile(literalBraces(pattern))
	if err != nil {
		return errorReply("invalid pattern")
	}

	return resp.Array(lo.Map(ctx.DB.Keys(g.Match), func(key string, _ int) resp.Value {
		return resp.Bulk(key)
	})...)
}

// literalBraces escapes '{', '}' and '\' outside bracket classes so they
// match themselves; only '*', '?' and '[...]' are special in KEYS patterns.
func literalBraces(pattern string) string {
	if !strings.ContainsAny(pattern, "{}\\") {
		return pattern
	}

	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		switch {
		case inClass:
			if ch == ']' {
				inClass = false
			}
		case ch == '[':
			inClass = true
		case ch == '{', ch == '}', ch == '\\':
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	return b.String()
}
