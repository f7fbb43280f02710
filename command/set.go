package command

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/himakhaitan/respkv/resp"
)

// Set stores a value, optionally with a PX (milliseconds) or EX (seconds)
// time to live. PX wins when both are given.
type Set struct{}

func (Set) Name() string { return "SET" }

func (Set) Execute(args []resp.Value, ctx *Context) resp.Value {
	if len(args) < 2 {
		return errorReply("SET requires at least key and value arguments")
	}
	key, keyOK := stringArg(args[0])
	value, valueOK := stringArg(args[1])
	if !keyOK || !valueOK {
		return errorReply("invalid SET key")
	}

	ttl, errReply, ok := parseExpiry(args[2:])
	if !ok {
		return errReply
	}

	ctx.DB.Set(key, value, ttl)
	return resp.SimpleString("OK")
}

// parseExpiry reads PX/EX flag pairs. A zero duration means no expiry.
func parseExpiry(args []resp.Value) (time.Duration, resp.Value, bool) {
	if len(args)%2 != 0 {
		return 0, errorReply("syntax error"), false
	}

	var px, ex int64
	var havePX, haveEX bool
	for i := 0; i < len(args); i += 2 {
		flag, flagOK := stringArg(args[i])
		raw, rawOK := stringArg(args[i+1])
		if !flagOK || !rawOK {
			return 0, errorReply("syntax error"), false
		}

		flag = strings.ToUpper(flag)
		if flag != "PX" && flag != "EX" {
			return 0, errorReply("syntax error"), false
		}

		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, errorReply("value is not an integer or out of range"), false
		}
		if n <= 0 {
			return 0, errorReply("invalid expire time in 'set' command"), false
		}

		if flag == "PX" {
			px, havePX = n, true
		} else {
			ex, haveEX = n, true
		}
	}

	switch {
	case havePX:
		if px > math.MaxInt64/int64(time.Millisecond) {
			return 0, errorReply("invalid expire time in 'set' command"), false
		}
		return time.Duration(px) * time.Millisecond, resp.Value{}, true
	case haveEX:
		if ex > math.MaxInt64/int64(time.Second) {
			return 0, errorReply("invalid expire time in 'set' command"), false
		}
		return time.Duration(ex) * time.Second, resp.Value{}, true
	default:
		return 0, resp.Value{}, true
	}
}
