// Package output prints CLI status messages and RESP replies in color.
package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/himakhaitan/respkv/resp"
)

// ANSI color codes
const (
	reset = "\033[0m"
	bold  = "\033[1m"

	red    = "\033[31m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	green  = "\033[32m"
	grey   = "\033[90m"
)

// core printer
func printMessage(title, color, message string) {
	fmt.Fprintf(os.Stdout, "%s%s[%s]%s %s%s%s\n",
		color, bold, title, reset, color, message, reset,
	)
}

// Public functions

func Info(msg string) {
	printMessage("INFO", blue, msg)
}

func Warn(msg string) {
	printMessage("WARN", yellow, msg)
}

func Error(msg string) {
	printMessage("ERROR", red, msg)
}

func Success(msg string) {
	printMessage("SUCCESS", green, msg)
}

func Dim(msg string) {
	fmt.Fprintf(os.Stdout, "%s%s%s\n", grey, msg, reset)
}

// Nil reports a missing value.
func Nil() {
	printMessage("NIL", yellow, "(nil)")
}

// Reply prints a server reply in the same colored form as the other
// printers. Aggregates are listed one element per line.
func Reply(v resp.Value) {
	switch {
	case v.Type == resp.TypeArray && v.Null:
		Nil()
	case v.Type == resp.TypeArray:
		if len(v.Elems) == 0 {
			Dim("(empty array)")
			return
		}
		for i, elem := range v.Elems {
			Info(fmt.Sprintf("%d) %s", i+1, format(elem)))
		}
	case v.Type == resp.TypeError:
		Error(v.Str)
	case v.Type == resp.TypeSimpleString:
		Success(v.Str)
	case v.Type == resp.TypeBulkString && v.Null:
		Nil()
	case v.Type == resp.TypeBulkString && strings.Contains(v.Str, "\n"):
		for _, line := range strings.Split(strings.TrimRight(v.Str, "\r\n"), "\n") {
			Info(strings.TrimRight(line, "\r"))
		}
	default:
		Info(format(v))
	}
}

func format(v resp.Value) string {
	switch v.Type {
	case resp.TypeInteger:
		return fmt.Sprintf("(integer) %d", v.Int)
	case resp.TypeBulkString:
		if v.Null {
			return "(nil)"
		}
		return fmt.Sprintf("%q", v.Str)
	case resp.TypeArray:
		return fmt.Sprintf("(array of %d)", len(v.Elems))
	default:
		return v.Str
	}
}
