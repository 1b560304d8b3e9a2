// Package logic runs the optional stored script attached to a page.
//
// Scripts are not general-purpose code. They are a line-oriented
// directive list with an enumerated capability set: read fields of the
// current page, read query parameters and headers, read the session
// username and the clock, assign template variables, and increment a
// named persistent counter. Nothing else is reachable from a script,
// and a faulting script never aborts the request that ran it.
package logic

import (
	"fmt"
	"strings"
	"time"
)

// Env binds a script to its request. Every capability a directive can
// touch is an explicit field; a nil accessor disables that capability.
type Env struct {
	// Vars receives assignments and is later handed to the renderer.
	Vars map[string]any

	// Session is the signed-in username, empty for anonymous visitors.
	Session string

	Query     func(name string) string
	Header    func(name string) string
	PageField func(name string) (string, bool)

	// Counter increments the named persistent counter and returns the
	// new value. Increments made before a later fault persist.
	Counter func(name string) (int64, error)

	Now func() time.Time
}

// Fault describes a contained script failure: which line faulted, its
// source text and why. It satisfies error.
type Fault struct {
	Line int
	Src  string
	Msg  string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("line %d: %s", f.Line, f.Msg)
}

// Trace renders the diagnostic injected into the degraded render
// context: the message plus the offending source line.
func (f *Fault) Trace() string {
	return fmt.Sprintf("line %d: %s\n    %s", f.Line, f.Msg, f.Src)
}

const defaultTimeLayout = "Jan 2, 2006 15:04"

// Run executes a script against the environment. Execution stops at the
// first fault; assignments and counter increments made before it stick.
func Run(source string, env *Env) error {
	if env.Vars == nil {
		env.Vars = make(map[string]any)
	}

	for i, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := runLine(line, env); err != nil {
			if f, ok := err.(*Fault); ok {
				f.Line = i + 1
				f.Src = line
			}
			return err
		}
	}
	return nil
}

func runLine(line string, env *Env) error {
	tokens := tokenize(line)
	if len(tokens) == 0 {
		return nil
	}

	op, args := tokens[0], tokens[1:]
	switch op {
	case "set":
		if len(args) < 2 {
			return &Fault{Msg: "set needs a variable and a value"}
		}
		env.Vars[args[0]] = strings.Join(args[1:], " ")

	case "query":
		if len(args) != 2 {
			return &Fault{Msg: "query needs a variable and a parameter name"}
		}
		if env.Query == nil {
			return &Fault{Msg: "query parameters are not available here"}
		}
		env.Vars[args[0]] = env.Query(args[1])

	case "header":
		if len(args) != 2 {
			return &Fault{Msg: "header needs a variable and a header name"}
		}
		if env.Header == nil {
			return &Fault{Msg: "headers are not available here"}
		}
		env.Vars[args[0]] = env.Header(args[1])

	case "page":
		if len(args) != 2 {
			return &Fault{Msg: "page needs a variable and a field name"}
		}
		if env.PageField == nil {
			return &Fault{Msg: "page fields are not available here"}
		}
		v, ok := env.PageField(args[1])
		if !ok {
			return &Fault{Msg: fmt.Sprintf("unknown page field %q", args[1])}
		}
		env.Vars[args[0]] = v

	case "session":
		if len(args) != 1 {
			return &Fault{Msg: "session needs a variable"}
		}
		env.Vars[args[0]] = env.Session

	case "now":
		if len(args) < 1 || len(args) > 2 {
			return &Fault{Msg: "now needs a variable and an optional layout"}
		}
		layout := defaultTimeLayout
		if len(args) == 2 {
			layout = args[1]
		}
		now := time.Now
		if env.Now != nil {
			now = env.Now
		}
		env.Vars[args[0]] = now().Format(layout)

	case "count":
		if len(args) != 2 {
			return &Fault{Msg: "count needs a variable and a counter name"}
		}
		if env.Counter == nil {
			return &Fault{Msg: "counters are not available here"}
		}
		v, err := env.Counter(args[1])
		if err != nil {
			return &Fault{Msg: fmt.Sprintf("counter %q: %v", args[1], err)}
		}
		env.Vars[args[0]] = v

	case "fail":
		msg := "script failure requested"
		if len(args) > 0 {
			msg = strings.Join(args, " ")
		}
		return &Fault{Msg: msg}

	default:
		return &Fault{Msg: fmt.Sprintf("unknown directive %q", op)}
	}
	return nil
}

// tokenize splits a line on whitespace, honoring double quotes.
func tokenize(line string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t'):
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}
