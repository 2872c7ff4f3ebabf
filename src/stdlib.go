package tinytcl

import (
	"fmt"
	"strings"
)

// RegisterStandardLibrary registers the built-in commands: set, get and puts
func RegisterStandardLibrary(r *Registry) {
	// set name value
	r.RegisterCommandArity("set", 2, func(ctx *Context) (string, error) {
		name := ctx.Args[0]
		if name == "" {
			return "", &MalformedError{Command: "set", Reason: "variable name must not be empty,", Received: ctx.Args}
		}
		ctx.Vars[name] = ctx.Args[1]
		ctx.Debug(CatVariable, "%s = %q", name, ctx.Args[1])
		return "", nil
	})

	// get name
	r.RegisterCommandArity("get", 1, func(ctx *Context) (string, error) {
		value, ok := ctx.Vars[ctx.Args[0]]
		if !ok {
			ctx.Debug(CatVariable, "%s is unbound", ctx.Args[0])
		}
		return value, nil
	})

	// puts args...
	r.RegisterCommand("puts", func(ctx *Context) (string, error) {
		if _, err := fmt.Fprintln(ctx.Out, strings.Join(ctx.Args, " ")); err != nil {
			return "", fmt.Errorf("write output: %w", err)
		}
		return "", nil
	})
}
