package main

// This is an example of using tinytcl as a library in a Go application

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phroun/tinytcl"
)

func main() {
	// Create an interpreter with the built-in set, get and puts commands
	tcl := tinytcl.New(&tinytcl.Config{
		Debug:            false,
		ShowErrorContext: true,
		Filename:         "example",
	})

	// Register custom commands
	tcl.RegisterCommands(map[string]tinytcl.Handler{
		"greet": func(ctx *tinytcl.Context) (string, error) {
			name := "World"
			if len(ctx.Args) > 0 {
				name = ctx.Args[0]
			}
			fmt.Fprintf(ctx.Out, "Hello, %s!\n", name)
			return name, nil
		},

		"upper": func(ctx *tinytcl.Context) (string, error) {
			return strings.ToUpper(strings.Join(ctx.Args, " ")), nil
		},
	})

	tcl.RegisterCommandArity("add", 2, func(ctx *tinytcl.Context) (string, error) {
		a, err := strconv.ParseInt(ctx.Args[0], 10, 64)
		if err != nil {
			return "", &tinytcl.ConversionError{Value: ctx.Args[0], Reason: "not an integer"}
		}
		b, err := strconv.ParseInt(ctx.Args[1], 10, 64)
		if err != nil {
			return "", &tinytcl.ConversionError{Value: ctx.Args[1], Reason: "not an integer"}
		}
		return strconv.FormatInt(a+b, 10), nil
	})

	fmt.Println("=== tinytcl Example ===")
	fmt.Println()

	// Example 1: Simple command
	fmt.Println("Example 1: Simple command")
	run(tcl, "greet")
	run(tcl, `greet "Alice"`)

	// Example 2: Variables
	fmt.Println("\nExample 2: Variables")
	run(tcl, "set who Bob\ngreet $who")

	// Example 3: Command substitution
	fmt.Println("\nExample 3: Command substitution")
	run(tcl, "set total [add 2 3]\nputs total is ${total}")

	// Example 4: Grouping
	fmt.Println("\nExample 4: Grouping")
	run(tcl, "upper {\n  one\n  two;three\n}")

	// Example 5: Error handling
	fmt.Println("\nExample 5: Error handling")
	run(tcl, "add 1 two")
	run(tcl, "add 1")
	run(tcl, "frobnicate")
	run(tcl, `puts "unterminated`)

	// Example 6: Errors can be inspected by kind
	_, err := tcl.Execute("add 1")
	var arity *tinytcl.ArityError
	if errors.As(err, &arity) {
		fmt.Printf("\nadd wanted %d arguments, got %d\n", arity.Expected, arity.Received)
	}
}

func run(tcl *tinytcl.TinyTcl, script string) {
	result, err := tcl.Execute(script)
	if err != nil {
		fmt.Fprintln(os.Stderr, tcl.FormatError(err))
		return
	}
	fmt.Printf("=> %q\n", result)
}
