package pantry

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"recipe-finder/internal/session"
)

const helpText = `Commands:
  add <ingredient>   add an ingredient
  rm <ingredient>    remove an ingredient
  list               show your ingredients
  generate           find recipes for your ingredients
  show <n>           show recipe n in full
  help               show this help
  quit               exit
`

// Console runs the command loop over a session.
type Console struct {
	Session *session.Session
	In      io.Reader
	Out     io.Writer
}

// New constructs a Console.
func New(sess *session.Session, in io.Reader, out io.Writer) *Console {
	return &Console{Session: sess, In: in, Out: out}
}

// Run reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprint(c.Out, "What's in your kitchen? Type \"help\" for commands.\n")
	scanner := bufio.NewScanner(c.In)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(c.Out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.Out)
			return scanner.Err()
		}
		if quit := c.Exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// Exec runs a single command line and reports whether the console should stop.
func (c *Console) Exec(ctx context.Context, line string) bool {
	cmd, arg := splitCommand(line)
	switch cmd {
	case "":
	case "add":
		c.add(arg)
	case "rm", "remove":
		c.remove(arg)
	case "list", "ls":
		c.list()
	case "generate", "find":
		c.generate(ctx)
	case "show":
		c.show(arg)
	case "help", "?":
		fmt.Fprint(c.Out, helpText)
	case "quit", "exit":
		c.Session.Close()
		return true
	default:
		fmt.Fprintf(c.Out, "Unknown command %q. Type \"help\" for commands.\n", cmd)
	}
	return false
}

func (c *Console) add(arg string) {
	c.Session.SetInput(arg)
	ing, err := c.Session.SubmitInput()
	if err != nil {
		c.notice(err)
		return
	}
	fmt.Fprintf(c.Out, "Added %s (%d total)\n", ing, len(c.Session.Snapshot().Ingredients))
}

func (c *Console) remove(arg string) {
	c.Session.Remove(arg)
	c.list()
}

func (c *Console) list() {
	items := c.Session.Snapshot().Ingredients
	if len(items) == 0 {
		fmt.Fprintln(c.Out, "No ingredients yet.")
		return
	}
	fmt.Fprintf(c.Out, "Your ingredients (%d):\n", len(items))
	for _, it := range items {
		fmt.Fprintf(c.Out, "  - %s\n", it)
	}
}

func (c *Console) generate(ctx context.Context) {
	fmt.Fprintln(c.Out, "Finding recipes...")
	if err := c.Session.Fetch(ctx); err != nil {
		c.notice(err)
		return
	}
	results := c.Session.Snapshot().Recipes
	if len(results) == 0 {
		fmt.Fprintln(c.Out, "No recipes found.")
		return
	}
	fmt.Fprintln(c.Out, "Suggested recipes:")
	for i, r := range results {
		fmt.Fprintf(c.Out, "  %d. %s\n", i+1, r.Summary())
	}
}

func (c *Console) show(arg string) {
	results := c.Session.Snapshot().Recipes
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(results) {
		if len(results) == 0 {
			fmt.Fprintln(c.Out, "No recipes to show. Run \"generate\" first.")
			return
		}
		fmt.Fprintf(c.Out, "Pick a recipe between 1 and %d.\n", len(results))
		return
	}
	fmt.Fprint(c.Out, results[n-1].Detail())
}

func (c *Console) notice(err error) {
	n := session.NoticeFor(err)
	if n.IsZero() {
		return
	}
	fmt.Fprintf(c.Out, "[%s] %s\n", n.Title, n.Message)
}

// splitCommand lower-cases the verb and keeps the rest of the line verbatim.
func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	verb, rest, _ := strings.Cut(line, " ")
	return strings.ToLower(verb), strings.TrimSpace(rest)
}
