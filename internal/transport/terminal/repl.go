package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/IgorGrieder/encurtador-console/internal/console"
	"github.com/IgorGrieder/encurtador-console/internal/constants"
	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/logger"
	"github.com/IgorGrieder/encurtador-console/internal/links"
	"go.uber.org/zap"
)

const (
	DefaultPrompt = "links> "

	loadingText  = "loading…"
	noMatchText  = "No links match your search."
	creatingText = "Creating..."
)

var errQuit = errors.New("quit")

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, arg string) error
}

// REPL is the interactive front-end. Commands read and write the session only;
// all rendering comes from Session.View.
type REPL struct {
	session  *console.Session
	prompter *Prompter
	out      io.Writer
	prompt   string
	commands map[string]command
}

func NewREPL(session *console.Session, prompter *Prompter, out io.Writer) *REPL {
	r := &REPL{
		session:  session,
		prompter: prompter,
		out:      out,
		prompt:   DefaultPrompt,
	}
	r.commands = map[string]command{
		"help":    {"help", "show commands", r.cmdHelp},
		"ls":      {"ls", "list links matching the current search", r.cmdList},
		"stats":   {"stats", "show totals and the top link", r.cmdStats},
		"url":     {"url <target>", "set the target URL of the create form", r.cmdURL},
		"code":    {"code [code]", "set the optional custom code (6-8 letters or digits)", r.cmdCode},
		"form":    {"form", "show the create form", r.cmdForm},
		"submit":  {"submit", "create a link from the form", r.cmdSubmit},
		"add":     {"add <target> [code]", "fill the form and submit it", r.cmdAdd},
		"rm":      {"rm <code>", "delete a link (asks first)", r.cmdDelete},
		"copy":    {"copy <code>", "copy the short URL to the clipboard", r.cmdCopy},
		"view":    {"view <code>", "show a link and its detail location", r.cmdView},
		"search":  {"search <text>", "filter by code or target URL", r.cmdSearch},
		"clear":   {"clear", "clear the search", r.cmdClear},
		"refresh": {"refresh", "reload links from the API", r.cmdRefresh},
		"status":  {"status", "show the last status message", r.cmdStatus},
		"quit":    {"quit", "leave the console", r.cmdQuit},
	}
	return r
}

// Run reads commands until quit, end of input or ctx cancellation.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "Type 'help' for commands.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := r.prompter.ReadLine(r.prompt)
		if err != nil {
			if errors.Is(err, ErrInputClosed) {
				return nil
			}
			return err
		}

		if err := r.Exec(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
}

// Exec runs a single command line.
func (r *REPL) Exec(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	name, arg := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		name, arg = line[:i], line[i:]
	}
	cmd, ok := r.commands[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown command %q (try 'help')", name)
	}

	logger.Debug("console command", zap.String("command", name))
	return cmd.run(ctx, strings.TrimSpace(arg))
}

func (r *REPL) cmdHelp(context.Context, string) error {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	for _, name := range names {
		c := r.commands[name]
		fmt.Fprintf(tw, "  %s\t%s\n", c.usage, c.help)
	}
	return tw.Flush()
}

func (r *REPL) cmdList(context.Context, string) error {
	v := r.session.View()
	if !v.Loaded {
		fmt.Fprintln(r.out, loadingText)
		return nil
	}
	if len(v.Links) == 0 {
		fmt.Fprintln(r.out, noMatchText)
		return nil
	}

	return RenderLinks(r.out, v.Links)
}

func (r *REPL) cmdStats(context.Context, string) error {
	v := r.session.View()
	if !v.Loaded {
		fmt.Fprintln(r.out, loadingText)
		return nil
	}
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total Links\t%d\n", v.Summary.Count)
	fmt.Fprintf(tw, "Total Clicks\t%d\n", v.Summary.TotalClicks)
	fmt.Fprintf(tw, "Top Link\t%s\n", v.Summary.TopLinkCode)
	return tw.Flush()
}

func (r *REPL) cmdURL(_ context.Context, arg string) error {
	r.session.SetTargetURL(arg)
	return nil
}

func (r *REPL) cmdCode(_ context.Context, arg string) error {
	if !r.session.SetCustomCode(arg) {
		fmt.Fprintln(r.out, constants.MsgInvalidCode)
	}
	return nil
}

func (r *REPL) cmdForm(context.Context, string) error {
	f := r.session.View().Form
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Target URL\t%s\n", f.TargetURL)
	fmt.Fprintf(tw, "Custom Code\t%s\n", f.CustomCode)
	switch {
	case f.Creating:
		fmt.Fprintf(tw, "Submit\t%s\n", creatingText)
	case f.CanSubmit:
		fmt.Fprintln(tw, "Submit\tready")
	default:
		fmt.Fprintln(tw, "Submit\tdisabled")
	}
	if !f.CodeValid {
		fmt.Fprintf(tw, "\t%s\n", constants.MsgInvalidCode)
	}
	return tw.Flush()
}

func (r *REPL) cmdSubmit(ctx context.Context, _ string) error {
	// Submit blocks until the API answers.
	if r.session.CanSubmit() {
		fmt.Fprintln(r.out, creatingText)
	}
	err := r.session.Submit(ctx)
	switch {
	case errors.Is(err, console.ErrSubmitDisabled):
		f := r.session.View().Form
		if strings.TrimSpace(f.TargetURL) == "" {
			fmt.Fprintln(r.out, "Target URL is required.")
		}
		if !f.CodeValid {
			fmt.Fprintln(r.out, constants.MsgInvalidCode)
		}
		return nil
	case errors.Is(err, console.ErrCreateInFlight):
		fmt.Fprintln(r.out, creatingText)
		return nil
	case errors.Is(err, console.ErrClosed):
		return err
	}
	r.printMessage()
	return nil
}

func (r *REPL) cmdAdd(ctx context.Context, arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 || len(fields) > 2 {
		return errors.New("usage: add <target> [code]")
	}
	r.session.SetTargetURL(fields[0])
	code := ""
	if len(fields) == 2 {
		code = fields[1]
	}
	r.session.SetCustomCode(code)
	return r.cmdSubmit(ctx, "")
}

func (r *REPL) cmdDelete(ctx context.Context, arg string) error {
	if arg == "" {
		return errors.New("usage: rm <code>")
	}
	err := r.session.Delete(ctx, arg)
	switch {
	case errors.Is(err, console.ErrCancelled):
		fmt.Fprintln(r.out, "Cancelled.")
		return nil
	case errors.Is(err, console.ErrClosed):
		return err
	}
	r.printMessage()
	return nil
}

func (r *REPL) cmdCopy(ctx context.Context, arg string) error {
	if arg == "" {
		return errors.New("usage: copy <code>")
	}
	if err := r.session.Copy(ctx, arg); errors.Is(err, console.ErrClosed) {
		return err
	}
	r.printMessage()
	return nil
}

func (r *REPL) cmdView(_ context.Context, arg string) error {
	if arg == "" {
		return errors.New("usage: view <code>")
	}
	l, ok := r.session.Lookup(arg)
	if !ok {
		return fmt.Errorf("no link with code %q", arg)
	}

	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Code\t%s\n", l.Code)
	fmt.Fprintf(tw, "Target\t%s\n", l.TargetURL)
	fmt.Fprintf(tw, "Short URL\t%s\n", r.session.ShortURL(l.Code))
	fmt.Fprintf(tw, "Clicks\t%d\n", l.TotalClicks.Int64())
	fmt.Fprintf(tw, "Last Clicked\t%s\n", l.LastClickedLabel())
	fmt.Fprintf(tw, "Detail\t%s\n", r.session.DetailURL(l.Code))
	return tw.Flush()
}

func (r *REPL) cmdSearch(ctx context.Context, arg string) error {
	r.session.SetSearch(arg)
	return r.cmdList(ctx, "")
}

func (r *REPL) cmdClear(ctx context.Context, _ string) error {
	r.session.ClearSearch()
	return r.cmdList(ctx, "")
}

func (r *REPL) cmdRefresh(ctx context.Context, _ string) error {
	if err := r.session.Refresh(ctx); err != nil {
		if errors.Is(err, console.ErrClosed) {
			return err
		}
		r.printMessage()
		return nil
	}
	return r.cmdStats(ctx, "")
}

func (r *REPL) cmdStatus(context.Context, string) error {
	if !r.printMessage() {
		fmt.Fprintln(r.out, "No status.")
	}
	return nil
}

func (r *REPL) cmdQuit(context.Context, string) error {
	return errQuit
}

// printMessage writes the current status message, if any.
func (r *REPL) printMessage() bool {
	v := r.session.View()
	if v.Message == "" {
		return false
	}
	fmt.Fprintf(r.out, "[%s] %s\n", v.Severity, v.Message)
	return true
}

// RenderLinks writes links as a table.
func RenderLinks(w io.Writer, ls []links.Link) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tTARGET\tCLICKS\tLAST CLICKED")
	for _, l := range ls {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", l.Code, l.TargetURL, l.TotalClicks.Int64(), l.LastClickedLabel())
	}
	return tw.Flush()
}
