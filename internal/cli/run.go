package cli

import (
	"context"
	"errors"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/goliatone/go-widgetform/internal/app"
	"github.com/goliatone/go-widgetform/internal/config"
)

// Run is the main entry point. Returns the process exit code.
func Run(ctx context.Context, in io.Reader, out, errOut io.Writer, args []string) int {
	o := NewIO(in, out, errOut)

	global := flag.NewFlagSet("widgetform", flag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(io.Discard)
	configPath := global.StringP("config", "c", "", "configuration file (.json, .jsonc, .yaml)")
	logLevel := global.String("log-level", "", "override logging.level")

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(o, global)
			return 0
		}
		o.ErrPrintln("error:", err)
		printUsage(NewIO(in, errOut, errOut), global)
		return 1
	}

	rest := global.Args()
	if len(rest) == 0 || rest[0] == "help" {
		printUsage(o, global)
		return 0
	}

	cmd := lookup(rest[0])
	if cmd == nil {
		o.ErrPrintln("error: unknown command:", rest[0])
		printUsage(NewIO(in, errOut, errOut), global)
		return 1
	}

	handled, err := cmd.parse(o, rest[1:])
	if err != nil {
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		cmd.PrintHelp(NewIO(in, errOut, errOut))
		return 1
	}
	if handled {
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}
	defer a.Close()

	if err := cmd.Exec(ctx, a, o, cmd.Flags.Args()); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}
	return 0
}

func lookup(name string) *Command {
	for _, cmd := range Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func printUsage(o *IO, global *flag.FlagSet) {
	o.Println("Usage: widgetform [global flags] <command> [args]")
	o.Println()
	o.Println("Commands:")
	for _, cmd := range Commands() {
		o.Println(cmd.HelpLine())
	}
	o.Println()
	o.Println("Global flags:")
	o.Printf("%s", global.FlagUsages())
	o.Println()
	o.Println("Run 'widgetform <command> --help' for command flags.")
}
