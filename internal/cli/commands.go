package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/goliatone/go-widgetform/internal/app"
	"github.com/goliatone/go-widgetform/internal/logging"
	"github.com/goliatone/go-widgetform/internal/server"
	"github.com/goliatone/go-widgetform/pkg/host"
	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/renderers/tui"
	"github.com/goliatone/go-widgetform/pkg/store"
	"github.com/goliatone/go-widgetform/pkg/submission"
	"github.com/goliatone/go-widgetform/pkg/timeslots"
)

// Commands returns every subcommand in help order.
func Commands() []*Command {
	return []*Command{
		serveCmd(),
		listCmd(),
		formCmd(),
		displayCmd(),
		fieldsCmd(),
		updateCmd(),
		editCmd(),
		timeSlotsCmd(),
	}
}

func serveCmd() *Command {
	flags := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := flags.String("addr", "", "listen address (defaults to server.addr)")
	assets := flags.String("assets", "/assets/", "base URL of admin asset bundles (embedded bundles are served under /assets/)")

	return &Command{
		Flags: flags,
		Usage: "serve [flags]",
		Short: "Serve placements over HTTP",
		Exec: func(ctx context.Context, a *app.App, _ *IO, _ []string) error {
			listen := *addr
			if listen == "" {
				listen = a.Config.Server.Addr
			}
			srv := server.New(a.Widget, a.Store,
				server.WithLogger(logging.ModuleLogger(a.Provider, logging.ServerModule)),
				server.WithAssets(*assets, ""),
			)
			return srv.ListenAndServe(ctx, listen)
		},
	}
}

func listCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("list", flag.ContinueOnError),
		Usage: "list",
		Short: "List stored placement numbers",
		Exec: func(ctx context.Context, a *app.App, o *IO, _ []string) error {
			numbers, err := a.Store.List(ctx, a.Widget.IDBase())
			if err != nil {
				return err
			}
			for _, number := range numbers {
				o.Println(number)
			}
			return nil
		},
	}
}

func formCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("form", flag.ContinueOnError),
		Usage: "form <number>",
		Short: "Print the admin form of a placement",
		Exec: func(ctx context.Context, a *app.App, o *IO, args []string) error {
			number, err := requireNumber(args)
			if err != nil {
				return err
			}
			instance, err := loadOrNew(ctx, a, number)
			if err != nil {
				return err
			}
			markup, err := a.Widget.ForPlacement(number).Form(instance)
			if err != nil {
				return err
			}
			o.Println(markup)
			return nil
		},
	}
}

func displayCmd() *Command {
	flags := flag.NewFlagSet("display", flag.ContinueOnError)
	sidebar := flags.String("sidebar", "sidebar-1", "sidebar id passed to the wrapper")

	return &Command{
		Flags: flags,
		Usage: "display <number> [flags]",
		Short: "Print the front-end markup of a placement",
		Exec: func(ctx context.Context, a *app.App, o *IO, args []string) error {
			number, err := requireNumber(args)
			if err != nil {
				return err
			}
			instance, err := a.Store.Get(ctx, a.Widget.IDBase(), number)
			if err != nil {
				return err
			}
			placement := a.Widget.ForPlacement(number)
			markup, err := placement.Display(host.DefaultWrapperArgs(*sidebar, placement.IDBase()+"-"+number), instance)
			if err != nil {
				return err
			}
			if markup != "" {
				o.Println(markup)
			}
			return nil
		},
	}
}

func fieldsCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("fields", flag.ContinueOnError),
		Usage: "fields <number>",
		Short: "Print the merged, ordered fields of a placement as JSON",
		Exec: func(ctx context.Context, a *app.App, o *IO, args []string) error {
			number, err := requireNumber(args)
			if err != nil {
				return err
			}
			instance, err := loadOrNew(ctx, a, number)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(a.Widget.ForPlacement(number).Fields(instance), "", "  ")
			if err != nil {
				return err
			}
			o.Println(string(data))
			return nil
		},
	}
}

func updateCmd() *Command {
	flags := flag.NewFlagSet("update", flag.ContinueOnError)
	file := flags.StringP("file", "f", "-", "submission file, - reads stdin")
	format := flags.String("format", "json", "submission format: json or form")

	return &Command{
		Flags: flags,
		Usage: "update <number> [flags]",
		Short: "Sanitize a submission and store it",
		Long: "Read a submitted form (JSON {\"key\": {\"value\": ...}} or an urlencoded body),\n" +
			"run it through the update pipeline and store the resulting instance.",
		Exec: func(ctx context.Context, a *app.App, o *IO, args []string) error {
			number, err := requireNumber(args)
			if err != nil {
				return err
			}
			body, err := readInput(o, *file)
			if err != nil {
				return err
			}

			placement := a.Widget.ForPlacement(number)
			var submitted submission.Submission
			switch *format {
			case "json":
				err = submitted.UnmarshalJSON(body)
			case "form":
				submitted, err = submission.ParseForm(strings.TrimSpace(string(body)), placement.Naming())
			default:
				err = errors.New("unsupported format " + *format)
			}
			if err != nil {
				return err
			}

			return saveAndPrint(ctx, a, o, number, submitted)
		},
	}
}

func editCmd() *Command {
	return &Command{
		Flags: flag.NewFlagSet("edit", flag.ContinueOnError),
		Usage: "edit <number>",
		Short: "Edit a placement interactively",
		Exec: func(ctx context.Context, a *app.App, o *IO, args []string) error {
			number, err := requireNumber(args)
			if err != nil {
				return err
			}
			instance, err := loadOrNew(ctx, a, number)
			if err != nil {
				return err
			}

			editor, err := tui.New(tui.WithLogger(logging.ModuleLogger(a.Provider, logging.RootModule)))
			if err != nil {
				return err
			}
			placement := a.Widget.ForPlacement(number)
			submitted, err := editor.Edit(ctx, placement.Fields(instance), placement.TimeSlots())
			if err != nil {
				return err
			}
			return saveAndPrint(ctx, a, o, number, submitted)
		},
	}
}

func timeSlotsCmd() *Command {
	flags := flag.NewFlagSet("timeslots", flag.ContinueOnError)
	increment := flags.String("increment", "", "half_hour or fifteen_minutes (defaults to the configured increment)")
	format := flags.String("format", "", "strftime or Go layout (defaults to widget.time_format)")

	return &Command{
		Flags: flags,
		Usage: "timeslots [flags]",
		Short: "Print the time slot labels offered by hours fields",
		Exec: func(_ context.Context, a *app.App, o *IO, _ []string) error {
			slots := a.Widget.TimeSlots()
			if *increment != "" || *format != "" {
				layout := *format
				if layout == "" {
					layout = a.Config.Widget.TimeFormat
				}
				step := *increment
				if step == "" {
					step = a.Config.Widget.HourIncrement
				}
				slots = timeslots.Generate(timeslots.StepFor(step), layout)
			}
			for _, slot := range slots {
				o.Println(slot)
			}
			return nil
		},
	}
}

func loadOrNew(ctx context.Context, a *app.App, number string) (model.Instance, error) {
	instance, err := a.Store.Get(ctx, a.Widget.IDBase(), number)
	if errors.Is(err, store.ErrInstanceNotFound) {
		return model.NewInstance(), nil
	}
	return instance, err
}

func saveAndPrint(ctx context.Context, a *app.App, o *IO, number string, submitted submission.Submission) error {
	old, err := loadOrNew(ctx, a, number)
	if err != nil {
		return err
	}
	instance := a.Widget.ForPlacement(number).Update(submitted, old)
	if err := a.Store.Save(ctx, a.Widget.IDBase(), number, instance); err != nil {
		return err
	}
	data, err := json.MarshalIndent(instance, "", "  ")
	if err != nil {
		return err
	}
	o.Println(string(data))
	return nil
}

func readInput(o *IO, path string) ([]byte, error) {
	if path == "" || path == "-" {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, o.in); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return os.ReadFile(path)
}
