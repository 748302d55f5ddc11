// Command greeter serves the greeting demo: GET /hello/{name} answered through
// the greeting facade.
//
//	greeter -env .env -config greeter.yaml
//	greeter -facades
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/km-arc/go-facade/app/greeting"
	apphttp "github.com/km-arc/go-facade/app/http"
	"github.com/km-arc/go-facade/facade"
	"github.com/km-arc/go-facade/framework/app"
	"github.com/km-arc/go-facade/framework/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "greeter:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("greeter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env", ".env", "dotenv file to load")
	configFile := fs.String("config", "", "optional YAML config file")
	listFacades := fs.Bool("facades", false, "boot, print the resolved facades and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*envFile, *configFile)
	if err != nil {
		return err
	}

	application := app.New(app.WithConfig(cfg), app.WithLogOutput(stderr))
	application.Register(&greeting.Provider{})
	(&apphttp.HelloController{Logger: application.Logger()}).Routes(application.Router())
	application.Boot()

	if *listFacades {
		return printFacades(stdout, application.Facades)
	}
	return application.Run(ctx)
}

func loadConfig(envFile, configFile string) (*config.Config, error) {
	if configFile == "" {
		return config.Load(envFile), nil
	}
	return config.LoadFile(configFile, envFile)
}

// printFacades resolves the demo facade and renders every cached root.
func printFacades(w io.Writer, reg *facade.Registry) error {
	if _, err := greeting.Facade.Root(); err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Accessor", "Source", "Type"})
	for _, e := range reg.Entries() {
		t.AppendRow(table.Row{e.Key, e.Source, e.Type})
	}
	t.Render()
	return nil
}
