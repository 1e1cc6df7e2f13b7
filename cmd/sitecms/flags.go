package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

type cliFlags struct {
	config      string
	addr        string
	db          string
	drafts      string
	verbose     bool
	printConfig bool
}

func parseFlags(args []string, output io.Writer) (cliFlags, error) {
	var flags cliFlags
	fs := flag.NewFlagSet("sitecms", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVarP(&flags.config, "config", "c", "", "Path to a YAML config file")
	fs.StringVar(&flags.addr, "addr", "", "Listen address (overrides http.addr)")
	fs.StringVar(&flags.db, "db", "", "Database DSN (overrides storage.dsn)")
	fs.StringVar(&flags.drafts, "drafts", "", "Import markdown drafts from this directory at startup")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "Log at debug level")
	fs.BoolVar(&flags.printConfig, "print-config", false, "Print the resolved configuration and exit")

	if len(args) > 0 {
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return flags, nil
}
