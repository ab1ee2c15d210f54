// Package main provides the CLI entrypoint for pv-generator.
//
// pv-generator reads a TwinCAT .tmc file, expands every pragma-annotated
// variable into its candidate PV configurations, validates them against
// the configured rule table, and writes EPICS record definitions plus
// optional stream protocol stubs. Incomplete configurations are reported
// as warnings instead of producing partial output.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"

	"pv-generator/internal/assemble"
	"pv-generator/internal/config"
	"pv-generator/internal/document"
	"pv-generator/internal/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "pv-generator:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("pv-generator", pflag.ContinueOnError)

	configPath := flags.String("config", "", "path to a YAML project configuration")
	outDir := flags.String("out", "", "output directory (overrides config)")
	dbFile := flags.String("db", "", "record file name (overrides config)")
	protoFile := flags.String("proto", "", "protocol stub file name (overrides config)")
	version := flags.String("version", "", "rule table version (overrides config)")
	logLevel := flags.String("log-level", "info", "log level: debug, info, warn, error")
	logFormat := flags.String("log-format", "text", "log format: text or json")
	debug := flags.Bool("debug", false, "dump assembly results to stderr")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if flags.NArg() != 1 {
		return fmt.Errorf("expected exactly one .tmc file argument, got %d", flags.NArg())
	}

	logger := newLogger(*logLevel, *logFormat, os.Stderr)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	if *dbFile != "" {
		cfg.DBFile = *dbFile
	}

	if *protoFile != "" {
		cfg.ProtoFile = *protoFile
	}

	if *version != "" {
		cfg.Version = *version
	}

	return generate(flags.Arg(0), cfg, logger, *debug)
}

func generate(tmcPath string, cfg *config.Config, logger *slog.Logger, debug bool) error {
	rulesVersion, err := cfg.RulesVersion()
	if err != nil {
		return err
	}

	doc, err := document.Load(tmcPath, document.LoadOptions{
		PragmaKey: cfg.PragmaKey,
		DataArea:  cfg.DataArea,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	chains := doc.Chains()
	logger.Info("document loaded",
		"path", tmcPath,
		"symbols", doc.Symbols.Len(),
		"chains", len(chains),
	)

	var accepted []*assemble.Package
	rejects := 0

	for _, chain := range chains {
		elements := make([]assemble.Element, len(chain))
		for i, el := range chain {
			elements[i] = el
		}

		leaf := chain[len(chain)-1]
		result, err := assemble.Assemble(elements, assemble.Options{
			BaseProtoName: protoBase(leaf.Name()),
			ProtoFileName: cfg.ProtoFile,
			UseStub:       cfg.ProtoFile != "",
			Version:       rulesVersion,
			Separator:     cfg.Separator,
		})
		if err != nil {
			return fmt.Errorf("assembling chain for %s: %w", chain[0].Name(), err)
		}

		if debug {
			spew.Fdump(os.Stderr, result)
		}

		for _, d := range result.Diags.Errors {
			logger.Error(d.Message, "code", d.Code, "element", d.Element, "path", d.PvPath)
		}

		for _, d := range result.Diags.Warnings {
			logger.Warn(d.Message, "code", d.Code, "element", d.Element, "path", d.PvPath)
		}

		accepted = append(accepted, result.Accepted...)
		rejects += len(result.Rejected)
	}

	logger.Info("assembly finished", "accepted", len(accepted), "rejected", rejects)

	if len(accepted) == 0 {
		return fmt.Errorf("no complete PV configurations found in %s", tmcPath)
	}

	files, err := renderFiles(accepted, cfg)
	if err != nil {
		return err
	}

	if err := render.WriteFiles(files, cfg.OutputDir); err != nil {
		return err
	}

	for _, f := range files {
		logger.Info("wrote file", "name", f.Filename, "bytes", len(f.Content))
	}

	return nil
}

func renderFiles(accepted []*assemble.Package, cfg *config.Config) ([]render.GeneratedFile, error) {
	records, err := render.Records(accepted)
	if err != nil {
		return nil, err
	}

	files := []render.GeneratedFile{{Filename: cfg.DBFile, Content: records}}

	if cfg.ProtoFile != "" {
		protos, err := render.Protos(accepted)
		if err != nil {
			return nil, err
		}

		files = append(files, render.GeneratedFile{Filename: cfg.ProtoFile, Content: protos})
	}

	return files, nil
}

// protoBase turns a variable name like "MAIN.ulimit" into the stub name
// stem "MainUlimit".
func protoBase(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '.' || r == '_'
	})

	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}

	return strings.Join(parts, "")
}
