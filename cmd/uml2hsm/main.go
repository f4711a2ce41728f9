// Command uml2hsm converts a PlantUML state-diagram source file into a
// hierarchical state machine implementation in a target language, the
// direct successor to original_source/uml2hsm.py's command-line entry
// point.
//
// Usage:
//
//	uml2hsm camera.puml --lang c --output camera_hsm.c
//	uml2hsm camera.puml --debug
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hashicorp/go-hclog"

	"github.com/comalice/hsmx/internal/emitter"
)

// CLI defines the command-line interface, grounded on kadirpekel-hector's
// cmd/hector/main.go CLI struct.
type CLI struct {
	Src string `arg:"" help:"Path to the PlantUML (.puml) source file." type:"existingfile"`

	Lang    string `short:"l" help:"Target language (c, c++, python, puml)." default:"c" enum:"c,c++,python,puml"`
	Reverse bool   `short:"r" help:"Reverse-generate PlantUML from an existing implementation (not yet implemented)."`
	Debug   bool   `help:"Dump the parsed intermediate model as YAML to stderr instead of generating code."`
	Output  string `short:"o" help:"Output file path (default: stdout)." type:"path"`

	LogLevel string `help:"Log level (trace, debug, info, warn, error)." default:"warn"`
}

func (c *CLI) Run() error {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "uml2hsm",
		Level: hclog.LevelFromString(c.LogLevel),
		Color: hclog.AutoColor,
	})

	if c.Reverse {
		return fmt.Errorf("reverse generation is not yet implemented")
	}

	src, err := os.ReadFile(c.Src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.Src, err)
	}

	hsms, warnings, err := parse(string(src))
	if err != nil {
		return err
	}
	for _, warn := range warnings {
		logger.Warn("parse warning", "detail", warn)
	}
	if len(hsms) == 0 {
		logger.Warn("no @startuml/@enduml blocks found", "file", c.Src)
		return nil
	}

	if c.Debug {
		return dumpDebug(hsms, os.Stderr)
	}

	reg := emitter.NewRegistry()
	em, ok := reg[c.Lang]
	if !ok {
		return fmt.Errorf("%w: %s", errUnsupportedLanguage, c.Lang)
	}

	out := os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", c.Output, err)
		}
		defer f.Close()
		out = f
	}

	for _, hsm := range hsms {
		if err := em.Emit(hsm, out); err != nil {
			return fmt.Errorf("emitting %s: %w", hsm.Name, err)
		}
	}
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("uml2hsm"),
		kong.Description("Generate hierarchical state machine code from a PlantUML state diagram."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
