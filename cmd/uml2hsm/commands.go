package main

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/comalice/hsmx/internal/lexer"
	"github.com/comalice/hsmx/internal/model"
)

// errUnsupportedLanguage mirrors hsmx.ErrUnsupportedLanguage for the CLI's
// own language-selection failures (no code in this binary imports the
// root hsmx engine package, so the sentinel is declared locally rather
// than pulling that package in just for an error value).
var errUnsupportedLanguage = errors.New("uml2hsm: unsupported target language")

// parse lexes and builds every @startuml/@enduml document in src.
func parse(src string) ([]*model.Hsm, []model.Warning, error) {
	blocks := lexer.Tokenize(src)
	hsms, warnings := model.Build(blocks)
	return hsms, warnings, nil
}

// debugDoc is the YAML-friendly projection of a model.Hsm dumped by
// --debug; model.Hsm itself uses ordered maps that don't marshal cleanly
// with yaml.v3's reflection-based encoder, so --debug flattens each HSM
// into plain slices first.
type debugDoc struct {
	Name   string          `yaml:"name"`
	Image  string          `yaml:"image,omitempty"`
	Init   string          `yaml:"init"`
	Events []string        `yaml:"events"`
	States []debugState    `yaml:"states"`
}

type debugState struct {
	Name   string       `yaml:"name"`
	Parent string       `yaml:"parent,omitempty"`
	Events []debugEvent `yaml:"events"`
}

type debugEvent struct {
	Name string     `yaml:"name"`
	Arms []debugArm `yaml:"arms"`
}

type debugArm struct {
	Guard  string `yaml:"guard,omitempty"`
	Action string `yaml:"action,omitempty"`
	Tran   string `yaml:"tran,omitempty"`
}

func dumpDebug(hsms []*model.Hsm, out io.Writer) error {
	enc := yaml.NewEncoder(out)
	defer enc.Close()
	for _, hsm := range hsms {
		doc := debugDoc{
			Name:   hsm.Name,
			Image:  hsm.Image,
			Init:   hsm.Init,
			Events: hsm.Events,
		}
		for pair := hsm.States.Oldest(); pair != nil; pair = pair.Next() {
			ds := debugState{Name: pair.Key, Parent: pair.Value.Parent}
			for evPair := pair.Value.Events.Oldest(); evPair != nil; evPair = evPair.Next() {
				de := debugEvent{Name: evPair.Key}
				for armPair := evPair.Value.Oldest(); armPair != nil; armPair = armPair.Next() {
					de.Arms = append(de.Arms, debugArm{
						Guard:  armPair.Key,
						Action: armPair.Value.Action,
						Tran:   armPair.Value.Tran,
					})
				}
				ds.Events = append(ds.Events, de)
			}
			doc.States = append(doc.States, ds)
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}
	return nil
}
