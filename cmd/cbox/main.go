// Command cbox inspects frame definitions and renders contact sheets without
// opening the editor.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/cboxeditor/config"
	"github.com/milk9111/cboxeditor/session"
)

const usage = `usage:
  cbox inspect -def <definition.json> [-sheet <atlas.json>]... [-anim <key>] [-config <editor.yaml>]
  cbox sheet -def <definition.json> -sheet <atlas.json>... -anim <key> [-out <file.png>] [-scale 2] [-columns 8]`

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// sources are the flags shared by every subcommand.
type sources struct {
	def    string
	sheets stringList
	config string
}

func (src *sources) register(fs *flag.FlagSet) {
	fs.StringVar(&src.def, "def", "", "Frame definition JSON")
	fs.Var(&src.sheets, "sheet", "Texture atlas JSON; repeat for each sprite sheet")
	fs.StringVar(&src.config, "config", "", "Editor config YAML for colors and min radius")
}

// load opens the definition and every sheet. Sheets that fail to load are
// logged and skipped.
func (src *sources) load() (*session.Session, *config.Config, error) {
	if src.def == "" {
		return nil, nil, fmt.Errorf("cbox: -def is required")
	}
	cfg, err := config.LoadConfig(src.config)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(src.def)
	if err != nil {
		return nil, nil, fmt.Errorf("cbox: read %s: %w", src.def, err)
	}
	sess := session.New(cfg)
	if err := sess.LoadDefinition(filepath.Base(src.def), data); err != nil {
		return nil, nil, err
	}
	for _, sheet := range src.sheets {
		if err := sess.LoadSpriteSheetFile(sheet); err != nil {
			log.Printf("cbox: %v", err)
		}
	}
	return sess, cfg, nil
}

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "inspect":
		err = runInspect(os.Args[2:], os.Stdout)
	case "sheet":
		err = runSheet(os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}
