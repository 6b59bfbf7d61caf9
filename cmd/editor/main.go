package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/cboxeditor/config"
	"github.com/milk9111/cboxeditor/session"
	"github.com/milk9111/cboxeditor/watch"
)

const appName = "cboxeditor"

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var sheets stringList
	defPath := flag.String("def", "", "Frame definition JSON to edit")
	flag.Var(&sheets, "sheet", "Texture atlas JSON; repeat for each sprite sheet")
	configPath := flag.String("config", "", "Editor config YAML (defaults to the embedded editor.yaml)")
	watchFiles := flag.Bool("watch", false, "Reload the definition and sheets when they change on disk")
	outPath := flag.String("out", "", "Export destination (defaults to the definition file)")
	flag.Parse()

	log.Println("Editor starting...")
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := config.OpenPrefStore(appName)
	prefs, err := store.Load()
	if err != nil {
		log.Printf("Failed to load prefs: %v", err)
	}
	if prefs != nil {
		if *defPath == "" {
			*defPath = prefs.LastDefinition
		}
		if len(sheets) == 0 {
			sheets = prefs.Sheets
		}
	}

	sess := session.New(cfg)
	if *defPath != "" {
		data, err := os.ReadFile(*defPath)
		if err != nil {
			log.Fatalf("Failed to read definition: %v", err)
		}
		if err := sess.LoadDefinition(filepath.Base(*defPath), data); err != nil {
			log.Fatalf("Failed to load definition: %v", err)
		}
	}
	for _, sheet := range sheets {
		if err := sess.LoadSpriteSheetFile(sheet); err != nil {
			log.Printf("Failed to load sprite sheet: %v", err)
		}
	}

	var watcher *watch.Watcher
	if *watchFiles {
		paths := append([]string{}, sheets...)
		if *defPath != "" {
			paths = append(paths, *defPath)
		}
		watcher, err = watch.New(paths...)
		if err != nil {
			log.Printf("Failed to watch files: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	game := NewEditor(cfg, sess, EditorOptions{
		DefPath:    *defPath,
		SheetPaths: sheets,
		OutPath:    *outPath,
		Watcher:    watcher,
		Prefs:      prefs,
	})

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("cbox editor")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
	if err := store.Save(game.Prefs()); err != nil {
		log.Printf("Failed to save prefs: %v", err)
	}
}
