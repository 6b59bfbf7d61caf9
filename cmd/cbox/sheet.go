package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/cboxeditor/sheet"
)

func runSheet(args []string) error {
	fs := flag.NewFlagSet("sheet", flag.ContinueOnError)
	var src sources
	src.register(fs)
	anim := fs.String("anim", "", "Animation to render")
	out := fs.String("out", "", "Output PNG (defaults to <anim>.png)")
	scale := fs.Float64("scale", sheet.DefaultOptions.Scale, "Sprite scale")
	columns := fs.Int("columns", sheet.DefaultOptions.Columns, "Frames per row")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *anim == "" {
		return fmt.Errorf("cbox: sheet: -anim is required")
	}
	if *out == "" {
		*out = *anim + ".png"
	}

	sess, cfg, err := src.load()
	if err != nil {
		return err
	}
	opts := sheet.OptionsFromConfig(cfg)
	opts.Scale = *scale
	opts.Columns = *columns

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("cbox: sheet: %w", err)
	}
	if err := sheet.Write(f, sess, *anim, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cbox: sheet: close %s: %w", *out, err)
	}
	log.Printf("wrote %s", *out)
	return nil
}
