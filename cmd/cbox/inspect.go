package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/milk9111/cboxeditor/config"
	"github.com/milk9111/cboxeditor/framedata"
	"github.com/milk9111/cboxeditor/session"
	"github.com/milk9111/cboxeditor/sheet"
)

func runInspect(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	var src sources
	src.register(fs)
	anim := fs.String("anim", "", "Only report this animation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, cfg, err := src.load()
	if err != nil {
		return err
	}
	keys := sess.Keys()
	if *anim != "" {
		if _, ok := sess.Definition(*anim); !ok {
			return fmt.Errorf("cbox: inspect: unknown animation %s", *anim)
		}
		keys = []string{*anim}
	}
	return writeReport(w, sess, keys, newReportStyles(cfg))
}

type reportStyles struct {
	title      lipgloss.Style
	frame      lipgloss.Style
	dim        lipgloss.Style
	persistent lipgloss.Style
	kinds      map[framedata.Kind]lipgloss.Style
}

// newReportStyles colors each category the way contact sheets draw it.
func newReportStyles(cfg *config.Config) reportStyles {
	style := sheet.OptionsFromConfig(cfg)
	fg := func(c color.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(c)))
	}
	return reportStyles{
		title:      lipgloss.NewStyle().Bold(true),
		frame:      lipgloss.NewStyle().Bold(true).Width(4).Align(lipgloss.Right),
		dim:        lipgloss.NewStyle().Faint(true),
		persistent: fg(style.Persistent),
		kinds: map[framedata.Kind]lipgloss.Style{
			framedata.KindHurt: fg(style.Hurt),
			framedata.KindHit:  fg(style.Hit),
			framedata.KindPush: fg(style.Push),
		},
	}
}

func hexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// writeReport prints, for every logical frame, the sprite it shows, its
// anchor origin and the boxes in effect on it.
func writeReport(w io.Writer, sess *session.Session, keys []string, styles reportStyles) error {
	var b strings.Builder
	for _, key := range keys {
		def, ok := sess.Definition(key)
		if !ok {
			continue
		}
		anim := def.AnimDef
		n := sess.UniqueFrames(key)
		b.WriteString(styles.title.Render(key))
		b.WriteString(styles.dim.Render(fmt.Sprintf("  %d frames  %g fps  %s/%s", n, anim.FrameRate, anim.AssetKey, anim.Prefix)))
		b.WriteString("\n")
		if err := writeDefaultHit(&b, styles, def); err != nil {
			log.Printf("cbox: inspect %s: %v", key, err)
		}

		for i := 0; i < n; i++ {
			sprite := "no sprite"
			if sc, ok := sess.SpriteConfig(key, i); ok {
				sprite = sc.Filename
			}
			o := sess.Origin(key, i)
			fmt.Fprintf(&b, "%s  %s%s\n", styles.frame.Render(fmt.Sprint(i)), sprite,
				styles.dim.Render(fmt.Sprintf("  origin (%g, %g)", o.X, o.Y)))

			for _, kind := range []framedata.Kind{framedata.KindHurt, framedata.KindHit} {
				r := sess.ResolveBoxes(key, i, kind)
				if !r.Found() {
					continue
				}
				for _, box := range r.Def.Boxes {
					writeBox(&b, styles, kind, r.Resolution, r.Source, box.String())
				}
			}
			if r := sess.ResolvePushbox(key, i); r.Found() && r.Def.Box != nil {
				writeBox(&b, styles, framedata.KindPush, r.Resolution, r.Source, r.Def.Box.String())
			}
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeDefaultHit prints the animation-wide hit payload, if any.
func writeDefaultHit(b *strings.Builder, styles reportStyles, def *framedata.FrameDefinition) error {
	hit, err := def.DefaultHit()
	if err != nil || hit == nil {
		return err
	}
	data, err := json.Marshal(hit)
	if err != nil {
		return err
	}
	fmt.Fprintf(b, "      %s  %s\n", styles.kinds[framedata.KindHit].Render("default hit"), data)
	return nil
}

func writeBox(b *strings.Builder, styles reportStyles, kind framedata.Kind, res framedata.Resolution, source int, box string) {
	label := styles.kinds[kind].Render(fmt.Sprintf("%-4s", strings.ToLower(kind.String())))
	from := res.String()
	if res == framedata.ResolvedPersistent {
		from = styles.persistent.Render(fmt.Sprintf("persistent from %d", source))
	}
	fmt.Fprintf(b, "      %s  %s  %s\n", label, box, from)
}
