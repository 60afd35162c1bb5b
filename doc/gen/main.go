// Command gen renders every widget with sample data through the software
// backend and saves PNG screenshots to doc/imgs/.
//
// Usage:
//
//	go run ./doc/gen/
//	go run ./doc/gen/ -style light -scale 2
package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/go-theft-auto/tweakbar"
	"github.com/go-theft-auto/tweakbar/backend/raster"
)

func main() {
	outDir := flag.String("out", filepath.Join("doc", "imgs"), "output directory")
	style := flag.String("style", "dark", "dark or light")
	scale := flag.Float64("scale", 1, "UI scale")
	flag.Parse()

	if err := run(*outDir, *style, float32(*scale)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single bar screenshot to capture.
type screenshot struct {
	name   string // filename without extension
	width  int
	height int
	build  func(bar *tweakbar.Panel) error
	frames int // frames to render (0 = default 1)
}

func run(outDir, styleName string, scale float32) error {
	style := tweakbar.DefaultStyle()
	if styleName == "light" {
		style = tweakbar.LightStyle()
	}
	cfg := tweakbar.DefaultConfig()
	cfg.UIScale = scale
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		s.width = int(float32(s.width) * scale)
		s.height = int(float32(s.height) * scale)
		if err := capture(s, cfg, style, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.png (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func capture(s screenshot, cfg tweakbar.Config, style tweakbar.Style, outDir string) error {
	// Fresh tree per screenshot so no state leaks between captures.
	tree, err := tweakbar.New(tweakbar.WithConfig(cfg), tweakbar.WithStyle(style))
	if err != nil {
		return err
	}
	defer tree.Close()

	bar := tree.AddBar(s.name, 0, 0, float32(s.width), float32(s.height))
	if err := s.build(bar); err != nil {
		return err
	}

	r := raster.New(s.width, s.height)
	batch := tweakbar.NewBatch()
	frames := max(s.frames, 1)
	for range frames {
		r.Clear(color.NRGBA{R: 31, G: 31, B: 36, A: 255})
		if err := tree.Frame(tweakbar.NewInputState(), 1.0/60.0, batch, r); err != nil {
			return err
		}
	}

	path := filepath.Join(outDir, s.name+".png")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, r.Target)
}

// buildScreenshots returns the list of all widget screenshots to generate.
func buildScreenshots() []screenshot {
	// Shared state for widgets that need pointers.
	var (
		checked     = true
		unchecked   = false
		inputText   = "Hello, world!"
		sliderFloat = float32(0.65)
		sliderInt   = 7
		numFloat    = float32(3.14)
		tint        = tweakbar.Color{R: 0.9, G: 0.45, B: 0.2, A: 1}
		counter     = 42
	)

	return []screenshot{
		{
			name: "button", width: 280, height: 90,
			build: func(bar *tweakbar.Panel) error {
				bar.AddButton("Standard Button", nil)
				bar.AddButton("Another Button", nil).SetEnabled(false)
				return nil
			},
		},
		{
			name: "checkbox", width: 280, height: 90,
			build: func(bar *tweakbar.Panel) error {
				if _, err := bar.AddCheckBox("Enabled feature", tweakbar.BoolVar(&checked)); err != nil {
					return err
				}
				_, err := bar.AddCheckBox("Disabled feature", tweakbar.BoolVar(&unchecked))
				return err
			},
		},
		{
			name: "slider", width: 300, height: 90,
			build: func(bar *tweakbar.Panel) error {
				if _, err := bar.AddSlider("Volume", tweakbar.FloatVar(&sliderFloat, tweakbar.WithRange(0, 1))); err != nil {
					return err
				}
				_, err := bar.AddSlider("Level", tweakbar.IntVar(&sliderInt, tweakbar.WithRange(0, 10)))
				return err
			},
		},
		{
			name: "text_field", width: 300, height: 90,
			build: func(bar *tweakbar.Panel) error {
				if _, err := bar.AddTextField("Name", tweakbar.StringVar(&inputText)); err != nil {
					return err
				}
				_, err := bar.AddTextField("Position", tweakbar.FloatVar(&numFloat))
				return err
			},
		},
		{
			name: "color_picker", width: 300, height: 140,
			build: func(bar *tweakbar.Panel) error {
				_, err := bar.AddColorPicker("Tint", tweakbar.ColorVar(&tint))
				return err
			},
		},
		{
			name: "color_picker_hsv", width: 300, height: 140,
			build: func(bar *tweakbar.Panel) error {
				cp, err := bar.AddColorPicker("Tint", tweakbar.ColorVar(&tint))
				if err != nil {
					return err
				}
				cp.SetMode(tweakbar.ColorModeHSV)
				return nil
			},
		},
		{
			name: "label", width: 280, height: 110,
			build: func(bar *tweakbar.Panel) error {
				bar.AddLabel("Static text")
				if _, err := bar.AddValue("Counter", tweakbar.IntVar(&counter)); err != nil {
					return err
				}
				_, err := bar.AddValue("Tint", tweakbar.ColorVar(&tint))
				return err
			},
		},
		{
			name: "group", width: 300, height: 150,
			build: func(bar *tweakbar.Panel) error {
				g := bar.AddGroup("Rendering")
				if _, err := g.AddCheckBox("Shadows", tweakbar.BoolVar(&checked)); err != nil {
					return err
				}
				closed := bar.AddGroup("Collapsed group")
				closed.AddLabel("hidden")
				closed.SetCollapsed(true)
				bar.AddSeparator()
				bar.AddButton("Apply", nil)
				return nil
			},
		},
		{
			name: "scroll", width: 260, height: 120,
			build: func(bar *tweakbar.Panel) error {
				for i := range 10 {
					bar.AddLabel(fmt.Sprintf("Row %d", i+1))
				}
				return nil
			},
		},
	}
}
