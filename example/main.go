// Example opens a window whose clear color and a few scene parameters are
// edited through two tweak bars.
//
//	go run ./example/                     # OpenGL 4.1 core backend
//	go run ./example/ -legacy             # OpenGL 2.1 fixed-function backend
//	go run ./example/ -config tweak.toml  # scale and interaction settings
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	glcore "github.com/go-gl/gl/v4.1-core/gl"
	gllegacy "github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/tweakbar"
	"github.com/go-theft-auto/tweakbar/backend/glfwinput"
	"github.com/go-theft-auto/tweakbar/backend/legacy"
	"github.com/go-theft-auto/tweakbar/backend/opengl"
)

const (
	windowWidth  = 1024
	windowHeight = 720
	windowTitle  = "tweakbar example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	useLegacy := flag.Bool("legacy", false, "use the OpenGL 2.1 backend")
	configPath := flag.String("config", "", "TOML file with tweakbar settings")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	tweakbar.SetVerbose(*verbose)
	if err := run(*useLegacy, *configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// backend is what the example needs from either renderer.
type backend interface {
	tweakbar.Renderer
	Resize(width, height int)
	Delete()
}

// scene holds the variables the bars edit.
type scene struct {
	background tweakbar.Color
	exposure   float32
	samples    int
	vsync      bool
	paused     bool
	name       string
	resets     int
}

func run(useLegacy bool, configPath string) error {
	cfg := tweakbar.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = tweakbar.LoadConfigFile(configPath); err != nil {
			return err
		}
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	if !useLegacy {
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	} else {
		glfw.WindowHint(glfw.ContextVersionMajor, 2)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
	}

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	var r backend
	var clearScreen func(c tweakbar.Color, w, h int)
	if useLegacy {
		if err := gllegacy.Init(); err != nil {
			return fmt.Errorf("gl init: %w", err)
		}
		r = legacy.NewRenderer(window.GetFramebufferSize())
		clearScreen = func(c tweakbar.Color, w, h int) {
			gllegacy.Viewport(0, 0, int32(w), int32(h))
			gllegacy.ClearColor(c.R, c.G, c.B, 1)
			gllegacy.Clear(gllegacy.COLOR_BUFFER_BIT)
		}
	} else {
		if err := glcore.Init(); err != nil {
			return fmt.Errorf("gl init: %w", err)
		}
		core, err := opengl.NewRenderer(window.GetFramebufferSize())
		if err != nil {
			return fmt.Errorf("renderer: %w", err)
		}
		r = core
		clearScreen = func(c tweakbar.Color, w, h int) {
			glcore.Viewport(0, 0, int32(w), int32(h))
			glcore.ClearColor(c.R, c.G, c.B, 1)
			glcore.Clear(glcore.COLOR_BUFFER_BIT)
		}
	}
	defer r.Delete()

	tree, err := tweakbar.New(
		tweakbar.WithConfig(cfg),
		tweakbar.WithClipboard(glfwinput.Clipboard{Window: window}),
	)
	if err != nil {
		return err
	}
	defer tree.Close()

	sc := scene{
		background: tweakbar.Color{R: 0.12, G: 0.12, B: 0.14, A: 1},
		exposure:   1,
		samples:    4,
		vsync:      true,
		name:       "untitled",
	}
	if err := buildBars(tree, &sc, window); err != nil {
		return err
	}

	input := glfwinput.New(window)
	batch := tweakbar.NewBatch()

	for !window.ShouldClose() {
		glfw.PollEvents()
		in, dt := input.Update()

		w, h := window.GetFramebufferSize()
		r.Resize(w, h)
		clearScreen(sc.background, w, h)

		if err := tree.Frame(in, dt, batch, r); err != nil {
			fmt.Fprintln(os.Stderr, "tweakbar:", err)
		}
		input.EndFrame()
		window.SwapBuffers()
	}
	return nil
}

func buildBars(tree *tweakbar.Tree, sc *scene, window *glfw.Window) error {
	bar := tree.AddBar("Scene", 16, 16, 300, 0)
	if _, err := bar.AddTextField("Name", tweakbar.StringVar(&sc.name,
		tweakbar.OnChange(func() { window.SetTitle(windowTitle + ": " + sc.name) }))); err != nil {
		return err
	}
	exposure, err := bar.AddSlider("Exposure", tweakbar.FloatVar(&sc.exposure,
		tweakbar.WithRange(0, 4), tweakbar.WithStep(0.05)))
	if err != nil {
		return err
	}
	exposure.SetHelp("Scene brightness multiplier")
	if _, err := bar.AddSlider("Samples", tweakbar.IntVar(&sc.samples, tweakbar.WithRange(1, 16))); err != nil {
		return err
	}
	if _, err := bar.AddColorPicker("Background", tweakbar.ColorVar(&sc.background)); err != nil {
		return err
	}

	group := bar.AddGroup("Playback")
	if _, err := group.AddCheckBox("Paused", tweakbar.BoolVar(&sc.paused)); err != nil {
		return err
	}
	if _, err := group.AddCheckBox("VSync", tweakbar.BoolVar(&sc.vsync, tweakbar.OnChange(func() {
		if sc.vsync {
			glfw.SwapInterval(1)
		} else {
			glfw.SwapInterval(0)
		}
	}))); err != nil {
		return err
	}
	bar.AddSeparator()
	bar.AddButton("Reset", func() {
		sc.exposure, sc.samples, sc.resets = 1, 4, sc.resets+1
	})

	stats := tree.AddBar("Stats", 340, 16, 220, 0)
	stats.AddLabel("Read-only values")
	if _, err := stats.AddValue("Resets", tweakbar.IntVar(&sc.resets)); err != nil {
		return err
	}
	if _, err := stats.AddValue("Exposure", tweakbar.FloatVar(&sc.exposure)); err != nil {
		return err
	}
	_, err = stats.AddValue("Background", tweakbar.ColorVar(&sc.background))
	return err
}
