/*
Package tweakbar provides an embeddable overlay of tweak bars: small panels
of widgets bound to host variables, drawn on top of a 3D application through
an abstract renderer.

# Overview

A Tree owns the bars. Widgets are created once, bound to variables the host
keeps, and edited in place by the user. The tree never owns a value: a slider
writes straight through its *float32 and calls the optional change callback.

All geometry goes through a Batch, which groups triangles and glyph quads by
render state (layer, texture, blend mode, clip rectangle) and submits one
draw call per group when flushed. Any graphics API can draw the overlay by
implementing Renderer; backend/opengl and backend/legacy are provided.

# Quick Start

	tree, _ := tweakbar.New()
	bar := tree.AddBar("Scene", 10, 10, 260, 0)
	bar.AddSlider("Exposure", tweakbar.FloatVar(&exposure, tweakbar.WithRange(0, 4)))
	bar.AddCheckBox("Wireframe", tweakbar.BoolVar(&wireframe))
	bar.AddColorPicker("Fog", tweakbar.ColorVar(&fog))
	bar.AddButton("Reset", reset)

	batch := tweakbar.NewBatch()
	for !window.ShouldClose() {
	    in := adapter.Update()
	    renderScene()
	    if err := tree.Frame(in, dt, batch, renderer); err != nil {
	        log.Print(err)
	    }
	    window.SwapBuffers()
	}

Frame is Update, Draw and Flush in sequence. Hosts that need to interleave
their own work may call the three directly, in that order.

# Interaction

Each widget moves through Idle, Hovered, Pressed and Dragging. A press that
moves further than Config.DragDeadzone becomes a drag; a release without a
drag inside the widget is a click. Sliders and color pickers commit values
live while dragging.

Keyboard:

	Tab / Shift+Tab  Cycle focus through sliders, checkboxes and text fields
	Left / Right     Step a focused slider, move the text cursor
	Home / End       Slider minimum and maximum, text start and end
	Space / Enter    Toggle a focused checkbox
	Enter            Commit a text field
	Escape           Drop a text edit, release focus
	Ctrl+C/X/V       Clipboard in text fields (see WithClipboard)

# Configuration

Config carries the UI and text scale plus interaction tuning. It can be
loaded from TOML:

	ui_scale = 1.5
	text_scale = 1.0
	drag_deadzone = 3.0
	tooltip_delay = 0.6
	scroll_speed = 3.0

# Logging

The package logs through log/slog. SetVerbose enables debug output from the
default logger; WithLogger routes a tree's logs elsewhere.
*/
package tweakbar
