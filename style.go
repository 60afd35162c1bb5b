package tweakbar

// Style defines the visual appearance of bars and widgets.
// Sizes are in unscaled pixels; the tree multiplies them by Config.UIScale.
type Style struct {
	// Text
	TextColor         uint32
	TextDisabledColor uint32
	ValueTextColor    uint32

	// Panel
	PanelColor           uint32
	PanelBorderColor     uint32
	PanelHeaderBgColor   uint32
	PanelHeaderTextColor uint32

	// Button
	ButtonColor         uint32
	ButtonHoveredColor  uint32
	ButtonActiveColor   uint32
	ButtonDisabledColor uint32

	// Input (text field, checkbox box)
	InputBgColor        uint32
	InputFocusedBgColor uint32
	InputBorderColor    uint32
	CheckMarkColor      uint32
	CursorColor         uint32

	// Slider
	SliderTrackColor  uint32
	SliderFillColor   uint32
	SliderGrabColor   uint32
	SliderGrabHovered uint32
	SliderGrabActive  uint32

	// Misc
	SeparatorColor     uint32
	ScrollbarGrabColor uint32
	FocusColor         uint32
	TooltipBgColor     uint32

	// Sizing
	ItemSpacing   float32 // Vertical gap between rows
	PanelPadding  float32
	ButtonPadding float32
	InputPadding  float32
	BorderSize    float32
	ScrollbarSize float32
	LabelFraction float32 // Share of a row's width given to the label column
}

// DefaultStyle returns the default dark style.
func DefaultStyle() Style {
	return Style{
		TextColor:         ColorWhite,
		TextDisabledColor: ColorGray,
		ValueTextColor:    RGBA(220, 220, 160, 255),

		PanelColor:           RGBA(20, 20, 20, 200),
		PanelBorderColor:     RGBA(80, 80, 80, 255),
		PanelHeaderBgColor:   RGBA(40, 40, 45, 255),
		PanelHeaderTextColor: ColorWhite,

		ButtonColor:         RGBA(50, 50, 50, 255),
		ButtonHoveredColor:  RGBA(70, 70, 70, 255),
		ButtonActiveColor:   RGBA(90, 90, 90, 255),
		ButtonDisabledColor: RGBA(30, 30, 30, 255),

		InputBgColor:        RGBA(30, 30, 30, 255),
		InputFocusedBgColor: RGBA(40, 40, 50, 255),
		InputBorderColor:    RGBA(100, 100, 100, 255),
		CheckMarkColor:      RGBA(120, 200, 255, 255),
		CursorColor:         ColorWhite,

		SliderTrackColor:  RGBA(40, 40, 40, 255),
		SliderFillColor:   RGBA(50, 100, 150, 255),
		SliderGrabColor:   RGBA(100, 100, 100, 255),
		SliderGrabHovered: RGBA(120, 120, 120, 255),
		SliderGrabActive:  RGBA(140, 140, 140, 255),

		SeparatorColor:     RGBA(80, 80, 80, 255),
		ScrollbarGrabColor: RGBA(80, 80, 80, 255),
		FocusColor:         RGBA(0, 200, 255, 255),
		TooltipBgColor:     RGBA(10, 10, 10, 240),

		ItemSpacing:   2,
		PanelPadding:  6,
		ButtonPadding: 4,
		InputPadding:  3,
		BorderSize:    1,
		ScrollbarSize: 6,
		LabelFraction: 0.45,
	}
}

// LightStyle returns a light theme for bright scenes.
func LightStyle() Style {
	s := DefaultStyle()
	s.TextColor = RGBA(20, 20, 20, 255)
	s.TextDisabledColor = RGBA(140, 140, 140, 255)
	s.ValueTextColor = RGBA(30, 50, 120, 255)
	s.PanelColor = RGBA(235, 235, 235, 220)
	s.PanelBorderColor = RGBA(150, 150, 150, 255)
	s.PanelHeaderBgColor = RGBA(200, 200, 210, 255)
	s.PanelHeaderTextColor = RGBA(20, 20, 20, 255)
	s.ButtonColor = RGBA(210, 210, 210, 255)
	s.ButtonHoveredColor = RGBA(190, 200, 215, 255)
	s.ButtonActiveColor = RGBA(170, 185, 205, 255)
	s.ButtonDisabledColor = RGBA(225, 225, 225, 255)
	s.InputBgColor = RGBA(250, 250, 250, 255)
	s.InputFocusedBgColor = RGBA(255, 255, 240, 255)
	s.CursorColor = RGBA(20, 20, 20, 255)
	s.SliderTrackColor = RGBA(200, 200, 200, 255)
	s.SliderFillColor = RGBA(110, 150, 210, 255)
	s.TooltipBgColor = RGBA(255, 255, 225, 240)
	return s
}
