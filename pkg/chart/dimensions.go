package chart

// Margin is the space between the outer box and the drawing area.
type Margin struct {
	Top    float64 `json:"top,omitempty" toml:"top"`
	Right  float64 `json:"right,omitempty" toml:"right"`
	Bottom float64 `json:"bottom,omitempty" toml:"bottom"`
	Left   float64 `json:"left,omitempty" toml:"left"`
}

// Dimensions is the resolved chart box.
type Dimensions struct {
	OuterWidth  float64
	OuterHeight float64
	Margin      Margin
	InnerWidth  float64
	InnerHeight float64
}

// ResolveDimensions computes the drawing area inside width x height.
// Missing margin sides are 0. Inner sizes never go below 0.
func ResolveDimensions(width, height float64, margin Margin) Dimensions {
	return Dimensions{
		OuterWidth:  width,
		OuterHeight: height,
		Margin:      margin,
		InnerWidth:  max(0, width-margin.Left-margin.Right),
		InnerHeight: max(0, height-margin.Top-margin.Bottom),
	}
}
