package sim

// Padding is the bezel drawn around the panel, in window pixels.
type Padding struct {
	Top    int32
	Right  int32
	Bottom int32
	Left   int32
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(value int32) Padding {
	return Padding{
		Top:    value,
		Right:  value,
		Bottom: value,
		Left:   value,
	}
}

func (p Padding) horizontal() int32 { return p.Left + p.Right }
func (p Padding) vertical() int32   { return p.Top + p.Bottom }
