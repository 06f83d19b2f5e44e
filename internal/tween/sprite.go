package tween

// Sprite is a ready-made Target with position, opacity and scale.
type Sprite struct {
	Name  string
	Glyph rune

	X, Y  float64
	Alpha float64
	Scale float64
}

// NewSprite returns a fully opaque sprite at unit scale.
func NewSprite(name string, glyph rune, x, y float64) *Sprite {
	return &Sprite{Name: name, Glyph: glyph, X: x, Y: y, Alpha: 1, Scale: 1}
}

// Property implements Target. Unknown names read as zero.
func (s *Sprite) Property(name string) float64 {
	switch name {
	case "x":
		return s.X
	case "y":
		return s.Y
	case "alpha":
		return s.Alpha
	case "scale":
		return s.Scale
	}
	return 0
}

// SetProperty implements Target. Unknown names are ignored.
func (s *Sprite) SetProperty(name string, v float64) {
	switch name {
	case "x":
		s.X = v
	case "y":
		s.Y = v
	case "alpha":
		s.Alpha = v
	case "scale":
		s.Scale = v
	}
}

// Visible reports whether the sprite should be drawn at all.
func (s *Sprite) Visible() bool {
	return s.Alpha > 0.05 && s.Scale > 0.05
}
