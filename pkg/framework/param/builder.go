package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	name    string
	tag     string
	unit    string
	min     float64
	max     float64
	def     float64
	decibel bool
	format  func(float64) string
}

// New creates a new parameter builder with range [0, 1] and default 0
func New(name, tag string) *Builder {
	return &Builder{
		name: name,
		tag:  tag,
		min:  0,
		max:  1,
	}
}

// Range sets the min and max raw values
func (b *Builder) Range(min, max float64) *Builder {
	b.min = min
	b.max = max
	return b
}

// Default sets the raw default value
func (b *Builder) Default(value float64) *Builder {
	b.def = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.unit = unit
	return b
}

// Decibel makes the parameter store linear amplitude and show decibels.
// Range and Default stay linear.
func (b *Builder) Decibel() *Builder {
	b.decibel = true
	if b.unit == "" {
		b.unit = "dB"
	}
	return b
}

// Toggle creates an off/on parameter
func (b *Builder) Toggle() *Builder {
	b.min = 0
	b.max = 1
	b.def = 0
	b.format = OnOffFormatter
	return b
}

// Formatter sets custom display formatting for plain parameters
func (b *Builder) Formatter(format func(float64) string) *Builder {
	b.format = format
	return b
}

// Build validates and returns the configured parameter
func (b *Builder) Build() (*Param, error) {
	var t ValueTransform = Linear{format: b.format}
	if b.decibel {
		t = Decibel{}
	}
	return newParam(b.name, b.tag, b.unit, b.min, b.max, b.def, 0, t)
}

// MustBuild is Build for static parameter tables; it panics on error.
func (b *Builder) MustBuild() *Param {
	p, err := b.Build()
	if err != nil {
		panic(err)
	}
	return p
}
