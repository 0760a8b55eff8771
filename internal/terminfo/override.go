package terminfo

// Capabilities forced onto the target entry.
const (
	CapColors   = "Co"  // number of colors
	CapTermName = "TN"  // terminal name
	CapRGB      = "RGB" // bits per color channel
)

// Overrides are the values forced onto the target entry before it is
// serialized.
type Overrides struct {
	Colors  int64
	RGBBits int64
}

// DefaultOverrides advertises 256 colors and 8 bits per RGB channel.
func DefaultOverrides() Overrides {
	return Overrides{Colors: 256, RGBBits: 8}
}

// Apply removes any RGB capability the entry declared and then forces Co,
// TN and RGB. Forced values replace existing ones, so Apply is idempotent.
func (o Overrides) Apply(f *Fragment, targetName string) {
	if f.Has(CapRGB) {
		// Presence was just checked, Delete cannot fail.
		_ = f.Delete(CapRGB)
	}
	f.Set(NewInt(CapColors, o.Colors))
	f.Set(NewString(CapTermName, targetName))
	f.Set(NewInt(CapRGB, o.RGBBits))
}
