package obf

// KnownUnits returns the default unit vocabulary: time (ms, sec, unix
// time), distance, degrees of visual angle, Hertz, pixels, norm units,
// color spaces, percents, boolean flavors, and text encodings. Units
// are matched case-insensitively; the engine stores them lower-cased
// and never converts between them.
func KnownUnits() []string {
	return []string{
		"ms", "sec", "utime",
		"cm", "deg", "hz", "pix", "norm",
		"rgb", "dkl", "lms",
		"percent",
		"tf", "yn", "bool",
		"hex", "base64",
	}
}
