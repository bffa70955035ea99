package typeface

// ApplyStyles resolves the typeface for the requested style, weight and
// family against src. Unset style or weight inherit from base; an empty or
// unknown family falls back to base's family. With every attribute unset
// base is returned unchanged. src may be nil.
func ApplyStyles(base Typeface, style Style, weight Weight, family string, src Source) Typeface {
	if style == StyleUnset && weight == WeightUnset && family == "" {
		return base
	}

	italic := base.Italic
	if style != StyleUnset {
		italic = style == StyleItalic
	}
	w := base.Weight
	if weight != WeightUnset && weight.valid() {
		w = weight
	}
	if !w.valid() {
		w = WeightNormal
	}

	if src != nil {
		if family != "" {
			if tf, ok := src.Match(family, w, italic); ok {
				return tf
			}
		}
		if base.Family != "" {
			if tf, ok := src.Match(base.Family, w, italic); ok {
				return tf
			}
		}
	}

	// No registered face: keep the base face and record the synthetic style.
	return Typeface{Family: base.Family, Weight: w, Italic: italic, Face: base.Face}
}

// FindEffective resolves the typeface for provider's font attributes.
func FindEffective(provider FontAttributeProvider, base Typeface, src Source) Typeface {
	if provider == nil {
		return base
	}
	a := provider.FontAttributes()
	return ApplyStyles(base, a.Style, a.Weight, a.Family, src)
}
