package model

// SizeCategory is the user's preferred text size. Larger categories need
// wider cells, so the category drives the minimum cell width.
type SizeCategory string

const (
	SizeCategoryExtraSmall                        SizeCategory = "extra-small"
	SizeCategorySmall                             SizeCategory = "small"
	SizeCategoryMedium                            SizeCategory = "medium"
	SizeCategoryLarge                             SizeCategory = "large"
	SizeCategoryExtraLarge                        SizeCategory = "extra-large"
	SizeCategoryExtraExtraLarge                   SizeCategory = "extra-extra-large"
	SizeCategoryExtraExtraExtraLarge              SizeCategory = "extra-extra-extra-large"
	SizeCategoryAccessibilityMedium               SizeCategory = "accessibility-medium"
	SizeCategoryAccessibilityLarge                SizeCategory = "accessibility-large"
	SizeCategoryAccessibilityExtraLarge           SizeCategory = "accessibility-extra-large"
	SizeCategoryAccessibilityExtraExtraLarge      SizeCategory = "accessibility-extra-extra-large"
	SizeCategoryAccessibilityExtraExtraExtraLarge SizeCategory = "accessibility-extra-extra-extra-large"
)

// SizeCategories lists every category from smallest to largest.
var SizeCategories = []SizeCategory{
	SizeCategoryExtraSmall,
	SizeCategorySmall,
	SizeCategoryMedium,
	SizeCategoryLarge,
	SizeCategoryExtraLarge,
	SizeCategoryExtraExtraLarge,
	SizeCategoryExtraExtraExtraLarge,
	SizeCategoryAccessibilityMedium,
	SizeCategoryAccessibilityLarge,
	SizeCategoryAccessibilityExtraLarge,
	SizeCategoryAccessibilityExtraExtraLarge,
	SizeCategoryAccessibilityExtraExtraExtraLarge,
}

// Suggested card height used by hosts that need a fixed placeholder size.
const suggestedCellHeight = 340.0

// fontScales approximate the system's dynamic type scaling relative to "large".
var fontScales = map[SizeCategory]float64{
	SizeCategoryExtraSmall:                        0.82,
	SizeCategorySmall:                             0.88,
	SizeCategoryMedium:                            0.94,
	SizeCategoryLarge:                             1.0,
	SizeCategoryExtraLarge:                        1.12,
	SizeCategoryExtraExtraLarge:                   1.24,
	SizeCategoryExtraExtraExtraLarge:              1.35,
	SizeCategoryAccessibilityMedium:               1.65,
	SizeCategoryAccessibilityLarge:                1.95,
	SizeCategoryAccessibilityExtraLarge:           2.35,
	SizeCategoryAccessibilityExtraExtraLarge:      2.75,
	SizeCategoryAccessibilityExtraExtraExtraLarge: 3.12,
}

// MinimumCellWidth returns the narrowest cell that still fits a card at this
// text size. Unknown categories get the standard width.
func (c SizeCategory) MinimumCellWidth() float64 {
	switch c {
	case SizeCategoryAccessibilityMedium:
		return 360
	case SizeCategoryAccessibilityLarge:
		return 400
	case SizeCategoryAccessibilityExtraLarge,
		SizeCategoryAccessibilityExtraExtraLarge,
		SizeCategoryAccessibilityExtraExtraExtraLarge:
		return 450
	default:
		return 320
	}
}

// SuggestedSize returns the placeholder card size for this category.
func (c SizeCategory) SuggestedSize() Size {
	return Size{Width: c.MinimumCellWidth(), Height: suggestedCellHeight}
}

// FontScale returns the text scale factor relative to the "large" category.
func (c SizeCategory) FontScale() float64 {
	if s, ok := fontScales[c]; ok {
		return s
	}
	return 1.0
}

// IsAccessibility reports whether c is one of the accessibility sizes.
func (c SizeCategory) IsAccessibility() bool {
	switch c {
	case SizeCategoryAccessibilityMedium,
		SizeCategoryAccessibilityLarge,
		SizeCategoryAccessibilityExtraLarge,
		SizeCategoryAccessibilityExtraExtraLarge,
		SizeCategoryAccessibilityExtraExtraExtraLarge:
		return true
	}
	return false
}

func (c SizeCategory) String() string {
	if c == "" {
		return string(SizeCategoryLarge)
	}
	return string(c)
}

// ParseSizeCategory returns the category named s. Unknown names return
// SizeCategoryLarge and false.
func ParseSizeCategory(s string) (SizeCategory, bool) {
	for _, c := range SizeCategories {
		if string(c) == s {
			return c, true
		}
	}
	return SizeCategoryLarge, false
}

// SizeCategoryNames returns the category names in size order.
func SizeCategoryNames() []string {
	names := make([]string, 0, len(SizeCategories))
	for _, c := range SizeCategories {
		names = append(names, string(c))
	}
	return names
}
