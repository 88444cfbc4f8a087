package ui

// Color accessor functions return the escape code of the corresponding
// category in the currently active theme. Presentation code uses these
// instead of raw escape codes so theme switches and NO_COLOR apply
// everywhere at once.

// ColorPrimary returns the primary accent color code.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorBlue returns the primary accent color code (alias kept for
// readability at call sites that color names or identifiers).
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorCyan returns the informational color code.
func ColorCyan() string { return GetCurrentTheme().Info }

// ColorMagenta returns the informational color code used for highlighted values.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorGreen returns the success color code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGrey returns the secondary color code.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold attribute code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline attribute code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the formatting reset code.
func ColorReset() string { return GetCurrentTheme().Reset }
