package logutil

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Color semantic purposes:
// - Blue: Model names, interactive elements
// - Cyan: Processing state, info
// - Green: Success, completion
// - Yellow: Warnings, rate limits
// - Red: Errors, failures
// - Gray: Muted: timing, paths, separators
// - White: Section headers (bold)

// ColorScheme defines the color palette for modern clean CLI output.
// It provides semantic color mapping for different types of output elements,
// automatically adapting between interactive (colored) and CI (uncolored) environments.
type ColorScheme struct {
	ModelName     *color.Color
	Success       *color.Color
	Warning       *color.Color
	Error         *color.Color
	Info          *color.Color
	Duration      *color.Color
	FileSize      *color.Color
	FilePath      *color.Color
	SectionHeader *color.Color
	Separator     *color.Color
	Symbol        *color.Color
	enabled       bool
}

// newColor builds a color.Color with its output forced on or off to match
// enabled, independent of fatih/color's own global NO_COLOR/TTY detection.
func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	if !enabled {
		c.DisableColor()
	}
	return c
}

// NewColorScheme creates a new ColorScheme based on environment type.
// If interactive is true, returns a scheme with adaptive colors.
// If interactive is false, returns a scheme with no colors.
func NewColorScheme(interactive bool) *ColorScheme {
	return &ColorScheme{
		ModelName:     newColor(interactive, color.FgBlue),
		Success:       newColor(interactive, color.FgGreen),
		Warning:       newColor(interactive, color.FgYellow),
		Error:         newColor(interactive, color.FgRed),
		Info:          newColor(interactive, color.FgCyan),
		Duration:      newColor(interactive, color.FgHiBlack),
		FileSize:      newColor(interactive, color.FgHiBlack),
		FilePath:      newColor(interactive, color.FgHiBlack),
		SectionHeader: newColor(interactive, color.FgWhite, color.Bold),
		Separator:     newColor(interactive, color.FgHiBlack),
		Symbol:        newColor(interactive, color.FgBlue),
		enabled:       interactive,
	}
}

// ApplyColor applies the specified color (a fatih/color attribute name such
// as "green" or "red") to text if the scheme supports colors. Unknown color
// names fall back to no styling.
func (cs *ColorScheme) ApplyColor(colorName, text string) string {
	if colorName == "" || !cs.enabled {
		return text
	}
	attr, ok := namedAttributes[colorName]
	if !ok {
		return text
	}
	return newColor(true, attr).Sprint(text)
}

// namedAttributes maps the hex-ish semantic names historically used by
// callers onto fatih/color foreground attributes.
var namedAttributes = map[string]color.Attribute{
	"#22C55E": color.FgGreen,
	"#EF4444": color.FgRed,
	"#FBBF24": color.FgYellow,
	"#3B82F6": color.FgBlue,
	"#06B6D4": color.FgCyan,
	"#9CA3AF": color.FgHiBlack,
}

func (cs *ColorScheme) applyStyle(c *color.Color, text string) string {
	if !cs.enabled {
		return text
	}
	return c.Sprint(text)
}

// ColorModelName applies the model name color to text
func (cs *ColorScheme) ColorModelName(text string) string {
	return cs.applyStyle(cs.ModelName, text)
}

// ColorSuccess applies the success color to text
func (cs *ColorScheme) ColorSuccess(text string) string {
	return cs.applyStyle(cs.Success, text)
}

// ColorWarning applies the warning color to text
func (cs *ColorScheme) ColorWarning(text string) string {
	return cs.applyStyle(cs.Warning, text)
}

// ColorError applies the error color to text
func (cs *ColorScheme) ColorError(text string) string {
	return cs.applyStyle(cs.Error, text)
}

// ColorInfo applies the info color to text
func (cs *ColorScheme) ColorInfo(text string) string {
	return cs.applyStyle(cs.Info, text)
}

// ColorDuration applies the duration color to text
func (cs *ColorScheme) ColorDuration(text string) string {
	return cs.applyStyle(cs.Duration, text)
}

// ColorFileSize applies the file size color to text
func (cs *ColorScheme) ColorFileSize(text string) string {
	return cs.applyStyle(cs.FileSize, text)
}

// ColorFilePath applies the file path color to text
func (cs *ColorScheme) ColorFilePath(text string) string {
	return cs.applyStyle(cs.FilePath, text)
}

// ColorSectionHeader applies the section header color to text
func (cs *ColorScheme) ColorSectionHeader(text string) string {
	return cs.applyStyle(cs.SectionHeader, text)
}

// ColorSeparator applies the separator color to text
func (cs *ColorScheme) ColorSeparator(text string) string {
	return cs.applyStyle(cs.Separator, text)
}

// ColorSymbol applies the symbol color to text
func (cs *ColorScheme) ColorSymbol(text string) string {
	return cs.applyStyle(cs.Symbol, text)
}

// NewColorSchemeFromEnvironment creates a ColorScheme by detecting the current environment.
// Uses the same detection logic as the console writer for consistency.
func NewColorSchemeFromEnvironment() *ColorScheme {
	isInteractive := detectInteractiveEnvironmentForColors(defaultIsTerminalForColors)
	return NewColorScheme(isInteractive)
}

// detectInteractiveEnvironmentForColors determines if we're running in an interactive
// environment based on TTY detection and CI environment variables.
// This is a copy of the logic from console_writer.go to avoid circular dependencies.
func detectInteractiveEnvironmentForColors(isTerminalFunc func() bool) bool {
	return detectInteractiveEnvironmentWithEnvForColors(isTerminalFunc, getEnvForColors)
}

// detectInteractiveEnvironmentWithEnvForColors determines if we're running in an interactive
// environment with injectable environment function for testing.
func detectInteractiveEnvironmentWithEnvForColors(isTerminalFunc func() bool, getEnvFunc func(string) string) bool {
	// Check common CI environment variables
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"CONTINUOUS_INTEGRATION",
		"GITLAB_CI",
		"TRAVIS",
		"CIRCLECI",
		"JENKINS_URL",
		"BUILDKITE",
	}

	for _, envVar := range ciVars {
		value := getEnvFunc(envVar)
		if value != "" && (value == "true" || envVar == "JENKINS_URL") {
			return false
		}
	}

	// If not in CI and stdout is a terminal, we're interactive
	return isTerminalFunc()
}

// defaultIsTerminalForColors uses mattn/go-isatty to detect if stdout is a terminal
func defaultIsTerminalForColors() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// getEnvForColors gets environment variables using os.Getenv
func getEnvForColors(key string) string {
	return os.Getenv(key)
}

// SymbolSet defines the symbols used for different states and UI elements.
// Provides both Unicode and ASCII alternatives for maximum compatibility.
type SymbolSet struct {
	Success    string // ✓ or [OK]
	Error      string // ✗ or [X]
	Warning    string // ⚠ or [!]
	Bullet     string // ● or *
	Sparkles   string // ✨ or **
	Processing string // ... or ...
}

// UnicodeSymbols provides modern Unicode symbols for interactive terminals
var UnicodeSymbols = SymbolSet{
	Success:    "✓",
	Error:      "✗",
	Warning:    "⚠",
	Bullet:     "●",
	Sparkles:   "✨",
	Processing: "...",
}

// ASCIISymbols provides ASCII alternatives for limited terminals
var ASCIISymbols = SymbolSet{
	Success:    "[OK]",
	Error:      "[X]",
	Warning:    "[!]",
	Bullet:     "*",
	Sparkles:   "**",
	Processing: "...",
}

// SymbolProvider handles Unicode fallback detection and symbol selection
type SymbolProvider struct {
	symbols SymbolSet
}

// NewSymbolProvider creates a symbol provider with Unicode detection
func NewSymbolProvider(isInteractive bool) *SymbolProvider {
	// In non-interactive environments, always use ASCII for better compatibility
	if !isInteractive {
		return &SymbolProvider{symbols: ASCIISymbols}
	}

	// For interactive environments, detect Unicode support
	if supportsUnicode() {
		return &SymbolProvider{symbols: UnicodeSymbols}
	}

	return &SymbolProvider{symbols: ASCIISymbols}
}

// GetSymbols returns the current symbol set
func (sp *SymbolProvider) GetSymbols() SymbolSet {
	return sp.symbols
}

// supportsUnicode detects if the current terminal supports Unicode properly.
// This is a heuristic approach that checks common indicators.
func supportsUnicode() bool {
	// Check locale environment variables for UTF-8 support
	locale := os.Getenv("LC_ALL")
	if locale == "" {
		locale = os.Getenv("LC_CTYPE")
	}
	if locale == "" {
		locale = os.Getenv("LANG")
	}

	// If locale contains UTF-8, Unicode is likely supported
	if strings.Contains(strings.ToUpper(locale), "UTF-8") || strings.Contains(strings.ToUpper(locale), "UTF8") {
		return true
	}

	// Check terminal type indicators
	term := os.Getenv("TERM")

	// Modern terminals typically support Unicode
	modernTerms := []string{"xterm-256color", "screen-256color", "tmux-256color", "alacritty", "kitty"}
	for _, modernTerm := range modernTerms {
		if strings.Contains(term, modernTerm) {
			return true
		}
	}

	// Check for Windows Terminal, VS Code terminal, etc.
	if os.Getenv("WT_SESSION") != "" || os.Getenv("VSCODE_INJECTION") != "" {
		return true
	}

	// Conservative fallback: if we can't detect Unicode support, use ASCII
	return false
}
