package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Settings holds the tunable parts of a celebration.
// Zero values are replaced by the package defaults on load.
type Settings struct {
	Language       string        `yaml:"language"`
	TotalCandles   int           `yaml:"total_candles"`
	TotalBalloons  int           `yaml:"total_balloons"`
	TickPeriod     time.Duration `yaml:"tick_period"`
	ConfettiPieces int           `yaml:"confetti_pieces"`
	Palette        []string      `yaml:"palette"`
}

// DefaultSettings returns the stock celebration: 5 candles, 5 balloons,
// a 500ms celebrate tick and a 500-piece burst in the 7-color palette.
func DefaultSettings() Settings {
	palette := make([]string, len(ConfettiColors))
	copy(palette, ConfettiColors)
	return Settings{
		TotalCandles:   TotalCandles,
		TotalBalloons:  TotalBalloons,
		TickPeriod:     CelebrateTickPeriod,
		ConfettiPieces: ConfettiPieces,
		Palette:        palette,
	}
}

// LoadSettings reads a YAML settings file. An empty path yields the defaults.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}

	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsInvalid, err)
	}
	return s, nil
}

func (s *Settings) applyDefaults() {
	def := DefaultSettings()
	if s.TotalCandles == 0 {
		s.TotalCandles = def.TotalCandles
	}
	if s.TotalBalloons == 0 {
		s.TotalBalloons = def.TotalBalloons
	}
	if s.TickPeriod == 0 {
		s.TickPeriod = def.TickPeriod
	}
	if s.ConfettiPieces == 0 {
		s.ConfettiPieces = def.ConfettiPieces
	}
	if s.Palette == nil {
		s.Palette = def.Palette
	}
}

// Validate reports the first setting that cannot drive a celebration.
func (s Settings) Validate() error {
	if s.TotalCandles <= 0 || s.TotalBalloons <= 0 {
		return errors.New(ErrTotalsInvalid)
	}
	if s.TickPeriod <= 0 {
		return errors.New(ErrPeriodInvalid)
	}
	if s.ConfettiPieces <= 0 {
		return errors.New(ErrPiecesInvalid)
	}
	if len(s.Palette) == 0 {
		return errors.New(ErrPaletteShort)
	}
	for _, c := range s.Palette {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("%s: %q", ErrColorInvalid, c)
		}
	}
	return nil
}

// ItemColor returns the palette color for the candle or balloon at index.
// Items cycle through the first ItemPaletteSize entries.
func (s Settings) ItemColor(index int) string {
	n := len(s.Palette)
	if n > ItemPaletteSize {
		n = ItemPaletteSize
	}
	if n == 0 {
		return ColorInactive
	}
	return s.Palette[index%n]
}
