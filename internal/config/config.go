package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Version is injected via -ldflags.
var Version = "dev"

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Birthday Wish"
	AppID       = "com.github.tartampluch.go-birthday-wish"
	LogFileName = "app.log"
	CmdName     = "birthday-wish"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Commands & Flags
// -----------------------------------------------------------------------------

const (
	FlagDebug      = "debug"
	FlagConfig     = "config"
	FlagLang       = "lang"
	FlagDescDebug  = "Enable debug logging"
	FlagDescConfig = "Path to a YAML settings file"
	FlagDescLang   = "UI language, overriding settings and preferences"

	CmdShortRoot    = "An interactive birthday card: light the candles, pop the balloons"
	CmdUseGUI       = "gui"
	CmdShortGUI     = "Open the desktop birthday card (default)"
	CmdUseTUI       = "tui"
	CmdShortTUI     = "Run the birthday card in the terminal"
	CmdUseVersion   = "version"
	CmdShortVersion = "Show application version and exit"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Celebration Rules
// -----------------------------------------------------------------------------

const (
	TotalCandles  = 5
	TotalBalloons = 5

	// CelebrateTickPeriod is the interval at which celebrate() lights the next candle.
	CelebrateTickPeriod = 500 * time.Millisecond

	// ConfettiPieces is the number of particles emitted by a confetti burst.
	ConfettiPieces = 500
)

// -----------------------------------------------------------------------------
// Palettes
// -----------------------------------------------------------------------------

// ConfettiColors is the fixed confetti palette. The first five entries double as
// the candle and balloon palettes.
var ConfettiColors = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A", "#98D8C8", "#F7DC6F", "#BB8FCE"}

const (
	ItemPaletteSize = 5
	ColorInactive   = "#D1D5DB"
	ColorFlame      = "#F7DC6F"
	ColorMuted      = "#6B7280"
)

// -----------------------------------------------------------------------------
// Animation Timings
// -----------------------------------------------------------------------------

const (
	CardEntranceDuration = 500 * time.Millisecond
	CandleRevealDuration = 500 * time.Millisecond
	CandleRevealStagger  = 500 * time.Millisecond
	BalloonPopDuration   = 300 * time.Millisecond
	CardEntranceScale    = 0.9

	// ConfettiFrameInterval drives the particle simulation (~60 FPS).
	ConfettiFrameInterval = 16 * time.Millisecond
	// TUIConfettiFrameInterval is coarser; terminals redraw slowly.
	TUIConfettiFrameInterval = 50 * time.Millisecond

	// A terminal cell stands for this many confetti pixels.
	TUICellWidth  = 8
	TUICellHeight = 16
)

// -----------------------------------------------------------------------------
// Confetti Physics
// -----------------------------------------------------------------------------

const (
	ConfettiGravity      = 0.1  // px per frame²
	ConfettiWind         = 0.0  // px per frame²
	ConfettiFriction     = 0.99 // velocity multiplier per frame
	ConfettiMinSize      = 5.0
	ConfettiMaxSize      = 20.0
	ConfettiMaxInitialVX = 4.0
	ConfettiMaxInitialVY = 10.0
	ConfettiSpawnBand    = 0.0 // y of the emitter line, particles start just above it
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	WindowWidth  = 520
	WindowHeight = 640

	ItemTokenSize = 40
	FlameSize     = 10
	BalloonString = 12

	DateFormatInput   = "2006-01-02"
	DatePlaceholder   = "YYYY-MM-DD"
	DateEntrySep      = '-'
	DateEntryMaxRunes = 10

	PrefLanguage = "language"
	PrefLastRun  = "last_run_version"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"

	ICSFileNameFormat = "%s-birthday.ics"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyFormTitle      = "form_title"
	TKeyLblName        = "lbl_name"
	TKeyLblBirthday    = "lbl_birthday"
	TKeyBtnStart       = "btn_start"
	TKeyBtnImport      = "btn_import_contact"
	TKeyCardTitle      = "card_title"
	TKeyLblCandles     = "lbl_candles"
	TKeyLblBalloons    = "lbl_balloons"
	TKeyBtnCelebrate   = "btn_celebrate"
	TKeyBtnExport      = "btn_export_calendar"
	TKeyFormatDateLong = "format_date_long"
	TKeyEvtSummary     = "event_summary" // Requires Name
	TKeyTUIHelp        = "tui_help"
	TKeyTUIFormHelp    = "tui_form_help"
	TKeyLblLanguage    = "lbl_language"
	TKeyDlgImportTitle = "dlg_import_title"
)

// -----------------------------------------------------------------------------
// Defaults
// -----------------------------------------------------------------------------

const (
	DefaultLanguage = "en"
	UIDNamespace    = "go-birthday-wish" // Seed for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Birthday Wish//Calendar//EN"
	ICalScale     = "GREGORIAN"
	ICalRecurRule = "FREQ=YEARLY"
	ICalTransp    = "TRANSPARENT"

	PropUID      = "UID"
	PropSummary  = "SUMMARY"
	PropDTStart  = "DTSTART"
	PropDTStamp  = "DTSTAMP"
	PropRRule    = "RRULE"
	PropTransp   = "TRANSP"
	PropVersion  = "VERSION"
	PropProdid   = "PRODID"
	PropCalScale = "CALSCALE"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"

	FallbackSummary = "Birthday: %s"
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted from vCard BDAY fields.
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrLocNotInit       = "localizer not initialized"
	ErrSettingsRead     = "failed to read settings file"
	ErrSettingsParse    = "failed to parse settings file"
	ErrSettingsInvalid  = "invalid settings"
	ErrTotalsInvalid    = "candle and balloon totals must be positive"
	ErrPeriodInvalid    = "celebrate tick period must be positive"
	ErrPiecesInvalid    = "confetti piece count must be positive"
	ErrColorInvalid     = "invalid color"
	ErrPaletteShort     = "palette needs at least one color"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrVCardNoBirthday  = "no contact with a usable birthday found"
	ErrDateParse        = "unable to parse date"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrNotSubmitted     = "birthday details have not been submitted"
	ErrExportWrite      = "failed to write calendar file"
	ErrImportRead       = "failed to read contact file"
	ErrTUIRun           = "terminal program failed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgSettingsLoaded  = "Settings loaded"
	MsgSubmitRejected  = "Submit ignored: name or birthday empty"
	MsgSubmitted       = "Birthday details submitted"
	MsgCandleLit       = "Candle lit"
	MsgBalloonPopped   = "Balloon popped"
	MsgAdvanceIgnored  = "Out-of-sequence click ignored"
	MsgCelebrateStart  = "Celebration started"
	MsgCelebrateIgnore = "Celebrate ignored: already celebrating"
	MsgTimerStopped    = "Celebration timer stopped"
	MsgConfettiShown   = "Confetti shown"
	MsgViewport        = "Viewport resized"
	MsgSessionClosed   = "Session closed"
	MsgBurstStarted    = "Confetti burst started"
	MsgBurstFinished   = "Confetti burst finished"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgContactImported = "Contact imported"
	MsgCalendarExport  = "Calendar exported"
	MsgLangChanged     = "Language changed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyIndex     = "index"
	LogKeyExpected  = "expected"
	LogKeyCandles   = "candles"
	LogKeyBalloons  = "balloons"
	LogKeyTrigger   = "trigger"
	LogKeyWidth     = "width"
	LogKeyHeight    = "height"
	LogKeyPieces    = "pieces"
	LogKeyPeriod    = "period"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyValue     = "value"
	LogKeyPath      = "path"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// Confetti triggers, logged with LogKeyTrigger.
const (
	TriggerCompletion = "completion"
	TriggerCelebrate  = "celebrate"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompEngine   = "engine"
	CompConfetti = "confetti"
	CompCalendar = "calendar"
	CompContact  = "contact"
	CompTUI      = "tui"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
