package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for vCard imports.
var UserAgent = "Go-Contacts/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Contacts"
	AppID             = "com.github.tartampluch.go-contacts"
	KeyringService    = "com.github.tartampluch.go-contacts"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	Prompt            = "Type:"
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

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion   = "version"
	FlagDebug     = "debug"
	FlagNoSeed    = "no-seed"
	FlagServePort = "serve-port"
	FlagReminder  = "reminder"
	FlagLang      = "lang"

	FlagDescVersion   = "Show application version and exit"
	FlagDescDebug     = "Enable debug logging to stderr"
	FlagDescNoSeed    = "Start with an empty contact book"
	FlagDescServePort = "Serve the birthday calendar on this localhost port (empty disables)"
	FlagDescReminder  = "ISO8601 trigger for calendar alarms, e.g. -P1D (empty disables)"
	FlagDescLang      = "Language of the assistant replies"

	MsgVersionOutput = "%s version %s (commit %s, built %s) %s/%s\n"
)

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

// Command keywords as typed by the user (lower case).
const (
	CmdHello    = "hello"
	CmdHelp     = "help"
	CmdAdd      = "add"
	CmdChange   = "change"
	CmdPhone    = "phone"
	CmdRemove   = "remove"
	CmdReplace  = "replace"
	CmdBirthday = "birthday"
	CmdDays     = "days"
	CmdShowAll  = "show all"
	CmdShow     = "show"
	CmdExport   = "export"
	CmdCalendar = "calendar"
	CmdImport   = "import"
	CmdClose    = "close"
	CmdExit     = "exit"
	CmdGoodBye  = "good bye"
	CmdDot      = "."
)

// PhraseCommands are recognised only when they make up the whole input line.
var PhraseCommands = []string{CmdShowAll, CmdGoodBye}

// -----------------------------------------------------------------------------
// Seed Data
// -----------------------------------------------------------------------------

const (
	SeedFirstName      = "name"
	SeedFirstPhone     = "+380(67)444-47-74"
	SeedFirstBirthday  = "2/12/1980"
	SeedSecondName     = "Polina"
	SeedSecondPhone    = "+380(67)777-77-77"
	SeedSecondBirthday = "12/05/1996"
)

// -----------------------------------------------------------------------------
// Validation & Display Formats
// -----------------------------------------------------------------------------

const (
	// PatternPhoneLong accepts +CCC(NN)NNN-NN-NN.
	PatternPhoneLong = `^\+\d{3}\(\d{2}\)\d{3}-\d{2}-\d{2}$`
	// PatternPhoneShort accepts +CCC(NN)NNN-N-NNN.
	PatternPhoneShort = `^\+\d{3}\(\d{2}\)\d{3}-\d-\d{3}$`

	// DateFormatInput is day/month/year; single digit day and month are accepted.
	DateFormatInput   = "2/1/2006"
	DateFormatDisplay = "2006-01-02"

	FormatRecord     = "%s: %s %s %s"
	PhoneListOpen    = "["
	PhoneListClose   = "]"
	PhoneListSep     = ", "
	DaysUnknown      = ""
	HoursPerDay      = 24
	DefaultLanguage  = "en"
	DefaultLeapYear  = 2000 // Leap year fallback for dates like --02-29
	UIDSalt          = "go-contacts-v1-"
	DefaultServePort = ""
)

// -----------------------------------------------------------------------------
// Message Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyGreeting           = "greeting"
	TKeyFarewell           = "farewell"
	TKeyDone               = "done"
	TKeyHelp               = "help"
	TKeyEmptyBook          = "empty_book"
	TKeyNeedNameAndPhone   = "need_name_and_phone"
	TKeyNeedName           = "need_name"
	TKeyNeedNameAndBday    = "need_name_and_birthday"
	TKeyNeedSource         = "need_source"
	TKeyMissingArgument    = "missing_argument"
	TKeyNoSuchPhone        = "no_such_phone"
	TKeyNoSuchCommand      = "no_such_command"
	TKeyNoSuchName         = "no_such_name"
	TKeyInvalidFormat      = "invalid_format"
	TKeyEndOfContacts      = "end_of_contacts"
	TKeyNoBirthday         = "no_birthday"
	TKeyDaysToBirthday     = "days_to_birthday" // Requires Name, Days
	TKeyImported           = "imported"         // Requires Count
	TKeyInternalError      = "internal_error"
	TKeyEventSummaryAge    = "event_summary_age"   // Requires Name, Age
	TKeyEventSummaryBirth  = "event_summary_birth" // Requires Name
	TemplateKeyName        = "Name"
	TemplateKeyDays        = "Days"
	TemplateKeyCount       = "Count"
	TemplateKeyAge         = "Age"
	LocalesDir             = "locales"
	LocaleFilePrefix       = "active."
	LocaleFileExt          = ".json"
	LocaleFormatJSON       = "json"
	LocaleCommentKeyPrefix = "_"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Contacts//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gocontacts"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// File Extensions
	ExtVCF = ".vcf"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAccept          = "Accept"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	MimeVCardAccept     = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidFormat   = "invalid format"
	ErrInvalidPhone    = "phone does not match +CCC(NN)NNN-NN-NN or +CCC(NN)NNN-N-NNN"
	ErrInvalidBirthday = "birthday is not a day/month/year date"
	ErrNotFound        = "not found"
	ErrPhoneNotFound   = "phone not in record"
	ErrEndOfSequence   = "end of contacts"
	ErrMissingArgument = "missing argument"
	ErrUnknownCommand  = "unknown command"
	ErrNoSuchName      = "no such name"
	ErrSourceEmpty     = "import error: source is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrVCardEncode     = "failed to encode vCard data"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrSeed            = "failed to seed contact book"
	ErrReadInput       = "failed to read input"
	ErrPublish         = "failed to publish calendar"
	ErrKeyring         = "keyring lookup failed"
	ErrRequestCreate   = "failed to create request"
	ErrNetwork         = "network error during fetch"
	ErrStatusFmt       = "server returned unexpected status: %d %s"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"

	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, leaving command loop"
	MsgAppStarting    = "Starting application"
	MsgSeeded         = "Contact book seeded"
	MsgCommand        = "Command received"
	MsgCommandFailed  = "Command failed, reply translated"
	MsgUnknownFailure = "Unclassified command failure"
	MsgLoopStop       = "Command loop finished"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedPhone   = "Skipping invalid phone number"
	MsgImportDone     = "vCard import finished"
	MsgExportDone     = "vCard export finished"
	MsgGenSuccess     = "Calendar generation successful"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassMissing    = "No keyring password stored (continuing without)"
	MsgFetchStart     = "Initiating vCard download"
	MsgFetchBadStatus = "Server returned error status"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgBdayToday      = "Birthday found today"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeySource    = "source"
	LogKeyUser      = "user"
	LogKeyCommand   = "command"
	LogKeyArgCount  = "arg_count"
	LogKeyKind      = "kind"
	LogKeyTotal     = "total_cards"
	LogKeyImported  = "imported"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeyRecords   = "records"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompRouter   = "router"
	CompLoop     = "loop"
	CompEngine   = "engine"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompKeyring  = "keyring"
	CompMessages = "messages"
)
