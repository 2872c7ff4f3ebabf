package tinytcl

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/log"
)

// LogLevel represents the severity of a log message (higher value = higher severity)
type LogLevel int

const (
	LevelTrace  LogLevel = iota // Detailed tracing (requires enabled + category)
	LevelInfo                   // Informational messages (requires enabled + category)
	LevelDebug                  // Development debugging (requires enabled + category)
	LevelNotice                 // Notable events (always shown)
	LevelWarn                   // Warnings (always shown)
	LevelError                  // Runtime errors (always shown)
)

// LogCategory represents the subsystem generating the message
type LogCategory string

const (
	CatNone     LogCategory = ""             // Uncategorized
	CatParse    LogCategory = "parse"        // Parser and parse cache
	CatCommand  LogCategory = "command"      // Command dispatch
	CatVariable LogCategory = "variable"     // Variable operations (get/set)
	CatSubst    LogCategory = "substitution" // Word resolution
	CatIO       LogCategory = "io"           // Script loading and puts
)

var allCategories = []LogCategory{CatParse, CatCommand, CatVariable, CatSubst, CatIO}

// Logger filters messages by level and category and hands them to fortio.org/log
type Logger struct {
	enabled           bool
	enabledCategories map[LogCategory]bool
	// fortio level to restore once debug logging is switched off
	savedLevel log.Level
	lowered    bool
}

// NewLogger creates a new logger. Enabling it turns on every category.
func NewLogger(enabled bool) *Logger {
	l := &Logger{enabledCategories: make(map[LogCategory]bool)}
	if enabled {
		l.SetEnabled(true)
		l.EnableAllCategories()
	}
	return l
}

// SetEnabled enables or disables debug logging. Enabling lowers the
// process-wide fortio level to Debug when needed; disabling restores it.
func (l *Logger) SetEnabled(enabled bool) {
	l.enabled = enabled
	switch {
	case enabled && !l.lowered && log.GetLogLevel() > log.Debug:
		l.savedLevel = log.GetLogLevel()
		l.lowered = true
		log.SetLogLevelQuiet(log.Debug)
	case !enabled && l.lowered:
		l.lowered = false
		log.SetLogLevelQuiet(l.savedLevel)
	}
}

// Enabled reports whether debug logging is on
func (l *Logger) Enabled() bool {
	return l.enabled
}

// EnableCategory enables debug logging for a specific category
func (l *Logger) EnableCategory(cat LogCategory) {
	l.enabledCategories[cat] = true
}

// DisableCategory disables debug logging for a specific category
func (l *Logger) DisableCategory(cat LogCategory) {
	delete(l.enabledCategories, cat)
}

// EnableAllCategories enables all categories for debug logging
func (l *Logger) EnableAllCategories() {
	for _, cat := range allCategories {
		l.enabledCategories[cat] = true
	}
}

// IsCategoryEnabled checks if a category is enabled
func (l *Logger) IsCategoryEnabled(cat LogCategory) bool {
	return l.enabledCategories[cat]
}

func (l *Logger) shouldLog(level LogLevel, cat LogCategory) bool {
	switch level {
	case LevelError, LevelWarn, LevelNotice:
		return true
	case LevelDebug, LevelInfo, LevelTrace:
		return l.enabled && (cat == CatNone || l.enabledCategories[cat])
	default:
		return false
	}
}

// Log is the unified logging method
func (l *Logger) Log(level LogLevel, cat LogCategory, message string) {
	if l == nil || !l.shouldLog(level, cat) {
		return
	}
	if cat != CatNone {
		message = fmt.Sprintf("[%s] %s", cat, message)
	}
	switch level {
	case LevelTrace, LevelInfo:
		log.LogVf("%s", message)
	case LevelDebug:
		log.Debugf("%s", message)
	case LevelNotice:
		log.Infof("%s", message)
	case LevelWarn:
		log.Warnf("%s", message)
	default:
		log.Errf("%s", message)
	}
}

// logf formats only when the message will be emitted
func (l *Logger) logf(level LogLevel, cat LogCategory, format string, args ...interface{}) {
	if l == nil || !l.shouldLog(level, cat) {
		return
	}
	l.Log(level, cat, fmt.Sprintf(format, args...))
}

// DebugCat logs a categorized debug message
func (l *Logger) DebugCat(cat LogCategory, format string, args ...interface{}) {
	l.logf(LevelDebug, cat, format, args...)
}

// TraceCat logs a categorized trace message
func (l *Logger) TraceCat(cat LogCategory, format string, args ...interface{}) {
	l.logf(LevelTrace, cat, format, args...)
}

// WarnCat logs a categorized warning message
func (l *Logger) WarnCat(cat LogCategory, format string, args ...interface{}) {
	l.logf(LevelWarn, cat, format, args...)
}

// ErrorFormatter renders script errors with their position and the
// surrounding source lines
type ErrorFormatter struct {
	ShowContext  bool
	ContextLines int
}

// NewErrorFormatter creates a formatter from the context settings of config
func NewErrorFormatter(config *Config) *ErrorFormatter {
	if config == nil {
		config = DefaultConfig()
	}
	return &ErrorFormatter{ShowContext: config.ShowErrorContext, ContextLines: config.ContextLines}
}

// Format renders err. lines holds the script split on newlines and may be
// nil, in which case no source context is printed.
func (f *ErrorFormatter) Format(err error, lines []string) string {
	var (
		parseErr *ParseError
		cmdErr   *CommandError
	)
	switch {
	case errors.As(err, &parseErr):
		return f.positioned("Parse error: "+parseErr.Reason, &parseErr.Position, lines)
	case errors.As(err, &cmdErr):
		msg := cmdErr.Err.Error()
		if cmdErr.Name != "" {
			msg = fmt.Sprintf("%s: %s", strings.ToUpper(cmdErr.Name), msg)
		}
		return f.positioned("Error: "+msg, &cmdErr.Position, lines)
	default:
		return "Error: " + err.Error()
	}
}

func (f *ErrorFormatter) positioned(message string, position *SourcePosition, lines []string) string {
	if position.Line == 0 {
		return message
	}
	filename := position.Filename
	if filename == "" {
		filename = "<unknown>"
	}
	output := message + fmt.Sprintf("\n  at line %d, column %d in %s", position.Line, position.Column, filename)
	if f.ShowContext && len(lines) > 0 {
		output += f.sourceContext(position, lines)
	}
	return output
}

// sourceContext formats source context with line numbers
func (f *ErrorFormatter) sourceContext(position *SourcePosition, lines []string) string {
	var message strings.Builder
	message.WriteString("\n")

	span := max(1, f.ContextLines)
	contextStart := max(0, position.Line-span)
	contextEnd := min(len(lines), position.Line+span-1)

	for i := contextStart; i < contextEnd; i++ {
		lineNum := i + 1
		isErrorLine := lineNum == position.Line

		prefix := " "
		if isErrorLine {
			prefix = ">"
		}
		message.WriteString(fmt.Sprintf("\n  %s %3d | %s", prefix, lineNum, lines[i]))

		if isErrorLine && position.Column > 0 {
			indent := "      | " + strings.Repeat(" ", position.Column-1)
			message.WriteString("\n  " + indent + "^")
		}
	}

	return message.String()
}
