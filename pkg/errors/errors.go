package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cliptrack/pkg/logger"

	"github.com/fatih/color"
)

type ExitCode int

const (
	ExitCodeSuccess        ExitCode = 0
	ExitCodeGeneral        ExitCode = 1
	ExitCodeConfig         ExitCode = 2
	ExitCodeClipboardRead  ExitCode = 3
	ExitCodeClipboardWrite ExitCode = 4
	ExitCodeUnsupported    ExitCode = 5
	ExitCodeValidation     ExitCode = 6
	ExitCodeFileOperation  ExitCode = 7
	ExitCodeCancellation   ExitCode = 8
	ExitCodeTimeout        ExitCode = 9
)

// Standardized error messages for consistent user-facing errors
const (
	ErrMsgClipboardRead  = "Failed to read clipboard"
	ErrMsgClipboardWrite = "Failed to write clipboard"
	ErrMsgHostNotify     = "Failed to notify clipboard host"
	ErrMsgInvalidInput   = "Invalid input provided"
)

// stderr is where HandleReturn prints; tests swap it.
var stderr io.Writer = os.Stderr

type Error struct {
	Code       ExitCode
	Message    string
	Underlying error
	Suggestion string
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func New(code ExitCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewWithError(code ExitCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
	}
}

func NewWithSuggestion(code ExitCode, message string, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var wrapped *Error
	if stderrors.As(err, &wrapped) {
		return &Error{
			Code:       wrapped.Code,
			Message:    message + ": " + wrapped.Message,
			Underlying: wrapped.Underlying,
			Suggestion: wrapped.Suggestion,
		}
	}

	return &Error{
		Code:       ExitCodeGeneral,
		Message:    message,
		Underlying: err,
	}
}

// FromContext converts context cancellation and deadline errors into
// exit-coded errors. Other errors are returned unchanged.
func FromContext(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, context.DeadlineExceeded):
		e := TimeoutError(operation)
		e.Underlying = err
		return e
	case stderrors.Is(err, context.Canceled):
		e := CancelledError(operation)
		e.Underlying = err
		return e
	}
	return err
}

func IsExitCode(err error, code ExitCode) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// HandleReturn processes an error and returns the appropriate exit code.
// It prints the message and any suggestion to stderr but does not exit;
// the caller is responsible for that.
func HandleReturn(err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}

	var exitCode ExitCode = ExitCodeGeneral
	var message string
	var suggestion string

	var e *Error
	if stderrors.As(err, &e) {
		exitCode = e.Code
		message = e.Error()
		suggestion = e.Suggestion

		if e.Underlying != nil {
			logger.Error().Err(e.Underlying).Int("exit_code", int(exitCode)).Msg(e.Message)
		} else {
			logger.Error().Int("exit_code", int(exitCode)).Msg(e.Message)
		}
	} else {
		message = err.Error()
		logger.Error().Msg(message)
	}

	printError(stderr, message, suggestion)

	return exitCode
}

func printError(w io.Writer, message, suggestion string) {
	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, message)

	if suggestion != "" {
		yellow.Fprint(w, "Suggestion: ")
		lines := strings.Split(suggestion, "\n")
		for i, line := range lines {
			switch {
			case i == 0:
				fmt.Fprintln(w, line)
			case strings.HasPrefix(line, "  -"):
				cyan.Fprintln(w, line)
			default:
				fmt.Fprintln(w, "           "+line)
			}
		}
	}

	fmt.Fprintln(w)
}

func ClipboardReadError(backend string, err error) *Error {
	return &Error{
		Code:       ExitCodeClipboardRead,
		Message:    fmt.Sprintf("%s (%s)", ErrMsgClipboardRead, backend),
		Underlying: err,
		Suggestion: "Make sure the clipboard holds text and that a clipboard utility is available.\n  - Linux: xclip, xsel or wl-clipboard\n  - Try --backend system or --backend shell",
	}
}

func ClipboardWriteError(backend string, err error) *Error {
	return &Error{
		Code:       ExitCodeClipboardWrite,
		Message:    fmt.Sprintf("%s (%s)", ErrMsgClipboardWrite, backend),
		Underlying: err,
	}
}

func HostNotifyError(err error) *Error {
	return &Error{
		Code:       ExitCodeClipboardWrite,
		Message:    ErrMsgHostNotify,
		Underlying: err,
		Suggestion: "Check that the host state directory is writable (host.state_dir / CLIPTRACK_STATE_DIR).",
	}
}

func UnsupportedError(feature string) *Error {
	return &Error{
		Code:       ExitCodeUnsupported,
		Message:    fmt.Sprintf("%s is not supported on this platform", feature),
		Suggestion: "Use --backend system to fall back to the system clipboard utilities.",
	}
}

func ConfigError(message string) *Error {
	return &Error{
		Code:       ExitCodeConfig,
		Message:    message,
		Suggestion: "Check your configuration file or set the required environment variables.",
	}
}

func ValidationError(message string) *Error {
	return &Error{
		Code:    ExitCodeValidation,
		Message: message,
	}
}

func FileError(message string, err error) *Error {
	return &Error{
		Code:       ExitCodeFileOperation,
		Message:    message,
		Underlying: err,
	}
}

func TimeoutError(operation string) *Error {
	return &Error{
		Code:       ExitCodeTimeout,
		Message:    fmt.Sprintf("Operation timed out: %s", operation),
		Suggestion: "Try again with a longer timeout using --timeout flag.",
	}
}

func CancelledError(operation string) *Error {
	return &Error{
		Code:       ExitCodeCancellation,
		Message:    fmt.Sprintf("Operation cancelled: %s", operation),
		Suggestion: "The operation was interrupted. The clipboard was not changed.",
	}
}
