package errors

// ErrorCode represents a unique error identifier
type ErrorCode int

// Error code ranges allocation:
// 10000-10999: System & Common errors
// 12000-12999: Problem page & test case errors
// 13000-13999: Compile, run & judge errors

const (
	// ========== System & Common Errors (10000-10999) ==========

	// Success
	Success ErrorCode = 10000

	// Generic errors (10000-10099)
	InternalServerError ErrorCode = 10001
	InvalidParams       ErrorCode = 10002
	NotFound            ErrorCode = 10003
	Timeout             ErrorCode = 10008

	// Validation errors (10300-10399)
	ValidationFailed ErrorCode = 10300
	InvalidFormat    ErrorCode = 10301

	// ========== Problem Page & Test Case Errors (12000-12999) ==========

	// Fetch (12000-12099)
	InvalidURL      ErrorCode = 12000
	FetchTimeout    ErrorCode = 12001
	ContentNotFound ErrorCode = 12002
	NetworkError    ErrorCode = 12003

	// Test cases (12100-12199)
	NoCasesFound         ErrorCode = 12100
	NotFetched           ErrorCode = 12101
	TestCaseInvalid      ErrorCode = 12102
	TestCaseUploadFailed ErrorCode = 12103

	// ========== Compile, Run & Judge Errors (13000-13999) ==========

	// Submission (13000-13099)
	LanguageNotSupported ErrorCode = 13003

	// Judge (13100-13199)
	JudgeSystemError  ErrorCode = 13101
	CompilationError  ErrorCode = 13102
	RuntimeError      ErrorCode = 13103
	TimeLimitExceeded ErrorCode = 13104
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	// System & Common
	Success:             "Success",
	InternalServerError: "Internal error",
	InvalidParams:       "Invalid parameters",
	NotFound:            "Resource not found",
	Timeout:             "Operation timeout",

	// Validation
	ValidationFailed: "Validation failed",
	InvalidFormat:    "Invalid format",

	// Fetch
	InvalidURL:      "Invalid problem URL",
	FetchTimeout:    "Timed out loading the problem page",
	ContentNotFound: "Problem content not found on the page",
	NetworkError:    "Network error while loading the problem page",

	// Test cases
	NoCasesFound:         "No test cases found! Make sure you're using a valid problem URL",
	NotFetched:           "Test cases not found! Please fetch them first",
	TestCaseInvalid:      "Invalid test case format",
	TestCaseUploadFailed: "Failed to save test cases",

	// Submission
	LanguageNotSupported: "Programming language not supported",

	// Judge
	JudgeSystemError:  "Judge system error",
	CompilationError:  "Compilation error",
	RuntimeError:      "Runtime error",
	TimeLimitExceeded: "Time limit exceeded",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// ExitCode returns the process exit status a command line host should use
// for the error code.
func (c ErrorCode) ExitCode() int {
	switch {
	case c == Success:
		return 0
	case c == InvalidParams, c == InvalidURL, c == LanguageNotSupported, c >= 10300 && c < 10400:
		return 2
	case c >= 13100 && c < 13200:
		return 3
	default:
		return 1
	}
}
