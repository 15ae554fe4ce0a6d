package errors_test

import (
	"testing"

	"github.com/joe/pathq/pkg/errors"
)

func TestPatternMatcher_CaseInsensitive(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		errorMsg string
		expected errors.ErrorCategory
	}{
		{
			name:     "uppercase permission denied",
			errorMsg: "PERMISSION DENIED",
			expected: errors.CategoryPermission,
		},
		{
			name:     "mixed case missing file",
			errorMsg: "No Such File Or Directory",
			expected: errors.CategoryPath,
		},
	}

	matcher := errors.NewPatternMatcher()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			category := matcher.Match(testCase.errorMsg)
			if category != testCase.expected {
				t.Errorf("expected category %q, got %q for error: %q",
					testCase.expected, category, testCase.errorMsg)
			}
		})
	}
}

//nolint:funlen // Comprehensive table-driven test across all categories
func TestPatternMatcher_Categories(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		errorMsg string
		expected errors.ErrorCategory
	}{
		{
			name:     "permission denied",
			errorMsg: "open /etc/shadow: permission denied",
			expected: errors.CategoryPermission,
		},
		{
			name:     "operation not permitted",
			errorMsg: "lstat /proc/1/root: operation not permitted",
			expected: errors.CategoryPermission,
		},
		{
			name:     "missing path",
			errorMsg: "stat /var/log/nope: no such file or directory",
			expected: errors.CategoryPath,
		},
		{
			name:     "not a directory",
			errorMsg: "readdir /tmp/file.txt: not a directory",
			expected: errors.CategoryPath,
		},
		{
			name:     "connection refused",
			errorMsg: "dial tcp 10.0.0.5:22: connection refused",
			expected: errors.CategoryNetwork,
		},
		{
			name:     "ssh handshake",
			errorMsg: "ssh: handshake failed: unable to authenticate",
			expected: errors.CategoryNetwork,
		},
		{
			name:     "io error",
			errorMsg: "read /mnt/disk/f: input/output error",
			expected: errors.CategoryIO,
		},
		{
			name:     "too many open files",
			errorMsg: "open /tmp/x: too many open files",
			expected: errors.CategoryIO,
		},
		{
			name:     "unmatched message",
			errorMsg: "something inexplicable happened",
			expected: errors.CategoryUnknown,
		},
		{
			name:     "empty message",
			errorMsg: "",
			expected: errors.CategoryUnknown,
		},
	}

	matcher := errors.NewPatternMatcher()

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			category := matcher.Match(testCase.errorMsg)
			if category != testCase.expected {
				t.Errorf("expected category %q, got %q for error: %q",
					testCase.expected, category, testCase.errorMsg)
			}
		})
	}
}
