// Package naming derives document file names and question ids from display names.
package naming

import (
	"fmt"
	"strings"

	"github.com/umisama/go-regexpcache"
)

// FileBase converts a display name to a file name base:
// lowercase, every run of non-alphanumeric characters becomes one underscore.
func FileBase(name string) string {
	lower := strings.ToLower(name)
	return regexpcache.MustCompile(`[^a-z0-9]+`).ReplaceAllString(lower, "_")
}

// PlanFile returns the document file name for a plan.
func PlanFile(planName string) string {
	return FileBase(planName) + ".rst"
}

// IntegratedFile returns the document file name for a group's integrated example.
func IntegratedFile(groupName string) string {
	return "integrated_" + FileBase(groupName) + ".rst"
}

// IntegratedID returns the directive id for a group's integrated example.
func IntegratedID(groupName string) string {
	return "integrated_" + FileBase(groupName)
}

// QuestionID formats the stable question id: "{type}_{n}",
// where n is the 1-based count of same-typed questions up to the position.
func QuestionID(questionType string, n int) string {
	return fmt.Sprintf("%s_%d", questionType, n)
}

// AreaKey derives a changeable-area key from selected text,
// truncated to 20 characters before de-duplication.
func AreaKey(text string) string {
	key := FileBase(strings.TrimSpace(text))
	if len(key) > 20 {
		key = key[:20]
	}
	return key
}

// UniqueAreaKey appends "_1", "_2", ... until the key is unused.
func UniqueAreaKey(key string, exists func(string) bool) string {
	unique := key
	for counter := 1; exists(unique); counter++ {
		unique = fmt.Sprintf("%s_%d", key, counter)
	}
	return unique
}
