// Package parser turns the constrained car JSON array into raw records
// without a general JSON grammar. It relies on the fixed record shape: six
// scalar fields followed by one list of strings.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	apperrors "cars-info-processing/internal/errors"
	"cars-info-processing/internal/models"
)

var (
	arrayPattern  = regexp.MustCompile(`^\s*\[\s*\{[^}]*\}(\s*,\s*\{[^}]*\})*\s*\]\s*$`)
	objectPattern = regexp.MustCompile(`\{[^}]*\}`)
	recordPattern = regexp.MustCompile(`\{[^}]*\[[^\]]*\][^}]*\}`)
)

// Parse splits text into objects and scans each one into a raw record.
func Parse(text string) ([]models.RawRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewEmptyInputError("empty or null string given")
	}
	if !arrayPattern.MatchString(text) {
		return nil, apperrors.NewFormatError("data does not correspond to the format")
	}

	objects := objectPattern.FindAllString(text, -1)
	matches := recordPattern.FindAllString(text, -1)
	if len(matches) != len(objects) {
		return nil, apperrors.NewFormatError(
			fmt.Sprintf("%d of %d objects do not contain a features list", len(objects)-len(matches), len(objects)))
	}

	records := make([]models.RawRecord, 0, len(matches))
	for i, m := range matches {
		record, err := ParseRecord(m)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseRecord scans a single object. The result is structurally unchecked:
// malformed objects produce malformed records for the validator to reject.
func ParseRecord(object string) (models.RawRecord, error) {
	trimmed := strings.TrimLeftFunc(object, unicode.IsSpace)
	if trimmed == "" {
		return nil, apperrors.NewEmptyInputError("empty or null string given")
	}
	if trimmed[0] != '{' {
		return nil, apperrors.NewFormatError("record must start with '{'")
	}

	s := &scanner{state: StartLine, record: models.RawRecord{}}
	for _, ch := range trimmed[1:] {
		if s.feed(ch) {
			break
		}
	}
	return s.record, nil
}

type scanner struct {
	state     State
	element   strings.Builder
	group     models.FieldGroup
	groupOpen bool
	record    models.RawRecord
}

// feed applies one character and reports whether the record is complete.
func (s *scanner) feed(ch rune) bool {
	t := step(s.state, ch)

	if t.do&beginGroup != 0 {
		s.group = models.FieldGroup{}
		s.groupOpen = true
	}
	if t.do&beginElement != 0 {
		s.element.Reset()
	}
	if t.do&appendChar != 0 {
		s.element.WriteRune(ch)
	}
	if t.do&pushElement != 0 && s.groupOpen {
		s.group = append(s.group, s.element.String())
	}
	if t.do&closeGroup != 0 && s.groupOpen {
		s.record = append(s.record, s.group)
		s.group = nil
		s.groupOpen = false
	}

	s.state = t.next
	return t.do&finish != 0
}
