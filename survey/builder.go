// Package survey assembles validated submission records from raw form
// values and tracks respondent sessions across pages.
package survey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/soulware-systems/training-survey/model"
	"github.com/soulware-systems/training-survey/schema"
)

// ValidationError is the single hard gate of the intake pipeline: a
// required field left empty at finalize.
type ValidationError struct {
	MissingField string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.MissingField)
}

// RankingError reports a ranking block that is not a clean permutation.
// Only produced in strict mode; the default accepts partial and tied
// rankings as submitted.
type RankingError struct {
	Field  string
	Reason string
}

func (e RankingError) Error() string {
	return fmt.Sprintf("invalid ranking for %q: %s", e.Field, e.Reason)
}

var reNoIdent = regexp.MustCompile(`\W+`)

// SubmissionID derives the record identifier from the start-of-response
// time and the respondent name. Readable, sortable, and deliberately not
// guaranteed globally unique.
func SubmissionID(at time.Time, name string) string {
	slug := strings.ToLower(name)
	slug = reNoIdent.ReplaceAllLiteralString(slug, " ")
	slug = strings.Join(strings.Fields(slug), "_")
	if slug == "" {
		slug = "anonymous"
	}
	return at.Format("20060102T150405") + "_" + slug
}

// Builder accumulates one submission in memory. No side effects until the
// record is appended by the caller; the timestamp is captured at Begin, not
// at Finalize, to reflect start-of-response semantics.
type Builder struct {
	version       int
	strictRanking bool
	rec           model.Record
}

type Option func(*Builder)

// StrictRanking makes AttachRanking reject rankings that are not a full
// permutation of the field's options.
func StrictRanking() Option {
	return func(b *Builder) { b.strictRanking = true }
}

// Begin opens a submission for one respondent session, pre-populated with
// the generated submission id, the current timestamp, and the session
// demographics.
func Begin(version int, sess Session, opts ...Option) *Builder {
	now := time.Now()
	b := &Builder{
		version: version,
		rec: model.Record{
			model.ColSubmissionID: SubmissionID(now, sess.Name),
			model.ColSubmittedAt:  now.Format(model.TimestampFormat),
			model.ColName:         sess.Name,
			model.ColRole:         sess.Role,
			model.ColLocation:     sess.Location,
			model.ColEmail:        sess.Email,
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Set stores a raw field value. Constraints are advisory: rating values
// clamp to the field's scale, everything else is stored verbatim with no
// length limit. Email format is not checked here.
func (b *Builder) Set(key, value string) {
	if f, ok := schema.FieldByKey(b.version, key); ok && f.Kind == schema.KindRating {
		value = clampRating(value, f.Scale)
	}
	b.rec[key] = value
}

func clampRating(value string, scale int) string {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return value
	}
	if n < 1 {
		n = 1
	}
	if n > scale {
		n = scale
	}
	return strconv.Itoa(n)
}

// AttachRanking flattens a ranking block into "{field}_rank_{option}"
// scalar columns. Lenient by default: duplicate or missing ranks persist as
// submitted. Strict mode requires exactly the field's ranked options,
// ranked as a permutation of 1..N.
func (b *Builder) AttachRanking(fieldKey string, ranks map[string]int) error {
	if b.strictRanking {
		if err := b.checkPermutation(fieldKey, ranks); err != nil {
			return err
		}
	}
	for option, rank := range ranks {
		b.rec[schema.RankColumn(fieldKey, option)] = strconv.Itoa(rank)
	}
	return nil
}

func (b *Builder) checkPermutation(fieldKey string, ranks map[string]int) error {
	f, ok := schema.FieldByKey(b.version, fieldKey)
	if !ok || f.Kind != schema.KindRankedChoice {
		return RankingError{Field: fieldKey, Reason: "not a ranked-choice field"}
	}
	options := schema.RankedOptions(f)
	if len(ranks) != len(options) {
		return RankingError{Field: fieldKey, Reason: fmt.Sprintf("expected %d ranks, got %d", len(options), len(ranks))}
	}
	seen := make(map[int]bool, len(ranks))
	for _, option := range options {
		rank, ok := ranks[option]
		if !ok {
			return RankingError{Field: fieldKey, Reason: fmt.Sprintf("option %q not ranked", option)}
		}
		if rank < 1 || rank > len(options) {
			return RankingError{Field: fieldKey, Reason: fmt.Sprintf("rank %d out of range 1..%d", rank, len(options))}
		}
		if seen[rank] {
			return RankingError{Field: fieldKey, Reason: fmt.Sprintf("rank %d used twice", rank)}
		}
		seen[rank] = true
	}
	return nil
}

// Finalize checks the required fields and returns the completed record.
// Callers must not append a record that failed this gate.
func (b *Builder) Finalize(required []string) (model.Record, error) {
	for _, key := range required {
		if strings.TrimSpace(b.rec[key]) == "" {
			return nil, ValidationError{MissingField: key}
		}
	}
	return b.rec.Clone(), nil
}
