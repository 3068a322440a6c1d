package store

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/soulware-systems/training-survey/log"
	"github.com/soulware-systems/training-survey/model"
)

// Outcome is the per-backend result of one fan-out append.
type Outcome struct {
	Backend string `json:"backend"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

// Multi fans appends out to several backends. The first backend is the
// primary: ReadAll is served from it alone, the rest are mirrors.
type Multi struct {
	backends []Backend
}

func NewMulti(backends ...Backend) *Multi {
	return &Multi{backends: backends}
}

func (m *Multi) Name() string { return "multi" }

// Primary returns the backend reads are served from.
func (m *Multi) Primary() Backend {
	return m.backends[0]
}

// Append writes the record to every backend. The write is accepted if at
// least one backend succeeds; a mix of success and failure is a partial
// success the caller must surface as a warning, never silently as full
// success. Returns the per-backend outcomes and, when every backend failed,
// the combined error.
func (m *Multi) Append(ctx context.Context, rec model.Record) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(m.backends))
	var combined *multierror.Error
	saved := false

	for _, b := range m.backends {
		err := b.Append(ctx, rec)
		o := Outcome{Backend: b.Name(), OK: err == nil}
		if err != nil {
			o.Error = err.Error()
			combined = multierror.Append(combined, errors.Wrap(err, b.Name()))
			log.Warnf("store.append: backend %s failed: %s", b.Name(), err)
		} else {
			saved = true
		}
		outcomes = append(outcomes, o)
	}

	if !saved {
		return outcomes, errors.Wrap(combined.ErrorOrNil(), "store: all backends failed")
	}
	return outcomes, nil
}

// ReadAll reads the primary table. ErrNotFound maps to an empty table so
// aggregation over a fresh deployment degrades to zero rows.
func (m *Multi) ReadAll(ctx context.Context) (model.Table, error) {
	t, err := m.Primary().ReadAll(ctx)
	if errors.Is(err, ErrNotFound) {
		return model.Table{}, nil
	}
	return t, err
}
