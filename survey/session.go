package survey

import (
	"time"

	"github.com/gofrs/uuid"
)

// Session is the respondent context carried across pages: created when
// demographics are saved, cleared at successful submission or explicit
// reset. Passed explicitly, never held as process-wide ambient state.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Location  string    `json:"csc"`
	Email     string    `json:"email"`
	StartedAt time.Time `json:"started_at"`
}

// NewSession applies the demographics defaults: anonymous respondents still
// produce attributable-looking rows.
func NewSession(name, role, location, email string) Session {
	if name == "" {
		name = "Anonymous"
	}
	if role == "" {
		role = "Not Specified"
	}
	return Session{
		ID:        uuid.Must(uuid.NewV4()).String(),
		Name:      name,
		Role:      role,
		Location:  location,
		Email:     email,
		StartedAt: time.Now(),
	}
}

type sessionOp struct {
	put    bool
	del    bool
	id     string
	sess   Session
	result chan<- sessionResult
}

type sessionResult struct {
	sess Session
	ok   bool
}

// Registry holds live sessions. All access is serialized through one
// goroutine, so no lock is shared with request handlers.
type Registry struct {
	ops chan sessionOp
}

func NewRegistry() *Registry {
	r := &Registry{ops: make(chan sessionOp)}
	go func() {
		sessions := make(map[string]Session)
		for op := range r.ops {
			switch {
			case op.put:
				sessions[op.sess.ID] = op.sess
			case op.del:
				delete(sessions, op.id)
			default:
				sess, ok := sessions[op.id]
				op.result <- sessionResult{sess, ok}
			}
		}
	}()
	return r
}

func (r *Registry) Put(sess Session) {
	r.ops <- sessionOp{put: true, sess: sess}
}

func (r *Registry) Get(id string) (Session, bool) {
	result := make(chan sessionResult)
	r.ops <- sessionOp{id: id, result: result}
	res := <-result
	return res.sess, res.ok
}

func (r *Registry) Delete(id string) {
	r.ops <- sessionOp{del: true, id: id}
}
