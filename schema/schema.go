package schema

// Sentinel option that opens the per-option ranking block on a
// ranked-choice field. Always the last option, never duplicated.
const SentinelAllOfTheAbove = "All of the above"

type Kind int

const (
	KindText Kind = iota
	KindSingleChoice
	KindRankedChoice
	KindRating
	KindYesNo
	KindYesNoDetail
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindSingleChoice:
		return "single-choice"
	case KindRankedChoice:
		return "ranked-choice"
	case KindRating:
		return "rating"
	case KindYesNo:
		return "yes-no"
	case KindYesNoDetail:
		return "yes-no-detail"
	case KindTimestamp:
		return "timestamp"
	}
	return "unknown"
}

// Field is one named, typed slot in a submission. Key is the stable stored
// column name; Label is display-only and free to drift between versions.
type Field struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Kind     Kind     `json:"-"`
	KindName string   `json:"kind"`
	Required bool     `json:"required"`
	Scale    int      `json:"scale,omitempty"`   // rating fields: 5 or 10
	Options  []string `json:"options,omitempty"` // choice fields
}

// RankColumn is the flattened column a ranking block entry is stored under.
func RankColumn(fieldKey, option string) string {
	return fieldKey + "_rank_" + option
}

// withSentinel returns options with "All of the above" appended exactly once.
func withSentinel(options []string) []string {
	out := make([]string, 0, len(options)+1)
	for _, o := range options {
		if o != SentinelAllOfTheAbove {
			out = append(out, o)
		}
	}
	return append(out, SentinelAllOfTheAbove)
}

// RankedOptions returns the options of a ranked-choice field that take part
// in a ranking block, i.e. everything but the sentinel.
func RankedOptions(f Field) []string {
	out := make([]string, 0, len(f.Options))
	for _, o := range f.Options {
		if o != SentinelAllOfTheAbove {
			out = append(out, o)
		}
	}
	return out
}

type version struct {
	fields []Field
}

var versions = map[int]version{}
var latest int

func register(v int, fields []Field) {
	for i := range fields {
		if fields[i].Kind == KindRankedChoice {
			fields[i].Options = withSentinel(fields[i].Options)
		}
		fields[i].KindName = fields[i].Kind.String()
	}
	versions[v] = version{fields: fields}
	if v > latest {
		latest = v
	}
}

// LatestVersion is the newest registered survey version.
func LatestVersion() int {
	return latest
}

// FieldsForVersion returns the ordered field list of a survey version.
// Unknown versions fall back to the latest one: intake never blocks on a
// schema lookup.
func FieldsForVersion(v int) []Field {
	ver, ok := versions[v]
	if !ok {
		ver = versions[latest]
	}
	out := make([]Field, len(ver.fields))
	copy(out, ver.fields)
	return out
}

// RequiredKeys lists the keys that must be non-empty for finalize to pass.
func RequiredKeys(v int) []string {
	var keys []string
	for _, f := range FieldsForVersion(v) {
		if f.Required {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// FieldByKey looks a field up in a version, falling back like FieldsForVersion.
func FieldByKey(v int, key string) (Field, bool) {
	for _, f := range FieldsForVersion(v) {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// FieldsUnion merges every version's fields by key, in version then
// declaration order. The newest version's label wins, so reports resolve
// drifted labels through one place instead of rewriting column names.
func FieldsUnion() []Field {
	seen := map[string]int{}
	var out []Field
	for v := 1; v <= latest; v++ {
		ver, ok := versions[v]
		if !ok {
			continue
		}
		for _, f := range ver.fields {
			if i, ok := seen[f.Key]; ok {
				out[i].Label = f.Label
				continue
			}
			seen[f.Key] = len(out)
			out = append(out, f)
		}
	}
	return out
}

// Label resolves the display label of a stored column key across all
// versions. Unknown keys (e.g. flattened rank columns) are returned as-is.
func Label(key string) string {
	for _, f := range FieldsUnion() {
		if f.Key == key {
			return f.Label
		}
	}
	return key
}
