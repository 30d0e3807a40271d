package contextkey

// key is a private type to avoid context key collisions across packages.
type key string

const (
	// RunID identifies one run invocation.
	RunID key = "run_id"
	// ProblemURL is the problem page being fetched.
	ProblemURL key = "problem_url"
)

// String returns the log field name of the key.
func (k key) String() string {
	return string(k)
}
