package kvstore

// Well-known keys. Each holds a JSON-encoded array of the corresponding
// record type; the token/user keys of the original client are not stored
// server-side (sessions are stateless bearer tokens).
const (
	KeyAssignments     = "assignments"
	KeyQuizzes         = "quizzes"
	KeySubmissions     = "studentSubmissions"
	KeyQuizSubmissions = "quizSubmissions"
)

// Store is the pluggable key-value contract the gradebook and quiz
// repositories are layered on. Values are JSON-serialized; a missing key
// is not an error (Get leaves dest untouched). Writes are last-writer-wins;
// there is no cross-key transaction.
type Store interface {
	// Get decodes the value under key into dest. dest must be a pointer.
	Get(key string, dest interface{}) error
	// Set encodes v as JSON and upserts it under key.
	Set(key string, v interface{}) error
	// Keys lists every key currently present.
	Keys() ([]string, error)
}
