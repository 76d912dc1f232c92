package social

// Post is a stored post record. Posts are immutable once created; like and
// reply state is derived from the edge collections at read time.
type Post struct {
	ID        string
	Timestamp int64 // unix milliseconds, server-assigned
	PosterID  string
	Message   string
	Images    []Image
}
