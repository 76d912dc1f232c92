package social

// Reply is a stored reply record. ReplyTo always references a Post; replies
// to replies are not part of the model.
type Reply struct {
	ID        string
	Timestamp int64 // unix milliseconds, server-assigned
	PosterID  string
	Message   string
	ReplyTo   string
}
