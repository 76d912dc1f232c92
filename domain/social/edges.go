package social

// Like is a (liker, content) edge. ContentID may reference a Post or a
// Reply. At most one edge exists per pair; the storage layer enforces it.
type Like struct {
	LikerID   string
	ContentID string
}

// FriendRequest is a directional (sender, receiver) edge. Friendship is not
// stored: two users are friends iff both directional edges exist.
type FriendRequest struct {
	SenderID   string
	ReceiverID string
}
