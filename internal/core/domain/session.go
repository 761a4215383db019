package domain

import "time"

// Turn is one query/response exchange within a session.
type Turn struct {
	// Feature identifies which consumer produced the turn.
	Feature Feature

	// Query is the user's question or request.
	Query string

	// Response is the routed model response.
	Response string

	// At is when the turn completed.
	At time.Time
}

// Session is the scoped lifetime and state container for one user's
// multi-turn interaction. Created on first interaction, cleared
// explicitly or on idle expiry.
type Session struct {
	// ID is the unique session identifier.
	ID string

	// Turns are the exchanges in insertion order.
	Turns []Turn

	// DocumentIDs are the documents attached to this session, in
	// upload order. Upload order defines document order for retrieval
	// tie-breaking.
	DocumentIDs []string

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	// LastActive is bumped on every interaction and drives idle expiry.
	LastActive time.Time
}

// DocumentOrder returns the position of a document in the session's
// upload order, or -1 when the document is not attached.
func (s *Session) DocumentOrder(documentID string) int {
	for i, id := range s.DocumentIDs {
		if id == documentID {
			return i
		}
	}
	return -1
}
