package domain

import "slices"

// VoteType is the requested change to a user's vote on an entity.
type VoteType string

const (
	VoteUp     VoteType = "upvote"
	VoteDown   VoteType = "downvote"
	VoteRemove VoteType = "remove"
)

// ParseVoteType validates a raw vote type from the transport layer.
func ParseVoteType(s string) (VoteType, error) {
	switch vt := VoteType(s); vt {
	case VoteUp, VoteDown, VoteRemove:
		return vt, nil
	}
	return "", NewValidationError("voteType", "voteType must be one of: upvote downvote remove")
}

// VoteSet holds who upvoted and who downvoted an entity. A user ID appears in
// at most one of the two lists; Cast is the only way to change membership.
type VoteSet struct {
	Upvotes   []string `json:"upvotes" bson:"upvotes"`
	Downvotes []string `json:"downvotes" bson:"downvotes"`
}

// Cast applies vt for userID. Upvote and downvote are idempotent and move the
// user out of the opposite list; remove clears the user from both.
func (v *VoteSet) Cast(userID string, vt VoteType) {
	switch vt {
	case VoteUp:
		v.Downvotes = without(v.Downvotes, userID)
		if !slices.Contains(v.Upvotes, userID) {
			v.Upvotes = append(v.Upvotes, userID)
		}
	case VoteDown:
		v.Upvotes = without(v.Upvotes, userID)
		if !slices.Contains(v.Downvotes, userID) {
			v.Downvotes = append(v.Downvotes, userID)
		}
	case VoteRemove:
		v.Upvotes = without(v.Upvotes, userID)
		v.Downvotes = without(v.Downvotes, userID)
	}
}

// Score is |upvotes| - |downvotes|.
func (v VoteSet) Score() int {
	return len(v.Upvotes) - len(v.Downvotes)
}

// HasUpvoted reports membership in the upvote list.
func (v VoteSet) HasUpvoted(userID string) bool { return slices.Contains(v.Upvotes, userID) }

// HasDownvoted reports membership in the downvote list.
func (v VoteSet) HasDownvoted(userID string) bool { return slices.Contains(v.Downvotes, userID) }

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

// Tally is the vote state embedded in questions and answers.
type Tally struct {
	Votes     VoteSet `json:"votes" bson:"votes"`
	VoteCount int     `json:"voteCount" bson:"vote_count"`
}

// Apply mutates the vote set and recomputes VoteCount.
func (t *Tally) Apply(userID string, vt VoteType) {
	t.Votes.Cast(userID, vt)
	t.VoteCount = t.Votes.Score()
}

// Votable is implemented by entities that carry a Tally.
type Votable interface {
	OwnerID() string
	Removed() bool
	VoteTally() *Tally
}

// ApplyVote runs the vote engine against target on behalf of userID.
// Unknown vote types are rejected, deleted targets are not found and authors
// cannot vote on their own content. No state is touched when a precondition
// fails.
func ApplyVote(target Votable, userID string, vt VoteType) error {
	if _, err := ParseVoteType(string(vt)); err != nil {
		return err
	}
	if target.Removed() {
		return ErrNotFound
	}
	if target.OwnerID() == userID {
		return ErrSelfVote
	}
	target.VoteTally().Apply(userID, vt)
	return nil
}
