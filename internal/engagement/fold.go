// Package engagement computes like/bookmark/comment aggregates and viewer
// flags for a set of targets, and owns the edge write path.
package engagement

import "github.com/oggyb/mealplanner/internal/repository"

// Stats is the engagement overlay of one target.
type Stats struct {
	LikeCount     int64 `json:"total_likes"`
	BookmarkCount int64 `json:"total_bookmarks"`
	CommentCount  int64 `json:"total_comments"`
	IsLiked       bool  `json:"is_liked"`
	IsBookmarked  bool  `json:"is_bookmarked"`
}

// Edges groups the raw edges fetched for one target set. Comments must
// already exclude banned rows.
type Edges struct {
	Likes     []repository.Edge
	Bookmarks []repository.Edge
	Comments  []repository.Edge
}

// Fold groups edges by target and computes counts and viewer membership.
// Every id in targetIDs is present in the result, zero-valued when it has no
// edges; edges for targets outside targetIDs are ignored. A zero viewerID
// (anonymous) is never liked or bookmarked.
func Fold(targetIDs []uint64, edges Edges, viewerID uint64) map[uint64]Stats {
	out := make(map[uint64]Stats, len(targetIDs))
	for _, id := range targetIDs {
		out[id] = Stats{}
	}

	for _, e := range edges.Likes {
		s, ok := out[e.TargetID]
		if !ok {
			continue
		}
		s.LikeCount++
		if viewerID != 0 && e.UserID == viewerID {
			s.IsLiked = true
		}
		out[e.TargetID] = s
	}
	for _, e := range edges.Bookmarks {
		s, ok := out[e.TargetID]
		if !ok {
			continue
		}
		s.BookmarkCount++
		if viewerID != 0 && e.UserID == viewerID {
			s.IsBookmarked = true
		}
		out[e.TargetID] = s
	}
	for _, e := range edges.Comments {
		s, ok := out[e.TargetID]
		if !ok {
			continue
		}
		s.CommentCount++
		out[e.TargetID] = s
	}
	return out
}
