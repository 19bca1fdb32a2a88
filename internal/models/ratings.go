package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddRating appends a new thread entry for userID. Each user gets one
// rating per product; a second attempt reports ErrDuplicateRating and
// leaves the product untouched.
//
// TotalRating follows the stored recurrence (old+new)/2, rounded to
// two decimals, with the first rating assigned directly. This is not a
// true running mean and is order dependent; existing documents were
// written with it, so it stays.
func (p *Product) AddRating(userID primitive.ObjectID, title, comment string, rating float64, now time.Time) error {
	for _, entry := range p.Ratings {
		if entry.UserID == userID {
			return ErrDuplicateRating
		}
	}
	if len(p.Ratings) == 0 {
		p.TotalRating = rating
	} else {
		p.TotalRating = math.Round((p.TotalRating+rating)/2*100) / 100
	}
	p.Ratings = append(p.Ratings, Rating{
		ID:       primitive.NewObjectID(),
		Rating:   rating,
		Title:    title,
		Creation: now,
		UserID:   userID,
		Comments: CommentThread{
			Message: comment,
			Reply:   []Reply{},
		},
	})
	p.RatingCount++
	return nil
}

// AddReply appends a reply under the thread entry with the given id.
// One reply per user per entry; a second attempt reports
// ErrDuplicateReply. An unknown comment id reports ErrNoRecord.
func (p *Product) AddReply(commentID, userID primitive.ObjectID, message string) error {
	for i := range p.Ratings {
		if p.Ratings[i].ID != commentID {
			continue
		}
		for _, reply := range p.Ratings[i].Comments.Reply {
			if reply.UserID == userID {
				return ErrDuplicateReply
			}
		}
		p.Ratings[i].Comments.Reply = append(p.Ratings[i].Comments.Reply, Reply{
			UserID:  userID,
			Message: message,
		})
		return nil
	}
	return ErrNoRecord
}
