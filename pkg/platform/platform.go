package platform

import (
	"strings"

	"github.com/gtech/tolerance/pkg/export"
)

// Platform identifies where a record originated.
type Platform string

const (
	Twitter Platform = "twitter"
	Reddit  Platform = "reddit"
)

// DefaultTweetIDDigits is the minimum postId digit length (exclusive) that
// marks a Twitter snowflake ID. Real tweet IDs run 18+ digits.
const DefaultTweetIDDigits = 15

// Classifier maps records to platforms using field heuristics. The result is
// a best guess, not authoritative: the export does not label platforms.
type Classifier struct {
	tweetIDDigits int
}

// New creates a classifier. tweetIDDigits <= 0 uses the default.
func New(tweetIDDigits int) *Classifier {
	if tweetIDDigits <= 0 {
		tweetIDDigits = DefaultTweetIDDigits
	}
	return &Classifier{tweetIDDigits: tweetIDDigits}
}

// IsTwitter reports whether a record looks like it came from Twitter:
// either the subreddit field holds an @handle, or the post ID is a long
// all-digit string (a snowflake ID). Rules are checked in that order and
// missing fields are treated as empty strings.
func (c *Classifier) IsTwitter(r export.Record) bool {
	if strings.HasPrefix(r.Subreddit, "@") {
		return true
	}
	if len(r.PostID) > c.tweetIDDigits && allDigits(r.PostID) {
		return true
	}
	return false
}

// Of returns the inferred platform for a record. Anything that does not
// match the Twitter heuristics counts as Reddit.
func (c *Classifier) Of(r export.Record) Platform {
	if c.IsTwitter(r) {
		return Twitter
	}
	return Reddit
}

// Partition splits records into Twitter and Reddit groups, preserving
// document order within each group.
func (c *Classifier) Partition(records []export.Record) (twitter, reddit []export.Record) {
	for _, r := range records {
		if c.IsTwitter(r) {
			twitter = append(twitter, r)
		} else {
			reddit = append(reddit, r)
		}
	}
	return twitter, reddit
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
