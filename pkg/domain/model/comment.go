package model

import (
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const (
	// CommentTimeLayout is the wire format of a comment timestamp
	CommentTimeLayout = "2006-01-02T15:04:05.000000-0700"

	// commentParseLayout accepts any number of fractional digits
	commentParseLayout = "2006-01-02T15:04:05.999999-0700"

	// CommentWindow is the trailing window for recent comments (exclusive)
	CommentWindow = 7 * 24 * time.Hour
)

// Comment is a single card comment. On the wire it is the pair [body, timestamp].
type Comment struct {
	Body      string
	Timestamp time.Time
}

// ParseCommentTime parses a comment timestamp in CommentTimeLayout
func ParseCommentTime(value string) (time.Time, error) {
	t, err := time.Parse(commentParseLayout, value)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid comment timestamp",
			goerr.V("value", value),
			goerr.T(ErrTagInvalidTimestamp))
	}
	return t, nil
}

// Within reports whether the comment is younger than window at now
func (c Comment) Within(now time.Time, window time.Duration) bool {
	return now.Sub(c.Timestamp) < window
}

// MarshalJSON encodes the comment as [body, timestamp]
func (c Comment) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.Body, c.Timestamp.Format(CommentTimeLayout)})
}

// UnmarshalJSON decodes a [body, timestamp] pair
func (c *Comment) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return goerr.Wrap(err, "comment must be a [body, timestamp] pair")
	}
	if len(pair) != 2 {
		return goerr.New("comment must be a [body, timestamp] pair",
			goerr.V("length", len(pair)))
	}

	ts, err := ParseCommentTime(pair[1])
	if err != nil {
		return err
	}

	c.Body = pair[0]
	c.Timestamp = ts
	return nil
}
