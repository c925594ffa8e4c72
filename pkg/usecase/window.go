package usecase

import (
	"time"

	"github.com/secmon-lab/caseboard/pkg/domain/model"
	"github.com/secmon-lab/caseboard/pkg/service/markup"
)

// WindowComments returns the comments kept under mode at now with their
// bodies linkified. The input slice is not modified.
func WindowComments(comments []model.Comment, now time.Time, mode model.CommentMode) []model.Comment {
	result := make([]model.Comment, 0, len(comments))
	for _, c := range comments {
		if mode != model.CommentModeAll && !c.Within(now, model.CommentWindow) {
			continue
		}
		result = append(result, model.Comment{
			Body:      markup.Linkify(c.Body),
			Timestamp: c.Timestamp,
		})
	}
	return result
}
