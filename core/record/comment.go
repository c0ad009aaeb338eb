package record

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/coursedesk/coursedesk/core"
)

// Comment sub-resource operations. A comment belongs to exactly one parent
// record via the schema's CommentFK field and never outlives it: deleting
// the parent cascades (see Service.Delete).

// ListComments returns all comments for `parentID` ordered by created_at
// ascending. An unknown parent yields an empty sequence, not an error.
func (svc *Service) ListComments(ctx context.Context, parentID string) ([]Record, error) {
	if !svc.schema.HasComments() {
		return []Record{}, nil
	}
	comments, err := svc.store.Load(ctx, svc.schema.CommentsCollection())
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(comments))
	for _, c := range comments {
		if c.String(svc.schema.CommentFK) == parentID {
			out = append(out, c)
		}
	}
	return Sort(commentSchema, out, FieldCreatedAt, OrderAsc), nil
}

// CreateComment persists a new comment under an existing parent record.
// The author defaults to "Anonymous" when absent.
func (svc *Service) CreateComment(ctx context.Context, parentID, author, text string) (Record, error) {
	if !svc.schema.HasComments() {
		return nil, &NotFoundError{Singular: svc.schema.Singular}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.store.Load(ctx, svc.schema.Name)
	if err != nil {
		return nil, err
	}
	if _, parent := svc.findByID(records, parentID); parent == nil {
		return nil, &NotFoundError{Singular: svc.schema.Singular}
	}

	text = core.CleanString(text)
	if text == "" {
		return nil, core.NewValidationError(
			fmt.Errorf("comment text is required"),
			core.FieldError{Field: "text", Error: "this field is required"},
		)
	}
	author = core.CleanString(author)
	if author == "" {
		author = anonymousAuthor
	}

	comments, err := svc.store.Load(ctx, svc.schema.CommentsCollection())
	if err != nil {
		return nil, err
	}
	comment := Record{
		FieldID:              uuid.NewString(),
		svc.schema.CommentFK: parentID,
		"author":             author,
		"text":               text,
		FieldCreatedAt:       Timestamp(time.Now()),
	}
	comments = append(comments, comment)
	if err := svc.store.Save(ctx, map[string][]Record{svc.schema.CommentsCollection(): comments}); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a single comment by its id.
func (svc *Service) DeleteComment(ctx context.Context, commentID string) error {
	if !svc.schema.HasComments() {
		return ErrCommentNotFound
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	comments, err := svc.store.Load(ctx, svc.schema.CommentsCollection())
	if err != nil {
		return err
	}
	for i, c := range comments {
		if c.String(FieldID) == commentID {
			comments = append(comments[:i:i], comments[i+1:]...)
			return svc.store.Save(ctx, map[string][]Record{svc.schema.CommentsCollection(): comments})
		}
	}
	return ErrCommentNotFound
}

// commentSchema only exists to drive comment ordering; comments are not a
// standalone resource kind.
var commentSchema = Schema{
	Name:        "comments",
	Singular:    "comment",
	IDField:     FieldID,
	SortFields:  []string{FieldCreatedAt},
	DefaultSort: FieldCreatedAt,
}
