package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

// StoryIndexer keeps a searchable copy of stories. Search must only return
// stories owned by userID.
type StoryIndexer interface {
	Index(ctx context.Context, s *entity.Story) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, userID, query string, size int) ([]entity.Story, error)
}

const msgStoryRequired = "Title and content are required"

type StoryService struct {
	*OwnedService[entity.Story]
	Entries  *OwnedService[entity.JournalEntry]
	Index    StoryIndexer
	Activity *ActivityRecorder
}

func NewStoryService(r repo.StoryRepository, entries *OwnedService[entity.JournalEntry], index StoryIndexer, activity *ActivityRecorder, logger *logrus.Logger) *StoryService {
	return &StoryService{
		OwnedService: NewOwnedService[entity.Story](r, "Story", logger),
		Entries:      entries,
		Index:        index,
		Activity:     activity,
	}
}

type CreateStoryInput struct {
	Title          string  `json:"title" binding:"required"`
	Content        string  `json:"content" binding:"required"`
	Emotion        string  `json:"emotion"`
	Genre          string  `json:"genre"`
	Duration       string  `json:"duration"`
	Theme          string  `json:"theme"`
	JournalEntryID *string `json:"journalEntryId" binding:"omitempty,uuid"`
}

type UpdateStoryInput struct {
	Title       *string  `json:"title"`
	Content     *string  `json:"content"`
	Rating      *float64 `json:"rating" binding:"omitempty,rating5"`
	IsCompleted *bool    `json:"isCompleted"`
}

func (s *StoryService) CreateStory(ctx context.Context, userID string, in CreateStoryInput) (*entity.Story, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, BadRequest(msgStoryRequired)
	}
	entryID, err := linkJournalEntry(ctx, s.Entries, in.JournalEntryID, userID)
	if err != nil {
		return nil, err
	}
	st := &entity.Story{
		UserID:         userID,
		JournalEntryID: entryID,
		Title:          in.Title,
		Content:        in.Content,
		Emotion:        in.Emotion,
		Genre:          in.Genre,
		Duration:       in.Duration,
		Theme:          in.Theme,
	}
	if _, err := s.Create(ctx, st); err != nil {
		return nil, entryLinkError(err, entryID)
	}
	s.index(ctx, st)
	s.Activity.Record(ctx, ActivityEvent{UserID: userID, Kind: ActivityStoryCreated})
	return st, nil
}

func (s *StoryService) UpdateStory(ctx context.Context, id, userID string, in UpdateStoryInput) (*entity.Story, error) {
	st, err := s.Update(ctx, id, userID, func(st *entity.Story) error {
		if (in.Title != nil && strings.TrimSpace(*in.Title) == "") || (in.Content != nil && strings.TrimSpace(*in.Content) == "") {
			return BadRequest(msgStoryRequired)
		}
		if in.Title != nil {
			st.Title = *in.Title
		}
		if in.Content != nil {
			st.Content = *in.Content
		}
		if in.Rating != nil {
			st.Rating = *in.Rating
		}
		if in.IsCompleted != nil {
			st.IsCompleted = *in.IsCompleted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.index(ctx, st)
	return st, nil
}

func (s *StoryService) DeleteStory(ctx context.Context, id, userID string) error {
	if err := s.Delete(ctx, id, userID); err != nil {
		return err
	}
	if s.Index != nil {
		canonical, _ := s.ParseID(id)
		if err := s.Index.Remove(ctx, canonical); err != nil {
			loggerOrDiscard(s.Logger).WithError(err).WithField("story_id", canonical).Warn("story index remove failed")
		}
	}
	return nil
}

// SearchStories full-text searches the requester's stories. Without an index it
// falls back to a case-insensitive match over the requester's own stories.
func (s *StoryService) SearchStories(ctx context.Context, userID, query string, size int) ([]entity.Story, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, BadRequest("Search query is required")
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	if s.Index != nil {
		found, err := s.Index.Search(ctx, userID, query, size)
		if err != nil {
			return nil, s.internal("search", err)
		}
		out := make([]entity.Story, 0, len(found))
		for _, st := range found {
			if st.UserID == userID {
				out = append(out, st)
			}
		}
		return out, nil
	}

	all, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	out := make([]entity.Story, 0)
	for _, st := range all {
		if strings.Contains(strings.ToLower(st.Title), q) || strings.Contains(strings.ToLower(st.Content), q) {
			out = append(out, st)
			if len(out) == size {
				break
			}
		}
	}
	return out, nil
}

func (s *StoryService) index(ctx context.Context, st *entity.Story) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, st); err != nil {
		loggerOrDiscard(s.Logger).WithError(err).WithField("story_id", st.ID).Warn("story index failed")
	}
}

func emptyToNil(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return p
}
