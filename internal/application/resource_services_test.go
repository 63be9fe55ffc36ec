package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
	"github.com/oksasatya/dream-journal-api/internal/infrastructure/memory"
)

type fakeIndex struct {
	indexed map[string]entity.Story
	removed []string
	hits    []entity.Story
}

func (f *fakeIndex) Index(_ context.Context, s *entity.Story) error {
	if f.indexed == nil {
		f.indexed = map[string]entity.Story{}
	}
	f.indexed[s.ID] = *s
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeIndex) Search(context.Context, string, string, int) ([]entity.Story, error) {
	return f.hits, nil
}

func TestStoryLifecycleIndexesAndRecordsActivity(t *testing.T) {
	ctx := context.Background()
	idx := &fakeIndex{}
	pub := &recordingPublisher{}
	svc := NewStoryService(memory.NewStoryRepository(), nil, idx, NewActivityRecorder(pub, nil), nil)

	_, err := svc.CreateStory(ctx, alice, CreateStoryInput{Title: " ", Content: "c"})
	assert.Equal(t, KindBadRequest, KindOf(err))

	st, err := svc.CreateStory(ctx, alice, CreateStoryInput{Title: "Flight", Content: "Over the sea", JournalEntryID: new(string)})
	require.NoError(t, err)
	assert.Nil(t, st.JournalEntryID)
	assert.Contains(t, idx.indexed, st.ID)

	msgs := pub.all()
	require.Len(t, msgs, 1)
	ev := msgs[0].(ActivityEvent)
	assert.Equal(t, ActivityStoryCreated, ev.Kind)
	assert.Equal(t, 1, ev.StatsDelta().StoriesGenerated)

	rating := 4.5
	updated, err := svc.UpdateStory(ctx, st.ID, alice, UpdateStoryInput{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.Rating)
	assert.Equal(t, "Flight", updated.Title)

	require.NoError(t, svc.DeleteStory(ctx, st.ID, alice))
	assert.Equal(t, []string{st.ID}, idx.removed)
}

func TestSearchStoriesDropsForeignHits(t *testing.T) {
	idx := &fakeIndex{hits: []entity.Story{{ID: "1", UserID: alice}, {ID: "2", UserID: bob}}}
	svc := NewStoryService(memory.NewStoryRepository(), nil, idx, nil, nil)

	found, err := svc.SearchStories(context.Background(), alice, "dream", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "1", found[0].ID)

	_, err = svc.SearchStories(context.Background(), alice, "  ", 0)
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestSearchStoriesFallback(t *testing.T) {
	ctx := context.Background()
	svc := NewStoryService(memory.NewStoryRepository(), nil, nil, nil, nil)
	_, _ = svc.CreateStory(ctx, alice, CreateStoryInput{Title: "Ocean Flight", Content: "waves"})
	_, _ = svc.CreateStory(ctx, alice, CreateStoryInput{Title: "Forest", Content: "trees"})
	_, _ = svc.CreateStory(ctx, bob, CreateStoryInput{Title: "Ocean", Content: "bob's"})

	found, err := svc.SearchStories(ctx, alice, "ocean", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Ocean Flight", found[0].Title)
}

func TestCreateGameDifficulty(t *testing.T) {
	svc := NewGameService(memory.NewGameRepository(), nil, nil)
	_, err := svc.CreateGame(context.Background(), alice, CreateGameInput{Title: "Maze", Type: "puzzle_game", Description: "d", Difficulty: "extreme"})
	assert.Equal(t, KindBadRequest, KindOf(err))

	g, err := svc.CreateGame(context.Background(), alice, CreateGameInput{Title: "Maze", Type: "puzzle_game", Description: "d", Difficulty: "hard"})
	require.NoError(t, err)
	assert.Equal(t, entity.DifficultyHard, g.Difficulty)
}

func TestSleepSessionsLatest(t *testing.T) {
	ctx := context.Background()
	svc := NewSleepSessionService(memory.NewSleepSessionRepository(), nil)

	_, err := svc.LatestSession(ctx, alice)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.CreateSession(ctx, alice, CreateSleepSessionInput{})
	assert.Equal(t, KindBadRequest, KindOf(err))

	now := time.Now()
	ss, err := svc.CreateSession(ctx, alice, CreateSleepSessionInput{Date: &now, CurrentStatus: &entity.SleepStatus{Stage: "Deep"}})
	require.NoError(t, err)

	latest, err := svc.LatestSession(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, ss.ID, latest.ID)

	_, err = svc.LatestSession(ctx, bob)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestJournalEntryDerivesFromSession(t *testing.T) {
	ctx := context.Background()
	sessions := NewSleepSessionService(memory.NewSleepSessionRepository(), nil)
	pub := &recordingPublisher{}
	svc := NewJournalEntryService(memory.NewJournalEntryRepository(), sessions.OwnedService, NewActivityRecorder(pub, nil), nil)

	now := time.Now()
	ss, err := sessions.CreateSession(ctx, alice, CreateSleepSessionInput{
		Date:          &now,
		CurrentStatus: &entity.SleepStatus{Stage: entity.StageREM, StageDuration: 25},
		DreamData:     &entity.DreamData{IsDreaming: true, Emotion: "joy"},
	})
	require.NoError(t, err)

	je, err := svc.CreateEntry(ctx, alice, CreateJournalEntryInput{SleepSessionID: ss.ID, Date: &now})
	require.NoError(t, err)
	assert.Equal(t, 1, je.DreamsCount)
	assert.Equal(t, float64(25), je.TotalREM)
	assert.Equal(t, "joy", je.DominantEmotion)
	assert.NotNil(t, je.Themes)

	msgs := pub.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, 1, msgs[0].(ActivityEvent).StatsDelta().TotalDreams)

	plain, err := sessions.CreateSession(ctx, alice, CreateSleepSessionInput{Date: &now, CurrentStatus: &entity.SleepStatus{Stage: "Light"}})
	require.NoError(t, err)
	je, err = svc.CreateEntry(ctx, alice, CreateJournalEntryInput{SleepSessionID: plain.ID, Date: &now})
	require.NoError(t, err)
	assert.Equal(t, defaultEmotion, je.DominantEmotion)
	assert.Zero(t, je.DreamsCount)
}

func TestJournalEntryRejectsForeignOrBadSession(t *testing.T) {
	ctx := context.Background()
	sessions := NewSleepSessionService(memory.NewSleepSessionRepository(), nil)
	svc := NewJournalEntryService(memory.NewJournalEntryRepository(), sessions.OwnedService, nil, nil)

	now := time.Now()
	ss, _ := sessions.CreateSession(ctx, alice, CreateSleepSessionInput{Date: &now, CurrentStatus: &entity.SleepStatus{Stage: "Deep"}})

	_, err := svc.CreateEntry(ctx, bob, CreateJournalEntryInput{SleepSessionID: ss.ID, Date: &now})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Associated sleep session not found", err.(*AppError).Message)

	_, err = svc.CreateEntry(ctx, alice, CreateJournalEntryInput{SleepSessionID: "nope", Date: &now})
	require.Error(t, err)
	assert.Equal(t, "Invalid sleep session ID", err.(*AppError).Message)
}

func TestGameResultsRequireOwnedGame(t *testing.T) {
	ctx := context.Background()
	games := NewGameService(memory.NewGameRepository(), nil, nil)
	pub := &recordingPublisher{}
	svc := NewGameResultService(memory.NewGameResultRepository(), games.OwnedService, NewActivityRecorder(pub, nil), nil)

	g, err := games.CreateGame(ctx, alice, CreateGameInput{Title: "Maze", Type: "puzzle_game", Description: "d"})
	require.NoError(t, err)

	score, secs, ok := 50.0, 12.5, true
	in := CreateGameResultInput{GameID: g.ID, Score: &score, TimeCompleted: &secs, WasSuccessful: &ok}

	_, err = svc.RecordResult(ctx, bob, in)
	require.Error(t, err)
	assert.Equal(t, "Game not found", err.(*AppError).Message)

	bad := in
	bad.GameID = "not-a-game"
	_, err = svc.RecordResult(ctx, alice, bad)
	require.Error(t, err)
	assert.Equal(t, "Invalid Game ID", err.(*AppError).Message)
	_, err = svc.ListByGame(ctx, alice, "not-a-game")
	require.Error(t, err)
	assert.Equal(t, "Invalid Game ID", err.(*AppError).Message)

	_, err = svc.RecordResult(ctx, alice, in)
	require.NoError(t, err)
	better := 90.0
	in.Score = &better
	_, err = svc.RecordResult(ctx, alice, in)
	require.NoError(t, err)
	assert.Len(t, pub.all(), 2)

	results, err := svc.ListByGame(ctx, alice, g.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 90.0, results[0].Score)

	results, err = svc.ListByGame(ctx, bob, g.ID)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = svc.ListByGame(ctx, alice, "bad")
	assert.Equal(t, KindBadRequest, KindOf(err))

	_, err = svc.RecordResult(ctx, alice, CreateGameResultInput{GameID: g.ID})
	assert.Equal(t, KindBadRequest, KindOf(err))
}

func TestUpdateStoryRejectsBlankRequiredFields(t *testing.T) {
	ctx := context.Background()
	svc := NewStoryService(memory.NewStoryRepository(), nil, nil, nil, nil)
	st, err := svc.CreateStory(ctx, alice, CreateStoryInput{Title: "Flight", Content: "Over the sea"})
	require.NoError(t, err)

	blank := "  "
	for _, in := range []UpdateStoryInput{{Title: &blank}, {Content: &blank}} {
		_, err := svc.UpdateStory(ctx, st.ID, alice, in)
		require.Error(t, err)
		assert.Equal(t, KindBadRequest, KindOf(err))
		assert.Equal(t, "Title and content are required", err.(*AppError).Message)
	}

	got, err := svc.Get(ctx, st.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "Flight", got.Title)
	assert.Equal(t, "Over the sea", got.Content)
}

func TestJournalEntryLinksMustBeOwned(t *testing.T) {
	ctx := context.Background()
	sessions := NewSleepSessionService(memory.NewSleepSessionRepository(), nil)
	entries := NewJournalEntryService(memory.NewJournalEntryRepository(), sessions.OwnedService, nil, nil)
	stories := NewStoryService(memory.NewStoryRepository(), entries.OwnedService, nil, nil, nil)
	games := NewGameService(memory.NewGameRepository(), entries.OwnedService, nil)

	now := time.Now()
	ss, err := sessions.CreateSession(ctx, alice, CreateSleepSessionInput{Date: &now, CurrentStatus: &entity.SleepStatus{Stage: "Deep"}})
	require.NoError(t, err)
	je, err := entries.CreateEntry(ctx, alice, CreateJournalEntryInput{SleepSessionID: ss.ID, Date: &now})
	require.NoError(t, err)

	foreign := je.ID
	missing := "00000000-0000-4000-8000-000000000000"
	malformed := "entry-1"

	for _, ref := range []*string{&foreign, &missing} {
		_, err := stories.CreateStory(ctx, bob, CreateStoryInput{Title: "t", Content: "c", JournalEntryID: ref})
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Equal(t, "Journal entry not found", err.(*AppError).Message)

		_, err = games.CreateGame(ctx, bob, CreateGameInput{Title: "t", Type: "puzzle_game", Description: "d", JournalEntryID: ref})
		require.Error(t, err)
		assert.Equal(t, KindNotFound, KindOf(err))
		assert.Equal(t, "Journal entry not found", err.(*AppError).Message)
	}

	_, err = stories.CreateStory(ctx, alice, CreateStoryInput{Title: "t", Content: "c", JournalEntryID: &malformed})
	require.Error(t, err)
	assert.Equal(t, "Invalid journal entry ID", err.(*AppError).Message)

	bobStories, err := stories.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobStories)

	st, err := stories.CreateStory(ctx, alice, CreateStoryInput{Title: "t", Content: "c", JournalEntryID: &foreign})
	require.NoError(t, err)
	require.NotNil(t, st.JournalEntryID)
	assert.Equal(t, je.ID, *st.JournalEntryID)

	g, err := games.CreateGame(ctx, alice, CreateGameInput{Title: "t", Type: "puzzle_game", Description: "d", JournalEntryID: &foreign})
	require.NoError(t, err)
	require.NotNil(t, g.JournalEntryID)
	assert.Equal(t, je.ID, *g.JournalEntryID)
}

// danglingRefRepo reports a foreign key that no longer resolves, as the postgres adapter does.
type danglingRefRepo[T entity.Owned] struct{ failingRepo[T] }

func (danglingRefRepo[T]) Create(context.Context, *T) error { return repo.ErrNotFound }

func TestVanishedReferenceIsNotFound(t *testing.T) {
	svc := NewOwnedService[entity.Story](danglingRefRepo[entity.Story]{}, "Story", nil)
	_, err := svc.Create(context.Background(), &entity.Story{UserID: alice})
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}
