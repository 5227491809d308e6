package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) HistoryStore {
	t.Helper()
	database, err := Open(OpenOptions{Path: ":memory:", AutoMigrate: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewHistoryStore(database.DB())
}

func newTestAnalysis(owner, repo string) *AnalysisRecord {
	return &AnalysisRecord{
		Owner:       owner,
		Repo:        repo,
		CommitCount: 12,
		Review:      "**Strengths:**\n- Clear subjects.",
		Provider:    "google",
		Model:       "gemini-2.5-flash",
		TokensUsed:  420,
		DurationMs:  1800,
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := newTestAnalysis("octocat", "hello-world")
	require.NoError(t, store.SaveAnalysis(ctx, record))
	require.NotZero(t, record.ID)

	got, err := store.GetAnalysis(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "octocat", got.Owner)
	assert.Equal(t, "hello-world", got.Repo)
	assert.Equal(t, 12, got.CommitCount)
	assert.Equal(t, record.Review, got.Review)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSaveAnalysisValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.SaveAnalysis(ctx, &AnalysisRecord{Repo: "r", Review: "text"})
	require.ErrorIs(t, err, ErrMissingRepository)

	err = store.SaveAnalysis(ctx, &AnalysisRecord{Owner: "o", Repo: "r"})
	require.ErrorIs(t, err, ErrMissingReview)
}

func TestGetAnalysisNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetAnalysis(context.Background(), 999)
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestListAnalysesNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		record := newTestAnalysis("octocat", fmt.Sprintf("repo-%d", i))
		require.NoError(t, store.SaveAnalysis(ctx, record))
	}

	records, err := store.ListAnalyses(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// IDs are monotonically increasing, so newest-first means highest ID first.
	assert.Greater(t, records[0].ID, records[1].ID)
	assert.Greater(t, records[1].ID, records[2].ID)
}

func TestListAnalysesLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveAnalysis(ctx, newTestAnalysis("octocat", fmt.Sprintf("repo-%d", i))))
	}

	records, err := store.ListAnalyses(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestListAnalysesForRepo(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAnalysis(ctx, newTestAnalysis("octocat", "alpha")))
	require.NoError(t, store.SaveAnalysis(ctx, newTestAnalysis("octocat", "beta")))
	require.NoError(t, store.SaveAnalysis(ctx, newTestAnalysis("octocat", "alpha")))

	records, err := store.ListAnalysesForRepo(ctx, "octocat", "alpha", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, "alpha", record.Repo)
	}
}

func TestDeleteAnalysis(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	record := newTestAnalysis("octocat", "hello-world")
	require.NoError(t, store.SaveAnalysis(ctx, record))

	require.NoError(t, store.DeleteAnalysis(ctx, record.ID))

	_, err := store.GetAnalysis(ctx, record.ID)
	require.ErrorIs(t, err, ErrRecordNotFound)

	err = store.DeleteAnalysis(ctx, record.ID)
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSaveAndListMessages(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveMessage(ctx, &MessageRecord{
		Kind:     MessageKindStagedDiff,
		Input:    "handler.go, parser.go",
		Message:  "refactor: simplify request parsing",
		Provider: "google",
		Model:    "gemini-2.5-flash",
	}))
	require.NoError(t, store.SaveMessage(ctx, &MessageRecord{
		Kind:    MessageKindRewrite,
		Input:   "fixed stuff",
		Message: "fix: correct dashboard alignment",
	}))

	records, err := store.ListMessages(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, MessageKindRewrite, records[0].Kind, "newest first")
}

func TestSaveMessageValidation(t *testing.T) {
	store := newTestStore(t)

	err := store.SaveMessage(context.Background(), &MessageRecord{Kind: MessageKindRewrite})
	require.ErrorIs(t, err, ErrMissingMessage)
}
