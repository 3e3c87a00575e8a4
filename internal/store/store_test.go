package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	id, err := st.StartSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, st.FinishSession(ctx, id, 10, 8, 5))

	sum, err := st.Summarize(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, sum.Sessions)
}

func TestRecordAndSummarize(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	id, err := st.StartSession(ctx)
	require.NoError(t, err)

	records := []AnswerRecord{
		{SubjectID: 1, Characters: "犬", QuestionType: "meaning", Answer: "dog", Passed: true},
		{SubjectID: 1, Characters: "犬", QuestionType: "reading", Answer: "けん", Passed: false, Category: "kanji_reading_for_vocab"},
		{SubjectID: 2, Characters: "今日", QuestionType: "reading", Answer: "きよう", Passed: false, Category: "small_kana"},
		{SubjectID: 2, Characters: "今日", QuestionType: "reading", Answer: "きょう", Passed: true, Overridden: true},
	}
	for _, r := range records {
		r.SessionID = id
		r.AnsweredAt = time.Now()
		require.NoError(t, st.RecordAnswer(ctx, r))
	}

	sum, err := st.Summarize(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, sum.Answered)
	require.Equal(t, 2, sum.Correct)
	require.Equal(t, 1, sum.ByCategory["small_kana"])
	require.Equal(t, 1, sum.ByCategory["kanji_reading_for_vocab"])
}

func TestTopMissed(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	id, err := st.StartSession(ctx)
	require.NoError(t, err)

	miss := func(subjectID int64, chars string, n int) {
		for i := 0; i < n; i++ {
			require.NoError(t, st.RecordAnswer(ctx, AnswerRecord{
				SessionID: id, SubjectID: subjectID, Characters: chars,
				QuestionType: "meaning", Answer: "x", AnsweredAt: time.Now(),
			}))
		}
	}
	miss(1, "犬", 3)
	miss(2, "温泉", 1)
	require.NoError(t, st.RecordAnswer(ctx, AnswerRecord{
		SessionID: id, SubjectID: 3, Characters: "人",
		QuestionType: "meaning", Answer: "person", Passed: true, AnsweredAt: time.Now(),
	}))

	missed, err := st.TopMissed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, missed, 2)
	require.Equal(t, int64(1), missed[0].SubjectID)
	require.Equal(t, 3, missed[0].Missed)
	require.Equal(t, int64(2), missed[1].SubjectID)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())
}
