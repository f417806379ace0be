package review

import (
	"testing"
	"time"

	"topicreview/domain/topics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioTable() *topics.Table {
	return topics.NewTable([]topics.Record{
		{Document: "doc1", Topic: "A", HasTopic: true},
		{Document: "doc2", Topic: "B", HasTopic: true},
		{Document: "doc2", Topic: "A", HasTopic: true},
	})
}

func TestSessionViewBeforeLoad(t *testing.T) {
	s := NewStore(time.Hour).Create()

	_, err := s.View()
	assert.ErrorIs(t, err, ErrNoTable)
	assert.ErrorIs(t, s.Select([]string{"A"}), ErrNoTable)
	assert.False(t, s.Loaded())
}

func TestSessionLoadSelectsEverything(t *testing.T) {
	s := NewStore(time.Hour).Create()
	s.Load("upload.xlsx", scenarioTable())

	v, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, "upload.xlsx", v.Filename)
	assert.Equal(t, []TopicOption{{Label: "A", Selected: true}, {Label: "B", Selected: true}}, v.Topics)
	assert.Equal(t, 3, v.Total)
	assert.Equal(t, 3, v.Correct)
}

func TestSessionSelect(t *testing.T) {
	s := NewStore(time.Hour).Create()
	s.Load("upload.xlsx", scenarioTable())

	require.NoError(t, s.Select([]string{"A", "NotATopic"}))
	v, err := s.View()
	require.NoError(t, err)

	assert.Equal(t, []TopicOption{{Label: "A", Selected: true}, {Label: "B", Selected: false}}, v.Topics)
	assert.Equal(t, 2, v.Correct)
	assert.Equal(t, []topics.SummaryRow{
		{Topic: "A", Count: 2, Percentage: 66.7, IsCorrect: true},
		{Topic: "B", Count: 1, Percentage: 33.3, IsCorrect: false},
	}, v.Summary)
}

func TestSessionReloadResetsSelection(t *testing.T) {
	s := NewStore(time.Hour).Create()
	s.Load("first.xlsx", scenarioTable())
	require.NoError(t, s.Select(nil))

	s.Load("second.xlsx", topics.NewTable([]topics.Record{
		{Document: "x", Topic: "C", HasTopic: true},
	}))
	v, err := s.View()
	require.NoError(t, err)
	assert.Equal(t, []TopicOption{{Label: "C", Selected: true}}, v.Topics)
	assert.Equal(t, 1, v.Correct)
}

func TestSessionEmptySelection(t *testing.T) {
	s := NewStore(time.Hour).Create()
	s.Load("upload.xlsx", scenarioTable())
	require.NoError(t, s.Select([]string{}))

	v, err := s.View()
	require.NoError(t, err)
	for _, r := range v.Rows {
		assert.False(t, r.IsCorrect)
	}
	for _, r := range v.Summary {
		assert.False(t, r.IsCorrect)
	}
}

func TestStoreGetOrCreate(t *testing.T) {
	st := NewStore(time.Hour)

	s, created := st.GetOrCreate("not-a-uuid")
	assert.True(t, created)

	again, created := st.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)
	assert.Equal(t, 1, st.Len())
}

func TestStoreSweep(t *testing.T) {
	st := NewStore(time.Minute)
	st.Create()
	st.Create()

	assert.Equal(t, 0, st.Sweep())

	st.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	assert.Equal(t, 2, st.Sweep())
	assert.Equal(t, 0, st.Len())
}

func TestSessionClear(t *testing.T) {
	s := NewStore(time.Hour).Create()
	s.Load("upload.xlsx", scenarioTable())
	s.Clear()

	assert.False(t, s.Loaded())
	assert.Empty(t, s.Topics())
	_, _, err := s.Snapshot()
	assert.ErrorIs(t, err, ErrNoTable)
}
