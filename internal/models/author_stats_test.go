package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *AuthorRecord {
	r := NewAuthorRecord("dev@example.com")
	r.SetNameOnce("Dev One")
	r.SetNameOnce("Someone Else")
	r.CommitsNonMerge = 4
	r.CommitsMerge = 1
	r.CommitsBugfix = 1
	r.CommitsCoauthored = 2
	r.ReviewsGiven = 3
	r.TotalFilesChanged = 6
	r.AddLines(CategoryCode, 100, 20)
	r.AddLines(CategoryTest, 40, 0)
	r.AddFileStatus(CategoryCode, FileStatusAdded)
	r.AddFileStatus(CategoryCode, FileStatusModified)
	r.AddFileStatus(CategoryTest, FileStatusDeleted)
	r.TouchFile("main.go")
	r.TouchFile("main_test.go")
	r.TouchFile("main.go")
	r.RecordCommitDate("2024-03-10")
	r.RecordCommitDate("2024-01-05")
	r.RecordCommitDate("2024-02-01")
	r.RecordCommitDate("2024-01-05")
	return r
}

func TestAuthorRecordSnapshot(t *testing.T) {
	stats := sampleRecord().Snapshot()

	t.Run("Name is kept from the first sighting", func(t *testing.T) {
		assert.Equal(t, "Dev One", stats.Name)
	})

	t.Run("Every category is present", func(t *testing.T) {
		assert.Len(t, stats.Categories, len(Categories))
		assert.Equal(t, CategoryCounts{}, stats.Categories[CategoryDocs])
		assert.Equal(t, 100, stats.Categories[CategoryCode].LinesAdded)
	})

	t.Run("Totals agree with their parts", func(t *testing.T) {
		assert.Equal(t, stats.CommitsNonMerge+stats.CommitsMerge, stats.CommitsTotal())
		assert.Equal(t, stats.LinesAdded()+stats.LinesDeleted(), stats.LinesTotal())
		assert.Equal(t, 140, stats.LinesAdded())
		assert.Equal(t, 20, stats.LinesDeleted())
		assert.Equal(t, 1, stats.FilesAdded())
		assert.Equal(t, 1, stats.FilesDeleted())
		assert.Equal(t, 1, stats.FilesModified())
	})

	t.Run("Sets are sorted and deduplicated", func(t *testing.T) {
		assert.Equal(t, []string{"main.go", "main_test.go"}, stats.Files)
		assert.Equal(t, []string{"2024-01-05", "2024-02-01", "2024-03-10"}, stats.DaysActive)
		assert.Equal(t, 2, stats.FilesTouched())
		assert.Equal(t, 3, stats.DaysActiveCount())
	})

	t.Run("Commit window ignores arrival order", func(t *testing.T) {
		assert.Equal(t, "2024-01-05", stats.FirstCommitDate)
		assert.Equal(t, "2024-03-10", stats.LastCommitDate)
		assert.Equal(t, 65, stats.DaysSpan())
	})

	t.Run("Snapshot does not alias the record", func(t *testing.T) {
		r := sampleRecord()
		snap := r.Snapshot()
		r.AddLines(CategoryCode, 1000, 0)
		r.TouchFile("late.go")
		assert.Equal(t, 100, snap.Categories[CategoryCode].LinesAdded)
		assert.Len(t, snap.Files, 2)
	})
}

func TestAuthorStatsRatios(t *testing.T) {
	testCases := []struct {
		name     string
		stats    AuthorStats
		perLine  float64
		freq     float64
		churn    float64
		files    float64
		merge    float64
		bugfix   float64
		activity int
	}{
		{
			name:  "Zero denominators yield zero",
			stats: AuthorStats{Categories: map[Category]CategoryCounts{}},
		},
		{
			name: "Regular author",
			stats: AuthorStats{
				CommitsNonMerge:   3,
				CommitsMerge:      1,
				CommitsBugfix:     1,
				ReviewsGiven:      2,
				CommitsCoauthored: 1,
				TotalFilesChanged: 7,
				Categories: map[Category]CategoryCounts{
					CategoryCode: {LinesAdded: 90, LinesDeleted: 10},
				},
				DaysActive: []string{"2024-01-01", "2024-01-02"},
			},
			perLine:  33.33,
			freq:     1.5,
			churn:    0.11,
			files:    2.33,
			merge:    0.25,
			bugfix:   1.0 / 3.0,
			activity: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.perLine, tc.stats.LinesPerCommit())
			assert.Equal(t, tc.freq, tc.stats.CommitFrequency())
			assert.Equal(t, tc.churn, tc.stats.ChurnRatio())
			assert.Equal(t, tc.files, tc.stats.FilesPerCommit())
			assert.InDelta(t, tc.merge, tc.stats.MergeRatio(), 1e-9)
			assert.InDelta(t, tc.bugfix, tc.stats.BugfixRatio(), 1e-9)
			assert.Equal(t, tc.activity, tc.stats.ReviewParticipation())
		})
	}
}

func TestDaysSpan(t *testing.T) {
	testCases := []struct {
		name     string
		first    string
		last     string
		expected int
	}{
		{"Single day", "2024-05-01", "2024-05-01", 0},
		{"Across leap day", "2024-02-28", "2024-03-01", 2},
		{"Missing dates", "", "", 0},
		{"Unparseable date", "yesterday", "2024-05-01", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stats := AuthorStats{FirstCommitDate: tc.first, LastCommitDate: tc.last}
			assert.Equal(t, tc.expected, stats.DaysSpan())
		})
	}
}

func TestLedgerSnapshotFind(t *testing.T) {
	snapshot := NewLedgerSnapshot([]AuthorStats{
		{Identity: "zed@example.com"},
		{Identity: "amy@example.com"},
		{Identity: "max@example.com"},
	})

	require.Equal(t, 3, snapshot.Len())
	assert.Equal(t, "amy@example.com", snapshot.Authors[0].Identity)
	assert.Equal(t, "zed@example.com", snapshot.Authors[2].Identity)

	found, ok := snapshot.Find("max@example.com")
	assert.True(t, ok)
	assert.Equal(t, "max@example.com", found.Identity)

	_, ok = snapshot.Find("nobody@example.com")
	assert.False(t, ok)
}

func TestParseFileStatus(t *testing.T) {
	testCases := []struct {
		code     string
		expected FileStatus
		counted  bool
	}{
		{"A", FileStatusAdded, true},
		{"C075", FileStatusAdded, true},
		{"M", FileStatusModified, true},
		{"R100", FileStatusModified, true},
		{"D", FileStatusDeleted, true},
		{"T", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		t.Run("code "+tc.code, func(t *testing.T) {
			status, counted := ParseFileStatus(tc.code)
			assert.Equal(t, tc.expected, status)
			assert.Equal(t, tc.counted, counted)
		})
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.333, Round(1.0/3.0, 3))
	assert.Equal(t, 2.5, Round(2.4999999, 2))
	assert.Equal(t, 0.0, SafeDiv(5, 0))
	assert.Equal(t, 2.5, SafeDiv(5, 2))
}
