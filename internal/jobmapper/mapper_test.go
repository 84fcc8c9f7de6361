package jobmapper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"datasentry/domain/quality"
	"datasentry/internal"
	"datasentry/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) ClassifyJobTitle(ctx context.Context, title string) (*ports.JobFunctionSuggestion, error) {
	args := m.Called(ctx, title)
	s, _ := args.Get(0).(*ports.JobFunctionSuggestion)
	return s, args.Error(1)
}

const groundTruth = `current_job_title,job_function
Senior Software Engineer,Engineering
 Account Executive ,Sales
,Orphan
VP Marketing,
`

func newTestMapper(c ports.JobFunctionClassifier) *Mapper {
	return NewMapper(c, time.Second, internal.NewNopLogger())
}

func TestLoadGroundTruth(t *testing.T) {
	m := newTestMapper(nil)
	n, err := m.LoadGroundTruth(strings.NewReader(groundTruth))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, m.Size())
}

func TestLoadGroundTruthAlternateHeadersAndReload(t *testing.T) {
	m := newTestMapper(nil)
	_, err := m.LoadGroundTruth(strings.NewReader(groundTruth))
	require.NoError(t, err)

	n, err := m.LoadGroundTruth(strings.NewReader("Title,Function\nCFO,Finance\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got := m.MapJobTitle(context.Background(), "cfo")
	assert.Equal(t, "Finance", got.Function)
	got = m.MapJobTitle(context.Background(), "Senior Software Engineer")
	assert.Equal(t, quality.FunctionUnmapped, got.Function, "reload clears previous entries")
}

func TestLoadGroundTruthRejectsBadInput(t *testing.T) {
	m := newTestMapper(nil)
	_, err := m.LoadGroundTruth(strings.NewReader(""))
	assert.Error(t, err)
	_, err = m.LoadGroundTruth(strings.NewReader("name,department\nx,y\n"))
	assert.Error(t, err)
}

func TestLoadGroundTruthFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.csv")
	require.NoError(t, os.WriteFile(path, []byte(groundTruth), 0o644))

	n, err := newTestMapper(nil).LoadGroundTruthFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = newTestMapper(nil).LoadGroundTruthFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestMapJobTitleEmpty(t *testing.T) {
	c := new(mockClassifier)
	got := newTestMapper(c).MapJobTitle(context.Background(), "   ")
	assert.Equal(t, quality.JobMapping{Function: quality.FunctionUnknown, Source: quality.SourceNone}, got)
	c.AssertNotCalled(t, "ClassifyJobTitle", mock.Anything, mock.Anything)
}

func TestMapJobTitleGroundTruth(t *testing.T) {
	c := new(mockClassifier)
	m := newTestMapper(c)
	_, err := m.LoadGroundTruth(strings.NewReader(groundTruth))
	require.NoError(t, err)

	got := m.MapJobTitle(context.Background(), "  ACCOUNT executive")
	assert.Equal(t, quality.JobMapping{Function: "Sales", Confidence: 0.95, Source: quality.SourceGroundTruth}, got)
	c.AssertNotCalled(t, "ClassifyJobTitle", mock.Anything, mock.Anything)
}

func TestMapJobTitleAIFallback(t *testing.T) {
	c := new(mockClassifier)
	c.On("ClassifyJobTitle", mock.Anything, "Growth Hacker").
		Return(&ports.JobFunctionSuggestion{Function: "Marketing", Confidence: 0.7, Reason: "growth"}, nil)
	c.On("ClassifyJobTitle", mock.Anything, "Closer").
		Return(&ports.JobFunctionSuggestion{Function: "Sales"}, nil)

	m := newTestMapper(c)

	got := m.MapJobTitle(context.Background(), "Growth Hacker")
	assert.Equal(t, quality.JobMapping{Function: "Marketing", Confidence: 0.7, Source: quality.SourceAI, Reason: "growth"}, got)

	got = m.MapJobTitle(context.Background(), "Closer")
	assert.Equal(t, 0.8, got.Confidence)
	assert.Equal(t, quality.SourceAI, got.Source)
}

func TestMapJobTitleAIFailure(t *testing.T) {
	c := new(mockClassifier)
	c.On("ClassifyJobTitle", mock.Anything, "Broken").Return(nil, errors.New("ollama down"))
	c.On("ClassifyJobTitle", mock.Anything, "Blank").Return(&ports.JobFunctionSuggestion{Function: ""}, nil)

	m := newTestMapper(c)
	want := quality.JobMapping{Function: quality.FunctionUnmapped, Source: quality.SourceFailed}
	assert.Equal(t, want, m.MapJobTitle(context.Background(), "Broken"))
	assert.Equal(t, want, m.MapJobTitle(context.Background(), "Blank"))
	assert.Equal(t, want, newTestMapper(nil).MapJobTitle(context.Background(), "Anything"))
}

func TestMapJobTitleTimeout(t *testing.T) {
	c := new(mockClassifier)
	c.On("ClassifyJobTitle", mock.Anything, "Slow").
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return(nil, context.DeadlineExceeded)

	m := NewMapper(c, 20*time.Millisecond, internal.NewNopLogger())
	got := m.MapJobTitle(context.Background(), "Slow")
	assert.Equal(t, quality.FunctionUnmapped, got.Function)
}

func TestMapJobTitleConcurrentWithReload(t *testing.T) {
	m := newTestMapper(nil)
	_, err := m.LoadGroundTruth(strings.NewReader(groundTruth))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			got := m.MapJobTitle(context.Background(), "senior software engineer")
			assert.Equal(t, "Engineering", got.Function)
		}()
		go func() {
			defer wg.Done()
			_, _ = m.LoadGroundTruth(strings.NewReader(groundTruth))
		}()
	}
	wg.Wait()
}
