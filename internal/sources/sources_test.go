package sources_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newspipe/internal/logger"
	"github.com/jonesrussell/newspipe/internal/sources"
)

func validSource() sources.Source {
	return sources.Source{
		ID:   "apnews",
		Name: "Associated Press",
		Sections: []sources.Section{
			{CategoryID: "world", URL: "https://apnews.com/hub/world-news"},
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*sources.Source)
		wantErr string
	}{
		{
			name:   "valid source",
			mutate: func(*sources.Source) {},
		},
		{
			name:    "missing id",
			mutate:  func(s *sources.Source) { s.ID = "" },
			wantErr: "missing id",
		},
		{
			name:    "no sections",
			mutate:  func(s *sources.Source) { s.Sections = nil },
			wantErr: "no sections",
		},
		{
			name: "section without url",
			mutate: func(s *sources.Source) {
				s.Sections = []sources.Section{{CategoryID: "world"}}
			},
			wantErr: "has no url",
		},
		{
			name: "section without category",
			mutate: func(s *sources.Source) {
				s.Sections = []sources.Section{{URL: "https://apnews.com/hub/world-news"}}
			},
			wantErr: "has no category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := validSource()
			tt.mutate(&src)

			mgr, err := sources.New([]sources.Source{src}, logger.NewNoOp())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, mgr.All(), 1)
		})
	}
}

func TestNew_EmptyConfigs(t *testing.T) {
	t.Parallel()

	_, err := sources.New(nil, logger.NewNoOp())
	assert.ErrorIs(t, err, sources.ErrNoSources)
}

func TestNew_InvalidPatternIsIgnored(t *testing.T) {
	t.Parallel()

	src := validSource()
	src.LinkPattern = "clos[ing"

	mgr, err := sources.New([]sources.Source{src}, logger.NewNoOp())
	require.NoError(t, err)

	got, err := mgr.FindByID("apnews")
	require.NoError(t, err)
	assert.Nil(t, got.CompiledLinkPattern())
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	src := validSource()
	src.LinkPattern = `apnews\.com/[a-z0-9]`

	mgr, err := sources.New([]sources.Source{src}, logger.NewNoOp())
	require.NoError(t, err)

	got, err := mgr.FindByID("apnews")
	require.NoError(t, err)
	assert.Equal(t, "Associated Press", got.Name)
	require.NotNil(t, got.CompiledLinkPattern())
	assert.True(t, got.CompiledLinkPattern().MatchString("https://apnews.com/article/abc123"))

	_, err = mgr.FindByID("nope")
	assert.ErrorIs(t, err, sources.ErrSourceNotFound)
}
