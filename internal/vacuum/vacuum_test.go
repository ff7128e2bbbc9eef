package vacuum

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/jpl-au/odin/internal/service"
	"github.com/jpl-au/odin/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService implements just enough of service.Service for vacuum.
type fakeService struct {
	service.Service
	check   *service.CheckResult
	pruned  []string
	pruneFn func([]string) ([]string, error)
}

func (f *fakeService) Check(context.Context) (*service.CheckResult, error) {
	return f.check, nil
}

func (f *fakeService) PruneOrphans(_ context.Context, ids []string) ([]string, error) {
	if f.pruneFn != nil {
		return f.pruneFn(ids)
	}
	f.pruned = append(f.pruned, ids...)
	return ids, nil
}

func TestRunRemovesOrphans(t *testing.T) {
	svc := &fakeService{check: &service.CheckResult{Orphans: []string{"a", "b"}}}
	var buf bytes.Buffer

	res, err := Run(context.Background(), &buf, svc, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Removed)
	assert.Equal(t, []string{"a", "b"}, svc.pruned)
	assert.Contains(t, buf.String(), "Vacuumed 2 file(s)")
}

func TestRunDryRun(t *testing.T) {
	svc := &fakeService{check: &service.CheckResult{
		Orphans: []string{"a"},
		Missing: []store.Document{{ID: 3, Title: "gone", ContentID: "c"}},
	}}
	var buf bytes.Buffer

	res, err := Run(context.Background(), &buf, svc, Options{DryRun: true})
	require.NoError(t, err)
	assert.Empty(t, res.Removed)
	assert.Empty(t, svc.pruned)
	assert.Contains(t, buf.String(), "Would remove: a\n")
	assert.Contains(t, buf.String(), "Missing file: #3 gone (c)\n")
}

func TestRunNothingToDo(t *testing.T) {
	svc := &fakeService{check: &service.CheckResult{}}
	var buf bytes.Buffer

	_, err := Run(context.Background(), &buf, svc, Options{})
	require.NoError(t, err)
	assert.Equal(t, "No orphaned files\n", buf.String())
}

func TestRunPartialFailure(t *testing.T) {
	svc := &fakeService{
		check: &service.CheckResult{Orphans: []string{"a", "b"}},
		pruneFn: func([]string) ([]string, error) {
			return []string{"a"}, errors.New("permission denied")
		},
	}
	var buf bytes.Buffer

	res, err := Run(context.Background(), &buf, svc, Options{})
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, res.Removed)
	assert.Contains(t, buf.String(), "Removed: a\n")
}
