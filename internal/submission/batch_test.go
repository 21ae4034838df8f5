package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "awards-portal/internal/common/errors"
	"awards-portal/internal/common/logger"
)

type scriptedSubmitter struct {
	inputs  []*Input
	results map[int]*Result
	errs    map[int]error
}

func (s *scriptedSubmitter) Submit(ctx context.Context, in *Input) (*Result, error) {
	n := len(s.inputs)
	s.inputs = append(s.inputs, in)
	if err := s.errs[n]; err != nil {
		return nil, err
	}
	if r := s.results[n]; r != nil {
		return r, nil
	}
	return &Result{Success: true, ApplicationID: "id-" + in.Form.AwardCategory}, nil
}

func TestBatchRunner_Run(t *testing.T) {
	sub := &scriptedSubmitter{
		results: map[int]*Result{1: {Success: false, Error: "create failed"}},
		errs:    map[int]error{2: apperrors.NewRecordUpdateFailedError("orphan-1", errors.New("timeout"))},
	}
	runner := NewBatchRunner(sub, logger.NewTestLogger(t))

	var seen []int
	summary, err := runner.Run(context.Background(), BatchOptions{
		Count:  4,
		OnItem: func(item BatchItem) { seen = append(seen, item.Index) },
	})
	require.NoError(t, err)
	require.Len(t, summary.Items, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, seen)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 2, summary.Failed)

	first := summary.Items[0]
	assert.True(t, first.Success)
	assert.Equal(t, "HealthTech Innovations Ltd", first.Company)
	assert.Equal(t, "health-innovation", first.Category)
	assert.Equal(t, "id-health-innovation", first.ApplicationID)

	assert.False(t, summary.Items[1].Success)
	assert.Equal(t, "create failed", summary.Items[1].Error)

	assert.False(t, summary.Items[2].Success)
	assert.Equal(t, "orphan-1", summary.Items[2].ApplicationID)

	require.Len(t, sub.inputs, 4)
	assert.Len(t, sub.inputs[0].Files, 4)
	assert.Equal(t, BatchUserAgent, sub.inputs[0].UserAgent)
}

func TestBatchRunner_SkipFiles(t *testing.T) {
	sub := &scriptedSubmitter{}
	runner := NewBatchRunner(sub, logger.NewTestLogger(t))

	_, err := runner.Run(context.Background(), BatchOptions{Count: 2, SkipFiles: true})
	require.NoError(t, err)
	for _, in := range sub.inputs {
		assert.Empty(t, in.Files)
	}
}

func TestBatchRunner_CancelDuringDelay(t *testing.T) {
	sub := &scriptedSubmitter{}
	runner := NewBatchRunner(sub, logger.NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	summary, err := runner.Run(ctx, BatchOptions{
		Count:  5,
		Delay:  time.Hour,
		OnItem: func(BatchItem) { cancel() },
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, summary.Items, 1)
	assert.Len(t, sub.inputs, 1)
}
