package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-portal/internal/submission"
)

type stubRunner struct {
	items []submission.BatchItem
	got   submission.BatchOptions
}

func (s *stubRunner) Run(_ context.Context, opts submission.BatchOptions) (*submission.BatchSummary, error) {
	s.got = opts
	summary := &submission.BatchSummary{}
	for _, item := range s.items {
		summary.Items = append(summary.Items, item)
		if item.Success {
			summary.Successful++
		} else {
			summary.Failed++
		}
		if opts.OnItem != nil {
			opts.OnItem(item)
		}
	}
	return summary, nil
}

func TestRunBatch_PrintsEachItem(t *testing.T) {
	runner := &stubRunner{items: []submission.BatchItem{
		{Index: 1, Success: true, Company: "WellCare Health Technologies", Category: "Healthcare", ApplicationID: "app-1"},
		{Index: 2, Company: "Harbour Logistics", Category: "Logistics", Error: "database unavailable"},
		{Index: 3, Company: "Kowloon Robotics", Category: "AI", Error: "finalize failed", ApplicationID: "orphan-1"},
	}}

	var out bytes.Buffer
	summary, err := runBatch(context.Background(), &out, runner, submission.BatchOptions{Count: 3, SkipFiles: true})
	require.NoError(t, err)

	assert.True(t, runner.got.SkipFiles)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 2, summary.Failed)

	text := out.String()
	assert.Contains(t, text, "[1/3] OK   WellCare Health Technologies (Healthcare) -> app-1")
	assert.Contains(t, text, "[2/3] FAIL Harbour Logistics (Logistics): database unavailable\n")
	assert.Contains(t, text, "[record orphan-1]")
}

func TestPrintSummary(t *testing.T) {
	var out bytes.Buffer
	printSummary(&out, &submission.BatchSummary{
		Items: []submission.BatchItem{
			{Index: 1, Success: true, Company: "WellCare", ApplicationID: "app-1"},
			{Index: 2, Company: "Harbour", Error: "boom"},
		},
		Successful: 1,
		Failed:     1,
	})

	assert.Contains(t, out.String(), "Submitted: 2  Successful: 1  Failed: 1")
	assert.Contains(t, out.String(), "  app-1  WellCare")
	assert.NotContains(t, out.String(), "Harbour")

	out.Reset()
	printSummary(&out, nil)
	assert.Empty(t, out.String())
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"config", "count", "delay", "skip-files", "strategy"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	require.NoError(t, cmd.Flags().Parse([]string{"--count", "3", "--delay", "250ms", "--skip-files"}))
	assert.True(t, cmd.Flags().Changed("count"))
	assert.Equal(t, "3", cmd.Flags().Lookup("count").Value.String())
	assert.Equal(t, "250ms", cmd.Flags().Lookup("delay").Value.String())
}
