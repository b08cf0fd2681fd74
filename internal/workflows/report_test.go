package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/core/usecases"
	"github.com/samirrijal/olistboard/internal/workflows"
)

func TestReportWorkflow(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	a := &workflows.ReportActivities{}
	env.RegisterActivity(a)

	input := workflows.ReportInput{Start: "2018-01-01", End: "2018-06-30"}
	env.OnActivity(a.ComputeSnapshot, mock.Anything, input).
		Return(&domain.Snapshot{ID: "snap-1", Orders: 42}, nil)
	env.OnActivity(a.RenderCharts, mock.Anything, input).
		Return(map[string]int{domain.ChartRevenueHexbin: 100, domain.ChartRegionSpend: 200}, nil)
	env.OnActivity(a.PublishSnapshot, mock.Anything, mock.Anything).Return(true, nil)

	env.ExecuteWorkflow(workflows.ReportWorkflow, input)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result workflows.ReportResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, "snap-1", result.SnapshotID)
	require.Equal(t, 42, result.Orders)
	require.True(t, result.Published)
	require.Len(t, result.Charts, 2)
}

func TestReportWorkflow_PublishFailureInvalidates(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	a := &workflows.ReportActivities{}
	env.RegisterActivity(a)

	input := workflows.ReportInput{}
	env.OnActivity(a.ComputeSnapshot, mock.Anything, input).
		Return(&domain.Snapshot{ID: "snap-2"}, nil)
	env.OnActivity(a.RenderCharts, mock.Anything, input).Return(map[string]int{}, nil)
	env.OnActivity(a.PublishSnapshot, mock.Anything, mock.Anything).
		Return(false, temporal.NewNonRetryableApplicationError("nats down", "publish", errors.New("nats down")))
	invalidated := false
	env.OnActivity(a.InvalidateCharts, mock.Anything, input).Return(func(_ context.Context, _ workflows.ReportInput) error {
		invalidated = true
		return nil
	})

	env.ExecuteWorkflow(workflows.ReportWorkflow, input)

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	require.True(t, invalidated)
}

func TestComputeSnapshot_BadRangeIsNotRetried(t *testing.T) {
	a := &workflows.ReportActivities{
		Analytics: usecases.NewAnalyticsService(&domain.Dataset{}),
	}

	for _, input := range []workflows.ReportInput{
		{Start: "2018-13-01", End: "2018-06-30"},
		{Start: "", End: ""},
	} {
		_, err := a.ComputeSnapshot(context.Background(), input)
		require.Error(t, err)

		var appErr *temporal.ApplicationError
		require.True(t, errors.As(err, &appErr), "input %+v: got %T", input, err)
		require.True(t, appErr.NonRetryable())
		require.Equal(t, "InvalidRange", appErr.Type())
	}
}
