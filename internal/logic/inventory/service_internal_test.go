package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestIsRunning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		givePhase *string
		want      bool
		wantErr   error
	}{
		{name: "running", givePhase: ptr.To("Running"), want: true},
		{name: "pending", givePhase: ptr.To("Pending")},
		{name: "succeeded", givePhase: ptr.To("Succeeded")},
		{name: "case sensitive", givePhase: ptr.To("running")},
		{name: "missing phase", wantErr: ErrPodPhaseMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := isRunning(&Pod{Name: "p", Namespace: "ns", Phase: tt.givePhase})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFailureReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		giveErr error
		want    string
	}{
		{name: "identity", giveErr: ErrPodIdentityMissing, want: reasonIdentityMissing},
		{name: "phase", giveErr: ErrPodPhaseMissing, want: reasonPhaseMissing},
		{
			name:    "wrapped requests",
			giveErr: fmt.Errorf("normalize pod: %w", &NormalizeError{Container: "c", Err: ErrContainerRequestsMissing}),
			want:    reasonRequestsMissing,
		},
		{name: "cpu", giveErr: &NormalizeError{Container: "c", Err: ErrContainerCPURequestMissing}, want: reasonCPURequestMissing},
		{
			name:    "memory",
			giveErr: &NormalizeError{Container: "c", Err: ErrContainerMemoryRequestMissing},
			want:    reasonMemoryRequestMissing,
		},
		{name: "unknown", giveErr: context.Canceled, want: reasonUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, failureReason(tt.giveErr))
		})
	}
}

type markedError struct {
	msg string
}

func (e markedError) Error() string { return e.msg }

type forbiddenTestError struct{ markedError }

func (forbiddenTestError) IsForbidden() {}

type notFoundTestError struct{ markedError }

func (notFoundTestError) IsNotFound() {}

type tooManyRequestsTestError struct{ markedError }

func (tooManyRequestsTestError) IsTooManyRequests() {}

func TestQueryFailureLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		giveErr error
		want    slog.Level
	}{
		{name: "forbidden", giveErr: forbiddenTestError{markedError{"forbidden"}}, want: slog.LevelWarn},
		{name: "not found", giveErr: notFoundTestError{markedError{"gone"}}, want: slog.LevelWarn},
		{
			name:    "too many requests wrapped",
			giveErr: fmt.Errorf("list: %w", tooManyRequestsTestError{markedError{"slow down"}}),
			want:    slog.LevelWarn,
		},
		{name: "plain error", giveErr: errors.New("connection refused"), want: slog.LevelError},
		{name: "deadline", giveErr: context.DeadlineExceeded, want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, queryFailureLevel(tt.giveErr))
		})
	}
}
