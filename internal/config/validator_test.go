package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snodectl/snodectl/internal/model"
	snoderrors "github.com/snodectl/snodectl/pkg/errors"
)

func TestDesiredFromArgs(t *testing.T) {
	t.Parallel()

	t.Run("empty state means read-only", func(t *testing.T) {
		t.Parallel()

		desired, err := DesiredFromArgs("", nil)
		require.NoError(t, err)
		require.Nil(t, desired)
	})

	t.Run("token is normalised case-insensitively", func(t *testing.T) {
		t.Parallel()

		desired, err := DesiredFromArgs("resume", nil)
		require.NoError(t, err)
		require.NotNil(t, desired)
		require.Equal(t, model.StateResume, desired.State)
		require.Nil(t, desired.Reason)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := DesiredFromArgs("BOGUS", nil)
		require.Error(t, err)

		var validationErr *snoderrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "new_state", validationErr.Field)
		require.Contains(t, validationErr.Message, "BOGUS")
	})

	t.Run("drain without reason is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := DesiredFromArgs("DRAIN", nil)
		require.Error(t, err)

		var validationErr *snoderrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "new_state_reason", validationErr.Field)
	})

	t.Run("drain with reason is accepted", func(t *testing.T) {
		t.Parallel()

		reason := "kernel upgrade"
		desired, err := DesiredFromArgs("drain", &reason)
		require.NoError(t, err)
		require.NotNil(t, desired)
		require.Equal(t, model.StateDrain, desired.State)
		require.NotNil(t, desired.Reason)
		require.Equal(t, "kernel upgrade", *desired.Reason)
	})

	t.Run("bogus token reported before missing reason", func(t *testing.T) {
		t.Parallel()

		_, err := DesiredFromArgs("NOT_A_STATE", nil)
		require.Error(t, err)

		var validationErr *snoderrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		require.Equal(t, "new_state", validationErr.Field)
	})
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	reason := "maintenance"

	cases := []struct {
		name      string
		request   *Request
		wantField string
	}{
		{
			name:    "read-only request",
			request: &Request{Nodes: []string{"n1", "n2"}},
		},
		{
			name: "reconcile request",
			request: &Request{
				Nodes:   []string{"n1"},
				Desired: &model.DesiredState{State: model.StateDrain, Reason: &reason},
			},
		},
		{
			name:    "parallel within bounds",
			request: &Request{Nodes: []string{"n1"}, Parallel: 16},
		},
		{
			name:      "nil request",
			request:   nil,
			wantField: "request",
		},
		{
			name:      "empty node list",
			request:   &Request{Nodes: nil},
			wantField: "nodes",
		},
		{
			name:      "invalid node name",
			request:   &Request{Nodes: []string{"n 1"}},
			wantField: "nodes",
		},
		{
			name:      "duplicate nodes",
			request:   &Request{Nodes: []string{"n1", "n1"}},
			wantField: "nodes[1]",
		},
		{
			name:      "parallel above bound",
			request:   &Request{Nodes: []string{"n1"}, Parallel: 17},
			wantField: "parallel",
		},
		{
			name: "drain without reason",
			request: &Request{
				Nodes:   []string{"n1"},
				Desired: &model.DesiredState{State: model.StateDrain},
			},
			wantField: "new_state_reason",
		},
		{
			name: "token outside allowed set",
			request: &Request{
				Nodes:   []string{"n1"},
				Desired: &model.DesiredState{State: model.StateToken("BOGUS")},
			},
			wantField: "new_state",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateRequest(tc.request)
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *snoderrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Contains(t, validationErr.Field, tc.wantField)
		})
	}
}

func TestValidateBatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		batch     *Batch
		wantField string
	}{
		{
			name: "valid batch",
			batch: &Batch{
				Version: "1.0",
				Name:    "weekly maintenance",
				Targets: []BatchTarget{
					{Nodes: []string{"n[1-4]"}, State: "DRAIN", Reason: "weekly maintenance"},
					{Nodes: []string{"m1"}, State: "resume"},
				},
			},
		},
		{
			name:      "nil batch",
			batch:     nil,
			wantField: "batch",
		},
		{
			name: "missing version",
			batch: &Batch{
				Name:    "no version",
				Targets: []BatchTarget{{Nodes: []string{"n1"}, State: "RESUME"}},
			},
			wantField: "version",
		},
		{
			name: "missing targets",
			batch: &Batch{
				Version: "1.0",
				Name:    "no targets",
			},
			wantField: "targets",
		},
		{
			name: "unknown state token",
			batch: &Batch{
				Version: "1.0",
				Name:    "bad state",
				Targets: []BatchTarget{{Nodes: []string{"n1"}, State: "BOGUS"}},
			},
			wantField: "state",
		},
		{
			name: "drain target without reason",
			batch: &Batch{
				Version: "1.0",
				Name:    "missing reason",
				Targets: []BatchTarget{{Nodes: []string{"n1"}, State: "DRAIN"}},
			},
			wantField: "targets[0].reason",
		},
		{
			name: "parallel above bound",
			batch: &Batch{
				Version:  "1.0",
				Name:     "too parallel",
				Settings: BatchSettings{Parallel: 64},
				Targets:  []BatchTarget{{Nodes: []string{"n1"}, State: "RESUME"}},
			},
			wantField: "parallel",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateBatch(tc.batch)
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *snoderrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Contains(t, validationErr.Field, tc.wantField)
		})
	}
}
