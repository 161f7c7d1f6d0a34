package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snodectl/snodectl/internal/model"
)

func TestDiff(t *testing.T) {
	t.Parallel()

	maintenance := "maintenance"

	cases := []struct {
		name     string
		observed model.NodeRecord
		desired  model.DesiredState
		want     model.Decision
	}{
		{
			name:     "token present among several means state unchanged",
			observed: model.NodeRecord{State: []string{"IDLE", "DRAIN"}, Reason: "maintenance"},
			desired:  model.DesiredState{State: model.StateDrain, Reason: &maintenance},
			want:     model.Decision{StateChanged: false, ReasonChanged: false},
		},
		{
			name:     "missing token means state changed",
			observed: model.NodeRecord{State: []string{"IDLE"}, Reason: "maintenance"},
			desired:  model.DesiredState{State: model.StateDrain, Reason: &maintenance},
			want:     model.Decision{StateChanged: true, ReasonChanged: false},
		},
		{
			name:     "different reason means reason changed",
			observed: model.NodeRecord{State: []string{"DRAIN"}, Reason: "old"},
			desired:  model.DesiredState{State: model.StateDrain, Reason: &maintenance},
			want:     model.Decision{StateChanged: false, ReasonChanged: true},
		},
		{
			name:     "both differ",
			observed: model.NodeRecord{State: []string{"IDLE"}, Reason: ""},
			desired:  model.DesiredState{State: model.StateDrain, Reason: &maintenance},
			want:     model.Decision{StateChanged: true, ReasonChanged: true},
		},
		{
			name:     "unset desired reason compares as None text against empty",
			observed: model.NodeRecord{State: []string{"RESUME"}, Reason: ""},
			desired:  model.DesiredState{State: model.StateResume},
			want:     model.Decision{StateChanged: false, ReasonChanged: true},
		},
		{
			name:     "unset desired reason matches observed literal None",
			observed: model.NodeRecord{State: []string{"RESUME"}, Reason: "None"},
			desired:  model.DesiredState{State: model.StateResume},
			want:     model.Decision{StateChanged: false, ReasonChanged: false},
		},
		{
			name:     "empty observed token set",
			observed: model.NodeRecord{State: nil, Reason: "maintenance"},
			desired:  model.DesiredState{State: model.StateDrain, Reason: &maintenance},
			want:     model.Decision{StateChanged: true, ReasonChanged: false},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Diff(tc.observed, tc.desired)
			require.Equal(t, tc.want, got)
		})
	}
}
