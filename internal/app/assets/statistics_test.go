package assets

import (
	"reflect"
	"testing"
	"time"

	"github.com/argus-sec/argus-portal/internal/domain"
)

func Test_nextLiveness(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-10 * time.Minute)

	type args struct {
		asset     domain.Asset
		reachable bool
	}
	tests := []struct {
		name          string
		args          args
		wantReachable bool
		wantLastSeen  *time.Time
	}{
		{
			name:          "first sighting",
			args:          args{asset: domain.Asset{}, reachable: true},
			wantReachable: true,
			wantLastSeen:  &now,
		},
		{
			name:          "still reachable",
			args:          args{asset: domain.Asset{Reachable: true, LastSeen: &earlier}, reachable: true},
			wantReachable: true,
			wantLastSeen:  &now,
		},
		{
			name:          "became unreachable",
			args:          args{asset: domain.Asset{Reachable: true, LastSeen: &earlier}, reachable: false},
			wantReachable: false,
			wantLastSeen:  &earlier,
		},
		{
			name:          "never seen",
			args:          args{asset: domain.Asset{}, reachable: false},
			wantReachable: false,
			wantLastSeen:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotReachable, gotLastSeen := nextLiveness(tt.args.asset, tt.args.reachable, now)
			if gotReachable != tt.wantReachable {
				t.Errorf("nextLiveness() reachable = %v, want %v", gotReachable, tt.wantReachable)
			}
			if !reflect.DeepEqual(gotLastSeen, tt.wantLastSeen) {
				t.Errorf("nextLiveness() lastSeen = %v, want %v", gotLastSeen, tt.wantLastSeen)
			}
		})
	}
}
