package resolution

import (
	"reflect"
	"testing"

	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

func TestResolve(t *testing.T) {
	file := uuid.NewUUID()
	v720 := uuid.NewUUID()
	set := model.ResolutionSet{model.Resolution720p: v720}

	tests := []struct {
		name  string
		label string
		set   model.ResolutionSet
		want  uuid.UUID
	}{
		{"original", "original", set, file},
		{"empty label", "", set, file},
		{"known and present", "720p", set, v720},
		{"known but absent", "1080p", set, file},
		{"unknown label", "4k", set, file},
		{"nil set", "720p", nil, file},
		{"nil id in set", "360p", model.ResolutionSet{model.Resolution360p: uuid.Nil}, file},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.label, file, tc.set); got != tc.want {
				t.Errorf("Resolve(%q) = %s; want %s", tc.label, got, tc.want)
			}
		})
	}
}

func TestAvailable(t *testing.T) {
	set := model.ResolutionSet{
		model.Resolution1080p: uuid.NewUUID(),
		model.Resolution360p:  uuid.NewUUID(),
	}
	want := []string{"original", "360p", "1080p"}
	if got := Available(set); !reflect.DeepEqual(got, want) {
		t.Errorf("Available = %v; want %v", got, want)
	}
	if got := Available(nil); !reflect.DeepEqual(got, []string{"original"}) {
		t.Errorf("Available(nil) = %v; want [original]", got)
	}
}
