package video

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/SharmaTechie/video-stream-platform/internal/mock"
	"github.com/SharmaTechie/video-stream-platform/internal/model"
	"github.com/SharmaTechie/video-stream-platform/internal/transcode"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

var (
	testFileID = mustUUID("11111111-2222-3333-4444-555555555555")
	test360ID  = mustUUID("36036036-0000-0000-0000-000000000360")
	test720ID  = mustUUID("72072072-0000-0000-0000-000000000720")
	stale360ID = mustUUID("aaaaaaaa-0000-0000-0000-000000000360")
	stale720ID = mustUUID("aaaaaaaa-0000-0000-0000-000000000720")
)

func pendingVideo() *model.Video {
	return &model.Video{
		ID:              testVideoID,
		FileID:          testFileID,
		Resolutions:     model.ResolutionSet{},
		TranscodeStatus: model.TranscodeStatusPending,
	}
}

func TestTranscodeVideo(t *testing.T) {
	encErr := &transcode.EncodingError{Label: "1080p", ExitCode: 1, Stderr: "oops"}

	tests := []struct {
		name         string
		out          model.ResolutionSet
		runErr       error
		wantErr      bool
		wantStatuses []model.TranscodeStatus
		wantSet      model.ResolutionSet
		wantMessage  bool
	}{
		{
			name:         "all targets succeed",
			out:          model.ResolutionSet{"360p": test360ID, "720p": test720ID},
			wantStatuses: []model.TranscodeStatus{model.TranscodeStatusProcessing, model.TranscodeStatusReady},
			wantSet:      model.ResolutionSet{"360p": test360ID, "720p": test720ID},
		},
		{
			name:         "partial failure keeps produced variants",
			out:          model.ResolutionSet{"360p": test360ID},
			runErr:       &transcode.PartialError{Failures: []transcode.TargetFailure{{Label: "1080p", Err: encErr}}},
			wantStatuses: []model.TranscodeStatus{model.TranscodeStatusProcessing, model.TranscodeStatusReady},
			wantSet:      model.ResolutionSet{"360p": test360ID},
			wantMessage:  true,
		},
		{
			name:         "partial failure without variants",
			out:          model.ResolutionSet{},
			runErr:       &transcode.PartialError{Failures: []transcode.TargetFailure{{Label: "1080p", Err: encErr}}},
			wantErr:      true,
			wantStatuses: []model.TranscodeStatus{model.TranscodeStatusProcessing, model.TranscodeStatusFailed},
			wantSet:      model.ResolutionSet{},
			wantMessage:  true,
		},
		{
			name:         "run fails",
			runErr:       encErr,
			wantErr:      true,
			wantStatuses: []model.TranscodeStatus{model.TranscodeStatusProcessing, model.TranscodeStatusFailed},
			wantSet:      model.ResolutionSet{},
			wantMessage:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mock.MockVideoRepo{VideoRecord: pendingVideo()}
			tr := &mock.MockTranscoder{Out: tc.out, Err: tc.runErr}
			svc := NewVideoTranscoder(repo, &mock.MockObjectStore{}, tr)

			err := svc.TranscodeVideo(context.Background(), testVideoID)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v; wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr && !errors.Is(err, tc.runErr) {
				t.Errorf("expected error to wrap %v, got %v", tc.runErr, err)
			}
			if tr.SourceID != testFileID {
				t.Errorf("SourceID = %s; want %s", tr.SourceID, testFileID)
			}
			if !reflect.DeepEqual(repo.UpdatedStatuses, tc.wantStatuses) {
				t.Errorf("statuses = %v; want %v", repo.UpdatedStatuses, tc.wantStatuses)
			}
			if !reflect.DeepEqual(repo.Updated.Resolutions, tc.wantSet) {
				t.Errorf("resolutions = %v; want %v", repo.Updated.Resolutions, tc.wantSet)
			}
			if (repo.Updated.FailureMessage != nil) != tc.wantMessage {
				t.Errorf("FailureMessage = %v; want set=%v", repo.Updated.FailureMessage, tc.wantMessage)
			}
		})
	}
}

func TestTranscodeVideo_AlreadyReady(t *testing.T) {
	v := pendingVideo()
	v.TranscodeStatus = model.TranscodeStatusReady
	repo := &mock.MockVideoRepo{VideoRecord: v}
	tr := &mock.MockTranscoder{}

	if err := NewVideoTranscoder(repo, &mock.MockObjectStore{}, tr).TranscodeVideo(context.Background(), testVideoID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Called {
		t.Error("transcoder must not run for a ready video")
	}
	if repo.Updated != nil {
		t.Error("ready video must not be updated")
	}
}

func TestTranscodeVideo_NotFound(t *testing.T) {
	repo := &mock.MockVideoRepo{GetErr: sql.ErrNoRows}
	tr := &mock.MockTranscoder{}

	err := NewVideoTranscoder(repo, &mock.MockObjectStore{}, tr).TranscodeVideo(context.Background(), testVideoID)
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("err = %v; want ErrVideoNotFound", err)
	}
	if tr.Called {
		t.Error("transcoder must not run")
	}
}

func TestTranscodeVideo_MarkProcessingFails(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: pendingVideo(), UpdateErr: errors.New("db down")}
	tr := &mock.MockTranscoder{}

	if err := NewVideoTranscoder(repo, &mock.MockObjectStore{}, tr).TranscodeVideo(context.Background(), testVideoID); err == nil {
		t.Fatal("expected error")
	}
	if tr.Called {
		t.Error("transcoder must not run when the status cannot be recorded")
	}
}

func TestTranscodeVideo_RetryClearsFailureMessage(t *testing.T) {
	v := pendingVideo()
	v.TranscodeStatus = model.TranscodeStatusFailed
	msg := "previous failure"
	v.FailureMessage = &msg
	repo := &mock.MockVideoRepo{VideoRecord: v}
	tr := &mock.MockTranscoder{Out: model.ResolutionSet{"360p": test360ID}}

	if err := NewVideoTranscoder(repo, &mock.MockObjectStore{}, tr).TranscodeVideo(context.Background(), testVideoID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Updated.FailureMessage != nil {
		t.Errorf("FailureMessage = %q; want nil", *repo.Updated.FailureMessage)
	}
	if repo.Updated.TranscodeStatus != model.TranscodeStatusReady {
		t.Errorf("status = %q; want ready", repo.Updated.TranscodeStatus)
	}
}

func TestTranscodeVideo_RerunDeletesReplacedVariants(t *testing.T) {
	tests := []struct {
		name        string
		out         model.ResolutionSet
		runErr      error
		wantDeleted []uuid.UUID
	}{
		{
			name:        "new run replaces every variant",
			out:         model.ResolutionSet{"360p": test360ID, "720p": test720ID},
			wantDeleted: []uuid.UUID{stale360ID, stale720ID},
		},
		{
			name:        "variant carried over is kept",
			out:         model.ResolutionSet{"360p": stale360ID, "720p": test720ID},
			wantDeleted: []uuid.UUID{stale720ID},
		},
		{
			name:        "failed run drops the old variants",
			runErr:      errors.New("source unreadable"),
			wantDeleted: []uuid.UUID{stale360ID, stale720ID},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := pendingVideo()
			v.TranscodeStatus = model.TranscodeStatusProcessing
			v.Resolutions = model.ResolutionSet{"360p": stale360ID, "720p": stale720ID}
			repo := &mock.MockVideoRepo{VideoRecord: v}
			store := &mock.MockObjectStore{}
			tr := &mock.MockTranscoder{Out: tc.out, Err: tc.runErr}

			_ = NewVideoTranscoder(repo, store, tr).TranscodeVideo(context.Background(), testVideoID)

			if !sameIDs(store.DeletedIDs, tc.wantDeleted) {
				t.Errorf("deleted = %v; want %v", store.DeletedIDs, tc.wantDeleted)
			}
			for _, id := range store.DeletedIDs {
				if references(repo.Updated.Resolutions, id) {
					t.Errorf("deleted #%s is still referenced by the record", id)
				}
			}
		})
	}
}

func TestTranscodeVideo_DeletedDuringRun(t *testing.T) {
	v := pendingVideo()
	v.Resolutions = model.ResolutionSet{"360p": stale360ID}
	repo := &mock.MockVideoRepo{VideoRecord: v, UpdateErrs: map[int]error{1: sql.ErrNoRows}}
	store := &mock.MockObjectStore{}
	tr := &mock.MockTranscoder{Out: model.ResolutionSet{"360p": test360ID, "720p": test720ID}}

	err := NewVideoTranscoder(repo, store, tr).TranscodeVideo(context.Background(), testVideoID)
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("err = %v; want ErrVideoNotFound", err)
	}
	if want := []uuid.UUID{test360ID, test720ID}; !sameIDs(store.DeletedIDs, want) {
		t.Errorf("deleted = %v; want the new variants %v", store.DeletedIDs, want)
	}
}

func TestTranscodeVideo_OutcomeNotRecorded(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: pendingVideo(), UpdateErrs: map[int]error{1: errors.New("db down")}}
	store := &mock.MockObjectStore{}
	tr := &mock.MockTranscoder{Out: model.ResolutionSet{"360p": test360ID}}

	err := NewVideoTranscoder(repo, store, tr).TranscodeVideo(context.Background(), testVideoID)
	if err == nil || errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("err = %v; want a repository error", err)
	}
	if want := []uuid.UUID{test360ID}; !sameIDs(store.DeletedIDs, want) {
		t.Errorf("deleted = %v; want %v", store.DeletedIDs, want)
	}
}

func TestTranscodeVideo_VideoGoneBeforeRun(t *testing.T) {
	repo := &mock.MockVideoRepo{VideoRecord: pendingVideo(), UpdateErr: sql.ErrNoRows}
	tr := &mock.MockTranscoder{}

	err := NewVideoTranscoder(repo, &mock.MockObjectStore{}, tr).TranscodeVideo(context.Background(), testVideoID)
	if !errors.Is(err, ErrVideoNotFound) {
		t.Fatalf("err = %v; want ErrVideoNotFound", err)
	}
	if tr.Called {
		t.Error("transcoder must not run")
	}
}

// sameIDs compares two id lists regardless of order.
func sameIDs(got, want []uuid.UUID) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[uuid.UUID]int, len(got))
	for _, id := range got {
		seen[id]++
	}
	for _, id := range want {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}
