package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SharmaTechie/video-stream-platform/internal/mock"
	"github.com/SharmaTechie/video-stream-platform/internal/usecase/video"
	"github.com/SharmaTechie/video-stream-platform/internal/uuid"
)

func TestDeleteVideoHandler(t *testing.T) {
	tests := []struct {
		name           string
		ctxID          *uuid.UUID
		svcErr         error
		wantStatus     int
		wantBodySubstr string
	}{
		{
			name:           "missing id",
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "ID is required",
		},
		{
			name:           "not found",
			ctxID:          &validID,
			svcErr:         video.ErrVideoNotFound,
			wantStatus:     http.StatusNotFound,
			wantBodySubstr: "Video not found",
		},
		{
			name:           "service error",
			ctxID:          &validID,
			svcErr:         errors.New("boom"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "Failed to delete video",
		},
		{
			name:       "happy path",
			ctxID:      &validID,
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := &mock.MockVideoDeleter{Err: tc.svcErr}
			h := DeleteVideoHandler(mockSvc)

			req := httptest.NewRequest(http.MethodDelete, "/videos/"+validID.String(), nil)
			if tc.ctxID != nil {
				req = withID(req, *tc.ctxID)
			}

			rec := httptest.NewRecorder()
			h(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d; want %d", rec.Code, tc.wantStatus)
			}

			if tc.wantStatus == http.StatusNoContent {
				if rec.Body.Len() != 0 {
					t.Errorf("expected empty body, got %q", rec.Body.String())
				}
			} else if !contains(rec.Body.String(), tc.wantBodySubstr) {
				t.Errorf("body = %q; want to contain %q", rec.Body.String(), tc.wantBodySubstr)
			}
			if tc.ctxID != nil && mockSvc.ID != validID {
				t.Errorf("service got ID = %s; want %s", mockSvc.ID, validID)
			}
		})
	}
}

func contains(haystack, needle string) bool {
	return needle == "" || strings.Contains(haystack, needle)
}
