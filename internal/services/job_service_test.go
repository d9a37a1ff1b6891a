package services

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/justsurfingit/job-tracker-api/internal/dtos"
	"github.com/justsurfingit/job-tracker-api/internal/models"
	"github.com/justsurfingit/job-tracker-api/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner    uint = 1
	stranger uint = 2
)

func strPtr(s string) *string { return &s }

func newJobService(t *testing.T) (*JobService, *testhelpers.JobStore, models.Application) {
	t.Helper()
	store := testhelpers.NewJobStore()
	job := store.Seed(models.Application{
		UserID:      owner,
		CompanyName: "Acme",
		JobTitle:    "SWE",
		Status:      models.StatusApplied,
	})
	return NewJobService(store), store, job
}

func idOf(app models.Application) string {
	return strconv.FormatUint(uint64(app.ID), 10)
}

func assertKind(t *testing.T, want Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, KindOf(err), "error: %v", err)
}

func TestParseJobID(t *testing.T) {
	id, err := ParseJobID("17")
	require.NoError(t, err)
	assert.Equal(t, uint(17), id)

	for _, raw := range []string{"", "abc", "12abc", "-1", "0", "1.5", " 3", "99999999999999999999999", "9223372036854775808", "18446744073709551615"} {
		_, err := ParseJobID(raw)
		assertKind(t, KindInvalidArgument, err)
	}
}

func TestGetJobOwned(t *testing.T) {
	svc, store, job := newJobService(t)

	got, err := svc.GetJob(context.Background(), owner, idOf(job))
	require.NoError(t, err)
	assert.Equal(t, job, *got)

	again, err := svc.GetJob(context.Background(), owner, idOf(job))
	require.NoError(t, err)
	assert.Equal(t, got, again)
	assert.Zero(t, store.Writes)
}

func TestAccessChecksApplyToEveryOperation(t *testing.T) {
	ops := map[string]func(svc *JobService, caller uint, id string) error{
		"get": func(svc *JobService, caller uint, id string) error {
			_, err := svc.GetJob(context.Background(), caller, id)
			return err
		},
		"update": func(svc *JobService, caller uint, id string) error {
			_, err := svc.UpdateJob(context.Background(), caller, id, &dtos.JobUpdateRequest{Status: strPtr("Offer")})
			return err
		},
		"delete": func(svc *JobService, caller uint, id string) error {
			return svc.DeleteJob(context.Background(), caller, id)
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			t.Run("no identity", func(t *testing.T) {
				svc, store, job := newJobService(t)
				assertKind(t, KindUnauthenticated, op(svc, 0, idOf(job)))
				assert.Zero(t, store.Lookups)
			})

			t.Run("malformed id skips storage", func(t *testing.T) {
				svc, store, _ := newJobService(t)
				assertKind(t, KindInvalidArgument, op(svc, owner, "abc"))
				assert.Zero(t, store.Lookups)
			})

			t.Run("id beyond the key range skips storage", func(t *testing.T) {
				svc, store, _ := newJobService(t)
				assertKind(t, KindInvalidArgument, op(svc, owner, "9223372036854775808"))
				assert.Zero(t, store.Lookups)
			})

			t.Run("missing id is not found even for a stranger", func(t *testing.T) {
				svc, _, _ := newJobService(t)
				assertKind(t, KindNotFound, op(svc, stranger, "999"))
			})

			t.Run("foreign record is forbidden", func(t *testing.T) {
				svc, store, job := newJobService(t)
				assertKind(t, KindForbidden, op(svc, stranger, idOf(job)))
				assert.Zero(t, store.Writes)
				stored, ok := store.Get(job.ID)
				require.True(t, ok)
				assert.Equal(t, job, stored)
			})

			t.Run("storage failure is internal", func(t *testing.T) {
				svc, store, job := newJobService(t)
				store.Err = testhelpers.ErrStorage
				err := op(svc, owner, idOf(job))
				assertKind(t, KindInternal, err)
				assert.ErrorIs(t, err, testhelpers.ErrStorage)
			})
		})
	}
}

func TestUpdateJobSingleField(t *testing.T) {
	svc, store, job := newJobService(t)

	updated, err := svc.UpdateJob(context.Background(), owner, idOf(job), &dtos.JobUpdateRequest{CompanyName: strPtr("Globex")})
	require.NoError(t, err)
	assert.Equal(t, "Globex", updated.CompanyName)
	assert.Equal(t, job.JobTitle, updated.JobTitle)
	assert.Equal(t, job.Status, updated.Status)
	assert.Equal(t, job.UserID, updated.UserID)
	assert.Equal(t, job.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 1, store.Writes)
}

func TestUpdateJobRejectsWithoutWriting(t *testing.T) {
	tests := []struct {
		name    string
		req     *dtos.JobUpdateRequest
		message string
	}{
		{"bad status", &dtos.JobUpdateRequest{Status: strPtr("Ghosted")}, msgInvalidStatus},
		{"bad status with valid fields", &dtos.JobUpdateRequest{CompanyName: strPtr("Globex"), Status: strPtr("applied")}, msgInvalidStatus},
		{"padded status", &dtos.JobUpdateRequest{Status: strPtr(" Offer ")}, msgInvalidStatus},
		{"empty payload", &dtos.JobUpdateRequest{}, msgNothingToApply},
		{"nil payload", nil, msgNothingToApply},
		{"only blanks", &dtos.JobUpdateRequest{CompanyName: strPtr(""), JobTitle: strPtr("   "), Status: strPtr("")}, msgNothingToApply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, job := newJobService(t)

			_, err := svc.UpdateJob(context.Background(), owner, idOf(job), tt.req)
			assertKind(t, KindInvalidArgument, err)

			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.message, se.Message)

			assert.Zero(t, store.Writes)
			stored, _ := store.Get(job.ID)
			assert.Equal(t, job, stored)
		})
	}
}

func TestDeleteJobThenGetIsNotFound(t *testing.T) {
	svc, store, job := newJobService(t)

	require.NoError(t, svc.DeleteJob(context.Background(), owner, idOf(job)))
	assert.Equal(t, 1, store.Writes)

	_, err := svc.GetJob(context.Background(), owner, idOf(job))
	assertKind(t, KindNotFound, err)
}

func TestOwnershipScenario(t *testing.T) {
	store := testhelpers.NewJobStore()
	svc := NewJobService(store)
	ctx := context.Background()

	r1, err := svc.CreateJob(ctx, owner, &dtos.JobCreationRequest{CompanyName: "Acme", JobTitle: "SWE", Status: "Applied"})
	require.NoError(t, err)
	id := idOf(*r1)

	_, err = svc.GetJob(ctx, stranger, id)
	assertKind(t, KindForbidden, err)

	updated, err := svc.UpdateJob(ctx, owner, id, &dtos.JobUpdateRequest{Status: strPtr("Interview")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, updated.Status)
	assert.Equal(t, "Acme", updated.CompanyName)
	assert.Equal(t, "SWE", updated.JobTitle)

	require.NoError(t, svc.DeleteJob(ctx, owner, id))

	_, err = svc.GetJob(ctx, owner, id)
	assertKind(t, KindNotFound, err)
}

func TestCreateJob(t *testing.T) {
	store := testhelpers.NewJobStore()
	svc := NewJobService(store)
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, owner, &dtos.JobCreationRequest{CompanyName: "  Acme ", JobTitle: "SWE"})
	require.NoError(t, err)
	assert.Equal(t, owner, job.UserID)
	assert.Equal(t, "Acme", job.CompanyName)
	assert.Equal(t, models.StatusApplied, job.Status)
	assert.NotZero(t, job.ID)
	assert.False(t, job.CreatedAt.IsZero())

	_, err = svc.CreateJob(ctx, owner, &dtos.JobCreationRequest{CompanyName: " ", JobTitle: "SWE"})
	assertKind(t, KindInvalidArgument, err)

	_, err = svc.CreateJob(ctx, owner, &dtos.JobCreationRequest{CompanyName: "Acme", JobTitle: "SWE", Status: "Hired"})
	assertKind(t, KindInvalidArgument, err)

	_, err = svc.CreateJob(ctx, 0, &dtos.JobCreationRequest{CompanyName: "Acme", JobTitle: "SWE"})
	assertKind(t, KindUnauthenticated, err)
}

func TestListJobsScopedToCaller(t *testing.T) {
	store := testhelpers.NewJobStore()
	svc := NewJobService(store)
	ctx := context.Background()

	first := store.Seed(models.Application{UserID: owner, CompanyName: "Acme", JobTitle: "Backend Engineer", Status: models.StatusApplied})
	second := store.Seed(models.Application{UserID: owner, CompanyName: "Globex", JobTitle: "SRE", Status: models.StatusInterview})
	store.Seed(models.Application{UserID: stranger, CompanyName: "Acme", JobTitle: "PM", Status: models.StatusApplied})

	all, err := svc.ListJobs(ctx, owner, dtos.JobListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
	assert.Equal(t, first.ID, all[1].ID)

	interviews, err := svc.ListJobs(ctx, owner, dtos.JobListQuery{Status: "Interview"})
	require.NoError(t, err)
	require.Len(t, interviews, 1)
	assert.Equal(t, second.ID, interviews[0].ID)

	search, err := svc.ListJobs(ctx, owner, dtos.JobListQuery{Query: "  BACKEND "})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, first.ID, search[0].ID)

	none, err := svc.ListJobs(ctx, stranger, dtos.JobListQuery{Status: "Offer"})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = svc.ListJobs(ctx, owner, dtos.JobListQuery{Status: "Pending"})
	assertKind(t, KindInvalidArgument, err)
}

func TestStats(t *testing.T) {
	store := testhelpers.NewJobStore()
	svc := NewJobService(store)

	store.Seed(models.Application{UserID: owner, CompanyName: "A", JobTitle: "x", Status: models.StatusApplied})
	store.Seed(models.Application{UserID: owner, CompanyName: "B", JobTitle: "x", Status: models.StatusApplied})
	store.Seed(models.Application{UserID: owner, CompanyName: "C", JobTitle: "x", Status: models.StatusOffer})
	store.Seed(models.Application{UserID: stranger, CompanyName: "D", JobTitle: "x", Status: models.StatusRejected})

	stats, err := svc.Stats(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, dtos.JobStats{Total: 3, Applied: 2, Offer: 1}, *stats)
}

func TestNormalizeSearch(t *testing.T) {
	assert.Equal(t, "senior go", NormalizeSearch("  Senior   Go "))
	assert.Equal(t, "", NormalizeSearch("   "))

	long := NormalizeSearch(strings.Repeat("ab ", 60))
	assert.LessOrEqual(t, len(long), maxSearchLength)
	assert.Equal(t, long, strings.TrimSpace(long))

	accents := NormalizeSearch(strings.Repeat("é", 80))
	assert.LessOrEqual(t, len(accents), maxSearchLength)
	assert.True(t, utf8.ValidString(accents))
}
