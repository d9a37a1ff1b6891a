package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/justsurfingit/job-tracker-api/internal/database"
	"github.com/justsurfingit/job-tracker-api/internal/dtos"
	"github.com/justsurfingit/job-tracker-api/internal/models"
)

// JobStore is the persistence JobService needs. FindByID, Update and Delete
// return database.ErrNotFound for a missing row.
type JobStore interface {
	Create(ctx context.Context, app *models.Application) error
	FindByID(ctx context.Context, id uint) (*models.Application, error)
	List(ctx context.Context, userID uint, filter models.ApplicationFilter) ([]models.Application, error)
	Update(ctx context.Context, id uint, changes models.ApplicationChanges) (*models.Application, error)
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, userID uint) (map[models.Status]int64, error)
}

type JobService struct {
	Store JobStore
}

func NewJobService(store JobStore) *JobService {
	return &JobService{
		Store: store,
	}
}

func (s *JobService) CreateJob(ctx context.Context, callerID uint, req *dtos.JobCreationRequest) (*models.Application, error) {
	if callerID == 0 {
		return nil, Unauthenticated(msgUnauthorized)
	}
	company := strings.TrimSpace(req.CompanyName)
	title := strings.TrimSpace(req.JobTitle)
	if company == "" {
		return nil, InvalidArgument("companyName is required")
	}
	if title == "" {
		return nil, InvalidArgument("jobTitle is required")
	}

	status := models.StatusApplied
	if req.Status != "" {
		status = models.Status(req.Status)
		if !status.Valid() {
			return nil, InvalidArgument(msgInvalidStatus)
		}
	}

	job := &models.Application{
		UserID:      callerID,
		CompanyName: company,
		JobTitle:    title,
		Status:      status,
	}
	if err := s.Store.Create(ctx, job); err != nil {
		return nil, Internal(err)
	}
	return job, nil
}

// ListJobs returns the caller's applications, optionally narrowed by status and
// a free-text search over company and title.
func (s *JobService) ListJobs(ctx context.Context, callerID uint, query dtos.JobListQuery) ([]models.Application, error) {
	if callerID == 0 {
		return nil, Unauthenticated(msgUnauthorized)
	}
	filter := models.ApplicationFilter{Search: NormalizeSearch(query.Query)}
	if query.Status != "" {
		filter.Status = models.Status(query.Status)
		if !filter.Status.Valid() {
			return nil, InvalidArgument(msgInvalidStatus)
		}
	}

	jobs, err := s.Store.List(ctx, callerID, filter)
	if err != nil {
		return nil, Internal(err)
	}
	return jobs, nil
}

func (s *JobService) Stats(ctx context.Context, callerID uint) (*dtos.JobStats, error) {
	if callerID == 0 {
		return nil, Unauthenticated(msgUnauthorized)
	}
	counts, err := s.Store.CountByStatus(ctx, callerID)
	if err != nil {
		return nil, Internal(err)
	}

	stats := &dtos.JobStats{
		Applied:   counts[models.StatusApplied],
		Interview: counts[models.StatusInterview],
		Offer:     counts[models.StatusOffer],
		Rejected:  counts[models.StatusRejected],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// Authorize runs the access checks shared by every single-record operation, in
// order: caller identity, id syntax, existence, ownership. The first failure wins.
// A missing record is reported before ownership is considered, so a foreign
// caller probing an unused id sees NotFound rather than Forbidden.
func (s *JobService) Authorize(ctx context.Context, callerID uint, rawID string) (*models.Application, error) {
	if callerID == 0 {
		return nil, Unauthenticated(msgUnauthorized)
	}
	id, err := ParseJobID(rawID)
	if err != nil {
		return nil, err
	}

	job, err := s.Store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound(msgJobNotFound)
		}
		return nil, Internal(err)
	}
	if job.UserID != callerID {
		return nil, Forbidden(msgAccessDenied)
	}
	return job, nil
}

func (s *JobService) GetJob(ctx context.Context, callerID uint, rawID string) (*models.Application, error) {
	return s.Authorize(ctx, callerID, rawID)
}

func (s *JobService) UpdateJob(ctx context.Context, callerID uint, rawID string, req *dtos.JobUpdateRequest) (*models.Application, error) {
	job, err := s.Authorize(ctx, callerID, rawID)
	if err != nil {
		return nil, err
	}
	return s.ApplyUpdate(ctx, job, req)
}

// ApplyUpdate writes req onto a job already returned by Authorize. Validation
// completes before the single write.
func (s *JobService) ApplyUpdate(ctx context.Context, job *models.Application, req *dtos.JobUpdateRequest) (*models.Application, error) {
	changes, err := StageChanges(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.Store.Update(ctx, job.ID, changes)
	if err != nil {
		// deleted between the ownership check and the write
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFound(msgJobNotFound)
		}
		return nil, Internal(err)
	}
	return updated, nil
}

func (s *JobService) DeleteJob(ctx context.Context, callerID uint, rawID string) error {
	job, err := s.Authorize(ctx, callerID, rawID)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, job.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return NotFound(msgJobNotFound)
		}
		return Internal(err)
	}
	return nil
}

// ParseJobID accepts only a positive base-10 integer that fits a signed 64-bit
// primary key.
func ParseJobID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil || id == 0 || uint64(uint(id)) != id {
		return 0, InvalidArgument(msgInvalidJobID)
	}
	return uint(id), nil
}

// StageChanges turns a partial payload into a change-set. Blank strings count as
// not sent. An empty change-set is rejected.
func StageChanges(req *dtos.JobUpdateRequest) (models.ApplicationChanges, error) {
	var changes models.ApplicationChanges
	if req == nil {
		return changes, InvalidArgument(msgNothingToApply)
	}
	if v, ok := present(req.CompanyName); ok {
		changes.CompanyName = &v
	}
	if v, ok := present(req.JobTitle); ok {
		changes.JobTitle = &v
	}
	// status is matched exactly, so surrounding spaces make it invalid
	if _, ok := present(req.Status); ok {
		status := models.Status(*req.Status)
		if !status.Valid() {
			return models.ApplicationChanges{}, InvalidArgument(msgInvalidStatus)
		}
		changes.Status = &status
	}
	if changes.Empty() {
		return changes, InvalidArgument(msgNothingToApply)
	}
	return changes, nil
}

func present(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	trimmed := strings.TrimSpace(*v)
	return trimmed, trimmed != ""
}
