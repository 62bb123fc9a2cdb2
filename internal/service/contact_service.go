package service

import (
	"context"
	"sync"

	"github.com/estudiosur/site-backend/internal/model"
	"github.com/estudiosur/site-backend/internal/repository"
)

// EmailSender delivers the notification email for one submission and returns
// the provider message id.
type EmailSender interface {
	Send(ctx context.Context, sub model.ContactSubmission, meta model.SubmissionMetadata) (string, error)
}

// Outcome folds the results of the two submission side effects. At most one
// of EmailErr/PersistErr being nil still counts as an acknowledged
// submission: the visitor's intent was captured somewhere durable or
// delivered to a human.
type Outcome struct {
	EmailID      string
	SubmissionID string
	EmailErr     error
	PersistErr   error
}

// EmailOK reports whether the notification email went out.
func (o Outcome) EmailOK() bool { return o.EmailErr == nil }

// PersistOK reports whether the submission row was stored.
func (o Outcome) PersistOK() bool { return o.PersistErr == nil }

// Acknowledged reports whether at least one side effect succeeded.
func (o Outcome) Acknowledged() bool { return o.EmailErr == nil || o.PersistErr == nil }

// ContactService runs the dual-effect submission pipeline: one notification
// email and one database insert per validated submission.
type ContactService struct {
	email EmailSender
	repo  repository.SubmissionRepository
}

// NewContactService creates a ContactService over the given collaborators.
func NewContactService(email EmailSender, repo repository.SubmissionRepository) *ContactService {
	return &ContactService{email: email, repo: repo}
}

// Process sends the notification email and persists the submission
// concurrently, waiting for both to settle. Each effect is isolated: a
// failure on one side is captured in the Outcome and never prevents
// observing the other side's result, and neither cancels the other.
//
// The effects run on a context detached from the client connection. Once
// started they run to their own completion or timeout even if the caller
// disconnects; partial external side effects cannot be rolled back, so they
// must not be abandoned half-way either.
func (s *ContactService) Process(ctx context.Context, sub model.ContactSubmission, meta model.SubmissionMetadata) Outcome {
	ctx = context.WithoutCancel(ctx)

	var out Outcome
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		out.EmailID, out.EmailErr = s.email.Send(ctx, sub, meta)
	}()

	go func() {
		defer wg.Done()
		rec := model.NewSubmissionRecord(sub, meta)
		if err := s.repo.Insert(ctx, rec); err != nil {
			out.PersistErr = err
			return
		}
		out.SubmissionID = rec.ID
	}()

	wg.Wait()
	return out
}
