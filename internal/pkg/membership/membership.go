package membership

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
)

var (
	ErrDuplicatePending = errors.New("a pending request for this publisher already exists")
	ErrRoleNotEligible  = errors.New("only journalists and editors can request to join a publisher")
	ErrNotOwner         = errors.New("only the publisher owner can review join requests")
	ErrNotPending       = errors.New("join request has already been reviewed")
	ErrAlreadyMember    = errors.New("user already belongs to this publisher")
)

// Service runs the join-request workflow between staff users and publishers.
type Service struct {
	requests   repository.JoinRequestRepository
	publishers repository.PublisherRepository
}

func NewService(requests repository.JoinRequestRepository, publishers repository.PublisherRepository) *Service {
	return &Service{requests: requests, publishers: publishers}
}

// Request files a pending join request from user to publisher. A user can
// hold at most one pending request per publisher; the unique pending key on
// the table closes the race between concurrent submissions.
func (s *Service) Request(user *models.User, publisher *models.Publisher, message string) (*models.PublisherJoinRequest, error) {
	if user == nil || (!user.IsJournalist() && !user.IsEditor()) {
		return nil, ErrRoleNotEligible
	}
	if user.IsJournalist() && publisher.HasJournalist(user.ID) {
		return nil, ErrAlreadyMember
	}
	if user.IsEditor() && publisher.HasEditor(user.ID) {
		return nil, ErrAlreadyMember
	}

	pending, err := s.requests.HasPending(user.ID, publisher.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicatePending
	}

	request := &models.PublisherJoinRequest{
		UserID:      user.ID,
		User:        *user,
		PublisherID: publisher.ID,
		Publisher:   *publisher,
		Message:     message,
		Status:      models.JOIN_REQUEST_PENDING,
	}
	if err := s.requests.Create(request); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePending
		}
		return nil, err
	}
	return request, nil
}

// Approve adds the requester to the matching membership set for their role
// and marks the request approved. The membership write happens first so a
// failed append leaves the request pending and retryable.
func (s *Service) Approve(reviewer *models.User, request *models.PublisherJoinRequest) error {
	if err := s.authorizeReview(reviewer, request); err != nil {
		return err
	}

	var err error
	if request.User.IsEditor() {
		err = s.publishers.AddEditor(&request.Publisher, &request.User)
	} else {
		err = s.publishers.AddJournalist(&request.Publisher, &request.User)
	}
	if err != nil {
		return err
	}

	request.MarkReviewed(reviewer, models.JOIN_REQUEST_APPROVED)
	return s.requests.Update(request)
}

// Reject marks the request rejected. No membership changes.
func (s *Service) Reject(reviewer *models.User, request *models.PublisherJoinRequest) error {
	if err := s.authorizeReview(reviewer, request); err != nil {
		return err
	}

	request.MarkReviewed(reviewer, models.JOIN_REQUEST_REJECTED)
	return s.requests.Update(request)
}

func (s *Service) authorizeReview(reviewer *models.User, request *models.PublisherJoinRequest) error {
	if reviewer == nil || !request.Publisher.IsOwnedBy(reviewer.ID) {
		return ErrNotOwner
	}
	if !request.IsPending() {
		return ErrNotPending
	}
	return nil
}
