package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/pressquill/newshub/app/models"
	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/authz"
	"github.com/pressquill/newshub/internal/pkg/membership"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

var membershipService *membership.Service

// InitializePublisherController wires the join-request workflow service.
func InitializePublisherController(service *membership.Service) {
	membershipService = service
}

// HandlePublisherList renders the public publisher directory.
func HandlePublisherList(c *fiber.Ctx) error {
	publishers, err := repository.GetGlobalRepositories().Publisher.GetAll()
	if err != nil {
		log.Printf("failed to load publishers: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch publishers")
	}

	return render(c, "publishers/index", "Publishers", fiber.Map{
		"Publishers": publishers,
	})
}

// HandlePublisherShow renders one publisher with its published articles and
// the viewer's relationship to it.
func HandlePublisherShow(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}

	repos := repository.GetGlobalRepositories()
	publisher, err := repos.Publisher.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}

	offset, limit, page := pageOffset(c)
	articles, err := repos.Article.GetApprovedByPublisher(publisher.ID, offset, limit)
	if err != nil {
		log.Printf("failed to load articles for publisher %d: %v", publisher.ID, err)
	}

	userCtx := usercontext.GetUserContext(c)
	subscribed := false
	hasPendingRequest := false
	isMember := false
	if userCtx.IsLoggedIn {
		subscribed, _ = repos.User.IsSubscribedToPublisher(userCtx.UserID, publisher.ID)
		hasPendingRequest, _ = repos.JoinRequest.HasPending(userCtx.UserID, publisher.ID)
		isMember = publisher.HasEditor(userCtx.UserID) || publisher.HasJournalist(userCtx.UserID)
	}

	return render(c, "publishers/show", publisher.Name, fiber.Map{
		"Publisher":         publisher,
		"Articles":          articles,
		"Page":              page,
		"CanSubscribe":      authz.CanSubscribeToPublisher(userCtx),
		"Subscribed":        subscribed,
		"CanRequestJoin":    authz.CanRequestJoin(userCtx) && !isMember && !hasPendingRequest,
		"HasPendingRequest": hasPendingRequest,
		"IsMember":          isMember,
	})
}

// HandlePublisherCreate renders the creation form and accepts the
// submission. A user owns at most one publisher.
func HandlePublisherCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanCreatePublisher(userCtx) {
		return flashError(c, "Only publisher accounts can create a publisher.", "/publishers")
	}

	repos := repository.GetGlobalRepositories()

	if existing, err := repos.Publisher.GetByOwner(userCtx.UserID); err == nil && existing != nil {
		return flashError(c, "You already own a publisher.", fmt.Sprintf("/publishers/%d", existing.ID))
	}

	if c.Method() == fiber.MethodPost {
		owner, err := repos.User.GetByID(userCtx.UserID)
		if err != nil {
			return flashError(c, "something went wrong", "/publishers/create")
		}

		publisher := &models.Publisher{
			Name:        c.FormValue("name"),
			Description: c.FormValue("description"),
			Website:     c.FormValue("website"),
			CreatedByID: &owner.ID,
		}
		if raw := c.FormValue("established_date"); raw != "" {
			if parsed, err := time.Parse("2006-01-02", raw); err == nil {
				publisher.EstablishedDate = &parsed
			}
		}

		if err := publisher.Validate(); err != nil {
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/publishers/create")
		}

		if err := repos.Publisher.Create(publisher); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return flashError(c, "A publisher with this name already exists.", "/publishers/create")
			}
			return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/publishers/create")
		}

		return flashSuccess(c, "Publisher created.", fmt.Sprintf("/publishers/%d", publisher.ID))
	}

	return render(c, "publishers/create", "Create Publisher", fiber.Map{})
}

// HandlePublisherDashboard renders the owner/editor view of a publisher:
// staff, published articles, and the join-request queue.
func HandlePublisherDashboard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}

	repos := repository.GetGlobalRepositories()
	publisher, err := repos.Publisher.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !authz.CanAccessPublisherDashboard(userCtx, publisher) {
		return flashError(c, "You cannot access this dashboard.", fmt.Sprintf("/publishers/%d", publisher.ID))
	}

	articles, err := repos.Article.GetApprovedByPublisher(publisher.ID, 0, defaultPageSize)
	if err != nil {
		log.Printf("failed to load articles for publisher %d: %v", publisher.ID, err)
	}
	pending, err := repos.JoinRequest.GetPendingByPublisher(publisher.ID)
	if err != nil {
		log.Printf("failed to load join requests for publisher %d: %v", publisher.ID, err)
	}
	requestCount, _ := repos.JoinRequest.CountByPublisher(publisher.ID)

	return render(c, "publishers/dashboard", publisher.Name+" Dashboard", fiber.Map{
		"Publisher":    publisher,
		"Articles":     articles,
		"Pending":      pending,
		"RequestCount": requestCount,
		"IsOwner":      publisher.IsOwnedBy(userCtx.UserID),
	})
}

// HandleJoinRequestCreate files a join request with the publisher.
func HandleJoinRequestCreate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}

	repos := repository.GetGlobalRepositories()
	publisher, err := repos.Publisher.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}

	userCtx := usercontext.GetUserContext(c)
	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", fmt.Sprintf("/publishers/%d", publisher.ID))
	}

	if _, err := membershipService.Request(user, publisher, c.FormValue("message")); err != nil {
		return flashError(c, membershipMessage(err), fmt.Sprintf("/publishers/%d", publisher.ID))
	}

	return flashSuccess(c, "Join request sent.", fmt.Sprintf("/publishers/%d", publisher.ID))
}

// HandleJoinRequestList shows a publisher's join requests, optionally
// filtered by status.
func HandleJoinRequestList(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}

	repos := repository.GetGlobalRepositories()
	publisher, err := repos.Publisher.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}

	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn || !publisher.IsOwnedBy(userCtx.UserID) {
		return flashError(c, "Only the owner can review join requests.", fmt.Sprintf("/publishers/%d", publisher.ID))
	}

	status := c.Query("status")
	requests, err := repos.JoinRequest.GetByPublisher(publisher.ID, status)
	if err != nil {
		log.Printf("failed to load join requests for publisher %d: %v", publisher.ID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch join requests")
	}

	return render(c, "publishers/requests", "Join Requests", fiber.Map{
		"Publisher": publisher,
		"Requests":  requests,
		"Status":    status,
	})
}

// HandleJoinRequestApprove approves a join request and adds the requester
// to the publisher's staff.
func HandleJoinRequestApprove(c *fiber.Ctx) error {
	return handleJoinRequestReview(c, membershipService.Approve, "Join request approved.")
}

// HandleJoinRequestReject rejects a join request.
func HandleJoinRequestReject(c *fiber.Ctx) error {
	return handleJoinRequestReview(c, membershipService.Reject, "Join request rejected.")
}

func handleJoinRequestReview(c *fiber.Ctx, review func(*models.User, *models.PublisherJoinRequest) error, success string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Join request not found")
	}

	repos := repository.GetGlobalRepositories()
	request, err := repos.JoinRequest.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Join request not found")
	}

	userCtx := usercontext.GetUserContext(c)
	reviewer, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", fmt.Sprintf("/publishers/%d/requests", request.PublisherID))
	}

	if err := review(reviewer, request); err != nil {
		return flashError(c, membershipMessage(err), fmt.Sprintf("/publishers/%d/requests", request.PublisherID))
	}

	return flashSuccess(c, success, fmt.Sprintf("/publishers/%d/requests", request.PublisherID))
}

func membershipMessage(err error) string {
	switch {
	case errors.Is(err, membership.ErrDuplicatePending):
		return "You already have a pending request for this publisher."
	case errors.Is(err, membership.ErrRoleNotEligible):
		return "Only journalists and editors can request to join a publisher."
	case errors.Is(err, membership.ErrAlreadyMember):
		return "You already belong to this publisher."
	case errors.Is(err, membership.ErrNotOwner):
		return "Only the publisher owner can review join requests."
	case errors.Is(err, membership.ErrNotPending):
		return "This request has already been reviewed."
	}
	return fmt.Sprintf("something went wrong: %s", err)
}
