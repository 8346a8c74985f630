package apiv1

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/authz"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

// GetSubscriptions returns the caller's subscriptions.
func (s *APIServer) GetSubscriptions(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	user, err := repository.GetGlobalRepositories().User.GetSubscriptions(userCtx.UserID)
	if err != nil {
		log.Printf("api: failed to load subscriptions for user %d: %v", userCtx.UserID, err)
		return internalError(c, "failed to load subscriptions")
	}

	resp := SubscriptionsResponse{
		Publishers:  []PublisherBrief{},
		Journalists: []UserBrief{},
	}
	for i := range user.SubscribedPublishers {
		p := &user.SubscribedPublishers[i]
		resp.Publishers = append(resp.Publishers, PublisherBrief{ID: p.ID, Name: p.Name})
	}
	for i := range user.SubscribedJournalists {
		resp.Journalists = append(resp.Journalists, toUserBrief(&user.SubscribedJournalists[i]))
	}
	for _, n := range user.SubscribedNewsletters {
		resp.Newsletters = append(resp.Newsletters, struct {
			ID    uint   `json:"id"`
			Title string `json:"title"`
		}{ID: n.ID, Title: n.Title})
	}

	return c.JSON(resp)
}

// SubscriptionArticles returns approved articles from the caller's
// subscribed publishers and journalists, newest first. Callers without
// reader subscriptions get an empty list.
func (s *APIServer) SubscriptionArticles(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsReader() {
		return c.JSON(fiber.Map{"articles": toArticleResponses(nil)})
	}

	offset, limit := listOffsets(c)
	feed, err := repository.GetGlobalRepositories().Article.GetSubscriptionFeed(userCtx.UserID, offset, limit)
	if err != nil {
		log.Printf("api: failed to load subscription feed for user %d: %v", userCtx.UserID, err)
		return internalError(c, "failed to load subscription feed")
	}

	return c.JSON(fiber.Map{"articles": toArticleResponses(feed)})
}

// SubscribePublisher subscribes the caller to a publisher. Re-subscribing
// is a no-op returning 200.
func (s *APIServer) SubscribePublisher(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanSubscribeToPublisher(userCtx) {
		return forbidden(c, "only readers can subscribe to publishers")
	}

	publisher, err := s.loadPublisher(c)
	if err != nil {
		return notFound(c, "publisher not found")
	}

	repos := repository.GetGlobalRepositories()
	already, err := repos.User.IsSubscribedToPublisher(userCtx.UserID, publisher.ID)
	if err != nil {
		log.Printf("api: failed to check publisher subscription for user %d: %v", userCtx.UserID, err)
		return internalError(c, "failed to subscribe")
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return internalError(c, "failed to load account")
	}
	if err := repos.User.SubscribePublisher(user, publisher); err != nil {
		log.Printf("api: failed to subscribe user %d to publisher %d: %v", user.ID, publisher.ID, err)
		return internalError(c, "failed to subscribe")
	}

	if already {
		return c.SendStatus(fiber.StatusOK)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// UnsubscribePublisher removes a publisher subscription.
func (s *APIServer) UnsubscribePublisher(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	publisher, err := s.loadPublisher(c)
	if err != nil {
		return notFound(c, "publisher not found")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return internalError(c, "failed to load account")
	}
	if err := repos.User.UnsubscribePublisher(user, publisher); err != nil {
		log.Printf("api: failed to unsubscribe user %d from publisher %d: %v", user.ID, publisher.ID, err)
		return internalError(c, "failed to unsubscribe")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SubscribeJournalist subscribes the caller to a journalist.
func (s *APIServer) SubscribeJournalist(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanSubscribeToJournalist(userCtx) {
		return forbidden(c, "only readers can subscribe to journalists")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "journalist not found")
	}

	repos := repository.GetGlobalRepositories()
	journalist, err := repos.User.GetJournalist(uint(id))
	if err != nil {
		return notFound(c, "journalist not found")
	}

	already, err := repos.User.IsSubscribedToJournalist(userCtx.UserID, journalist.ID)
	if err != nil {
		log.Printf("api: failed to check journalist subscription for user %d: %v", userCtx.UserID, err)
		return internalError(c, "failed to subscribe")
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return internalError(c, "failed to load account")
	}
	if err := repos.User.SubscribeJournalist(user, journalist); err != nil {
		log.Printf("api: failed to subscribe user %d to journalist %d: %v", user.ID, journalist.ID, err)
		return internalError(c, "failed to subscribe")
	}

	if already {
		return c.SendStatus(fiber.StatusOK)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// UnsubscribeJournalist removes a journalist subscription.
func (s *APIServer) UnsubscribeJournalist(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return notFound(c, "journalist not found")
	}

	repos := repository.GetGlobalRepositories()
	journalist, err := repos.User.GetJournalist(uint(id))
	if err != nil {
		return notFound(c, "journalist not found")
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return internalError(c, "failed to load account")
	}
	if err := repos.User.UnsubscribeJournalist(user, journalist); err != nil {
		log.Printf("api: failed to unsubscribe user %d from journalist %d: %v", user.ID, journalist.ID, err)
		return internalError(c, "failed to unsubscribe")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SubscribeNewsletter subscribes the caller to a newsletter.
func (s *APIServer) SubscribeNewsletter(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanSubscribeToNewsletter(userCtx) {
		return forbidden(c, "you cannot subscribe to newsletters")
	}

	newsletter, err := s.loadNewsletter(c)
	if err != nil {
		return notFound(c, "newsletter not found")
	}

	repos := repository.GetGlobalRepositories()
	already, err := repos.User.IsSubscribedToNewsletter(userCtx.UserID, newsletter.ID)
	if err != nil {
		log.Printf("api: failed to check newsletter subscription for user %d: %v", userCtx.UserID, err)
		return internalError(c, "failed to subscribe")
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return internalError(c, "failed to load account")
	}
	if err := repos.User.SubscribeNewsletter(user, newsletter); err != nil {
		log.Printf("api: failed to subscribe user %d to newsletter %d: %v", user.ID, newsletter.ID, err)
		return internalError(c, "failed to subscribe")
	}

	if already {
		return c.SendStatus(fiber.StatusOK)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// UnsubscribeNewsletter removes a newsletter subscription.
func (s *APIServer) UnsubscribeNewsletter(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	newsletter, err := s.loadNewsletter(c)
	if err != nil {
		return notFound(c, "newsletter not found")
	}

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return internalError(c, "failed to load account")
	}
	if err := repos.User.UnsubscribeNewsletter(user, newsletter); err != nil {
		log.Printf("api: failed to unsubscribe user %d from newsletter %d: %v", user.ID, newsletter.ID, err)
		return internalError(c, "failed to unsubscribe")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
