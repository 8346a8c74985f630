package controllers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/authz"
	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

// HandleSubscriptions renders the reader's subscription dashboard and feed.
func HandleSubscriptions(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	repos := repository.GetGlobalRepositories()
	user, err := repos.User.GetSubscriptions(userCtx.UserID)
	if err != nil {
		log.Printf("failed to load subscriptions for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch subscriptions")
	}

	offset, limit, page := pageOffset(c)
	feed, err := repos.Article.GetSubscriptionFeed(userCtx.UserID, offset, limit)
	if err != nil {
		log.Printf("failed to load subscription feed for user %d: %v", userCtx.UserID, err)
	}

	return render(c, "subscriptions/index", "My Subscriptions", fiber.Map{
		"Publishers":  user.SubscribedPublishers,
		"Journalists": user.SubscribedJournalists,
		"Newsletters": user.SubscribedNewsletters,
		"Feed":        feed,
		"Page":        page,
	})
}

// HandleJournalistList renders the journalist directory readers subscribe from.
func HandleJournalistList(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	journalists, err := repos.User.ListJournalists()
	if err != nil {
		log.Printf("failed to load journalists: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to fetch journalists")
	}

	userCtx := usercontext.GetUserContext(c)
	subscribedTo := make(map[uint]bool)
	if userCtx.IsLoggedIn {
		for _, j := range journalists {
			ok, _ := repos.User.IsSubscribedToJournalist(userCtx.UserID, j.ID)
			subscribedTo[j.ID] = ok
		}
	}

	return render(c, "subscriptions/journalists", "Journalists", fiber.Map{
		"Journalists":  journalists,
		"SubscribedTo": subscribedTo,
		"CanSubscribe": authz.CanSubscribeToJournalist(userCtx),
	})
}

// subscribeMessage picks the flash message for a subscribe attempt; a
// second subscribe is a no-op that still tells the reader why.
func subscribeMessage(already bool, name string) string {
	if already {
		return fmt.Sprintf("You are already subscribed to %s.", name)
	}
	return fmt.Sprintf("Subscribed to %s.", name)
}

// unsubscribeMessage picks the flash message for an unsubscribe attempt.
func unsubscribeMessage(subscribed bool, name string) string {
	if !subscribed {
		return fmt.Sprintf("You are not subscribed to %s.", name)
	}
	return fmt.Sprintf("Unsubscribed from %s.", name)
}

// HandleSubscribePublisher adds a publisher subscription for the reader.
func HandleSubscribePublisher(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanSubscribeToPublisher(userCtx) {
		return flashError(c, "Only readers can subscribe to publishers.", "/publishers")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}

	repos := repository.GetGlobalRepositories()
	publisher, err := repos.Publisher.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}
	redirectTo := fmt.Sprintf("/publishers/%d", publisher.ID)

	already, err := repos.User.IsSubscribedToPublisher(userCtx.UserID, publisher.ID)
	if err != nil {
		return flashError(c, "something went wrong", redirectTo)
	}
	if already {
		return flashSuccess(c, subscribeMessage(true, publisher.Name), redirectTo)
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", redirectTo)
	}

	if err := repos.User.SubscribePublisher(user, publisher); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), redirectTo)
	}

	return flashSuccess(c, subscribeMessage(false, publisher.Name), redirectTo)
}

// HandleUnsubscribePublisher removes a publisher subscription.
func HandleUnsubscribePublisher(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}

	repos := repository.GetGlobalRepositories()
	publisher, err := repos.Publisher.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Publisher not found")
	}
	redirectTo := fmt.Sprintf("/publishers/%d", publisher.ID)

	subscribed, err := repos.User.IsSubscribedToPublisher(userCtx.UserID, publisher.ID)
	if err != nil {
		return flashError(c, "something went wrong", redirectTo)
	}
	if !subscribed {
		return flashSuccess(c, unsubscribeMessage(false, publisher.Name), redirectTo)
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", redirectTo)
	}

	if err := repos.User.UnsubscribePublisher(user, publisher); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), redirectTo)
	}

	return flashSuccess(c, unsubscribeMessage(true, publisher.Name), redirectTo)
}

// HandleSubscribeJournalist adds a journalist subscription for the reader.
func HandleSubscribeJournalist(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanSubscribeToJournalist(userCtx) {
		return flashError(c, "Only readers can subscribe to journalists.", "/journalists")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Journalist not found")
	}

	repos := repository.GetGlobalRepositories()
	journalist, err := repos.User.GetJournalist(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Journalist not found")
	}

	already, err := repos.User.IsSubscribedToJournalist(userCtx.UserID, journalist.ID)
	if err != nil {
		return flashError(c, "something went wrong", "/journalists")
	}
	if already {
		return flashSuccess(c, subscribeMessage(true, journalist.FullName()), "/journalists")
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", "/journalists")
	}

	if err := repos.User.SubscribeJournalist(user, journalist); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/journalists")
	}

	return flashSuccess(c, subscribeMessage(false, journalist.FullName()), "/journalists")
}

// HandleUnsubscribeJournalist removes a journalist subscription.
func HandleUnsubscribeJournalist(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Journalist not found")
	}

	repos := repository.GetGlobalRepositories()
	journalist, err := repos.User.GetJournalist(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Journalist not found")
	}

	subscribed, err := repos.User.IsSubscribedToJournalist(userCtx.UserID, journalist.ID)
	if err != nil {
		return flashError(c, "something went wrong", "/journalists")
	}
	if !subscribed {
		return flashSuccess(c, unsubscribeMessage(false, journalist.FullName()), "/journalists")
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", "/journalists")
	}

	if err := repos.User.UnsubscribeJournalist(user, journalist); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), "/journalists")
	}

	return flashSuccess(c, unsubscribeMessage(true, journalist.FullName()), "/journalists")
}

// HandleSubscribeNewsletter adds a newsletter subscription.
func HandleSubscribeNewsletter(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !authz.CanSubscribeToNewsletter(userCtx) {
		return flashError(c, "You cannot subscribe to newsletters.", "/newsletters")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Newsletter not found")
	}

	repos := repository.GetGlobalRepositories()
	newsletter, err := repos.Newsletter.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Newsletter not found")
	}
	redirectTo := fmt.Sprintf("/newsletters/%d", newsletter.ID)

	already, err := repos.User.IsSubscribedToNewsletter(userCtx.UserID, newsletter.ID)
	if err != nil {
		return flashError(c, "something went wrong", redirectTo)
	}
	if already {
		return flashSuccess(c, subscribeMessage(true, newsletter.Title), redirectTo)
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", redirectTo)
	}

	if err := repos.User.SubscribeNewsletter(user, newsletter); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), redirectTo)
	}

	return flashSuccess(c, subscribeMessage(false, newsletter.Title), redirectTo)
}

// HandleUnsubscribeNewsletter removes a newsletter subscription.
func HandleUnsubscribeNewsletter(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Newsletter not found")
	}

	repos := repository.GetGlobalRepositories()
	newsletter, err := repos.Newsletter.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Newsletter not found")
	}
	redirectTo := fmt.Sprintf("/newsletters/%d", newsletter.ID)

	subscribed, err := repos.User.IsSubscribedToNewsletter(userCtx.UserID, newsletter.ID)
	if err != nil {
		return flashError(c, "something went wrong", redirectTo)
	}
	if !subscribed {
		return flashSuccess(c, unsubscribeMessage(false, newsletter.Title), redirectTo)
	}

	user, err := repos.User.GetByID(userCtx.UserID)
	if err != nil {
		return flashError(c, "something went wrong", redirectTo)
	}

	if err := repos.User.UnsubscribeNewsletter(user, newsletter); err != nil {
		return flashError(c, fmt.Sprintf("something went wrong: %s", err), redirectTo)
	}

	return flashSuccess(c, unsubscribeMessage(true, newsletter.Title), redirectTo)
}
