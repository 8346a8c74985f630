package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/pressquill/newshub/app/repository"
	"github.com/pressquill/newshub/internal/pkg/cache"
)

const (
	CacheKeyArticlesTotal = "statistics:articles:total"
	CacheKeyArticlesDaily = "statistics:articles:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyUsers         = "statistics:users:total"
	CacheExpiration       = 30 * time.Minute
)

// StatisticsData holds the headline numbers shown on the home page.
type StatisticsData struct {
	TodayArticles int
	TotalUsers    int
	TotalArticles int
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached totals are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached totals when the interval has passed.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// ResetCacheUpdateTimer forces the next read to refresh the cache.
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recounts the totals and stores them in the cache.
func UpdateStatisticsCache() error {
	repos := repository.GetGlobalRepositories()

	totalArticles, err := repos.Article.CountApproved()
	if err != nil {
		log.Printf("Error counting approved articles: %v", err)
		return err
	}

	today := time.Now().Format("2006-01-02")
	todayArticles, err := repos.Article.CountApprovedSince(today)
	if err != nil {
		log.Printf("Error counting today's articles: %v", err)
		return err
	}

	totalUsers, err := repos.User.Count()
	if err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyArticlesTotal, strconv.FormatInt(totalArticles, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total articles: %v", err)
		return err
	}

	dailyKey := fmt.Sprintf(CacheKeyArticlesDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayArticles, 10), CacheExpiration); err != nil {
		log.Printf("Error caching today's articles: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyUsers, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		log.Printf("Error caching total users: %v", err)
		return err
	}

	log.Printf("Statistics updated in cache: Total Articles: %d, Today's Articles: %d, Total Users: %d",
		totalArticles, todayArticles, totalUsers)

	return nil
}

// GetTotalArticles returns the number of published articles from cache or database.
func GetTotalArticles() int {
	val, err := cache.Get(CacheKeyArticlesTotal)
	if err != nil {
		count, err := repository.GetGlobalRepositories().Article.CountApproved()
		if err != nil {
			log.Printf("Error counting approved articles: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyArticlesTotal, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total articles: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTodayArticles returns the number of articles published today from cache or database.
func GetTodayArticles() int {
	today := time.Now().Format("2006-01-02")
	dailyKey := fmt.Sprintf(CacheKeyArticlesDaily, today)

	val, err := cache.Get(dailyKey)
	if err != nil {
		count, err := repository.GetGlobalRepositories().Article.CountApprovedSince(today)
		if err != nil {
			log.Printf("Error counting today's articles: %v", err)
			return 0
		}

		if err := cache.Set(dailyKey, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching today's articles: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetTotalUsers returns the total number of users from cache or database.
func GetTotalUsers() int {
	val, err := cache.Get(CacheKeyUsers)
	if err != nil {
		count, err := repository.GetGlobalRepositories().User.Count()
		if err != nil {
			log.Printf("Error counting total users: %v", err)
			return 0
		}

		if err := cache.Set(CacheKeyUsers, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching total users: %v", err)
		}

		return int(count)
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}

	return int(count)
}

// GetStatisticsData returns all headline numbers, refreshing the cache as needed.
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TodayArticles: GetTodayArticles(),
		TotalUsers:    GetTotalUsers(),
		TotalArticles: GetTotalArticles(),
	}
}
