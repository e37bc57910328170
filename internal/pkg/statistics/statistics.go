package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jagjar/jagjar/app/models"
	"github.com/jagjar/jagjar/app/repository"
	"github.com/jagjar/jagjar/internal/pkg/cache"
	"github.com/jagjar/jagjar/internal/pkg/database"
)

const (
	CacheKeyUsers          = "statistics:users:total"
	CacheKeyPremiumUsers   = "statistics:users:premium"
	CacheKeyDevelopers     = "statistics:developers:total"
	CacheKeyWebsites       = "statistics:websites:total"
	CacheKeyTrackedSeconds = "statistics:tracking:seconds"
	CacheExpiration        = 30 * time.Minute
)

// StatisticsData holds the platform counters shown on the admin dashboard
type StatisticsData struct {
	TotalUsers      int   `json:"total_users"`
	PremiumUsers    int   `json:"premium_users"`
	TotalDevelopers int   `json:"total_developers"`
	TotalWebsites   int   `json:"total_websites"`
	TrackedSeconds  int64 `json:"tracked_seconds"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached counters are stale
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the counters when the interval has passed
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

// ResetCacheUpdateTimer forces the next read to refresh the cache
func ResetCacheUpdateTimer() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	lastCacheUpdate = time.Time{}
}

// UpdateStatisticsCache recounts all platform statistics and stores them in the cache
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return err
	}

	var premiumUsers int64
	if err := db.Model(&models.User{}).Where("is_subscribed = ?", true).Count(&premiumUsers).Error; err != nil {
		log.Printf("Error counting premium users: %v", err)
		return err
	}

	var totalDevelopers int64
	if err := db.Model(&models.Developer{}).Count(&totalDevelopers).Error; err != nil {
		log.Printf("Error counting developers: %v", err)
		return err
	}

	var totalWebsites int64
	if err := db.Model(&models.Website{}).Count(&totalWebsites).Error; err != nil {
		log.Printf("Error counting websites: %v", err)
		return err
	}

	trackedSeconds, err := repository.GetGlobalRepositories().TimeTracking.SumDurationAll()
	if err != nil {
		log.Printf("Error summing tracked time: %v", err)
		return err
	}

	counters := map[string]int64{
		CacheKeyUsers:          totalUsers,
		CacheKeyPremiumUsers:   premiumUsers,
		CacheKeyDevelopers:     totalDevelopers,
		CacheKeyWebsites:       totalWebsites,
		CacheKeyTrackedSeconds: trackedSeconds,
	}
	for key, value := range counters {
		if err := cache.Set(key, strconv.FormatInt(value, 10), CacheExpiration); err != nil {
			log.Printf("Error caching %s: %v", key, err)
			return err
		}
	}

	return nil
}

func getCachedCounter(key string, recount func() (int64, error)) int64 {
	val, err := cache.Get(key)
	if err != nil {
		count, err := recount()
		if err != nil {
			log.Printf("Error recounting %s: %v", key, err)
			return 0
		}
		if err := cache.Set(key, strconv.FormatInt(count, 10), CacheExpiration); err != nil {
			log.Printf("Error caching %s: %v", key, err)
		}
		return count
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return count
}

// GetTotalUsers returns the total user count from cache or database
func GetTotalUsers() int {
	return int(getCachedCounter(CacheKeyUsers, func() (int64, error) {
		var count int64
		err := database.GetDB().Model(&models.User{}).Count(&count).Error
		return count, err
	}))
}

// GetPremiumUsers returns the subscribed user count from cache or database
func GetPremiumUsers() int {
	return int(getCachedCounter(CacheKeyPremiumUsers, func() (int64, error) {
		var count int64
		err := database.GetDB().Model(&models.User{}).Where("is_subscribed = ?", true).Count(&count).Error
		return count, err
	}))
}

// GetTotalDevelopers returns the developer count from cache or database
func GetTotalDevelopers() int {
	return int(getCachedCounter(CacheKeyDevelopers, func() (int64, error) {
		var count int64
		err := database.GetDB().Model(&models.Developer{}).Count(&count).Error
		return count, err
	}))
}

// GetTotalWebsites returns the registered website count from cache or database
func GetTotalWebsites() int {
	return int(getCachedCounter(CacheKeyWebsites, func() (int64, error) {
		var count int64
		err := database.GetDB().Model(&models.Website{}).Count(&count).Error
		return count, err
	}))
}

// GetTrackedSeconds returns the platform-wide tracked time from cache or database
func GetTrackedSeconds() int64 {
	return getCachedCounter(CacheKeyTrackedSeconds, func() (int64, error) {
		return repository.GetGlobalRepositories().TimeTracking.SumDurationAll()
	})
}

// GetStatisticsData returns all platform counters, refreshing the cache if stale
func GetStatisticsData() StatisticsData {
	UpdateCacheIfNeeded()

	return StatisticsData{
		TotalUsers:      GetTotalUsers(),
		PremiumUsers:    GetPremiumUsers(),
		TotalDevelopers: GetTotalDevelopers(),
		TotalWebsites:   GetTotalWebsites(),
		TrackedSeconds:  GetTrackedSeconds(),
	}
}
