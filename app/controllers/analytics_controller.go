package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jagjar/jagjar/app/repository"
	"github.com/jagjar/jagjar/internal/pkg/cache"
)

const (
	analyticsCacheKeyFormat = "analytics:overview:%d"
	analyticsCacheExpiry    = 5 * time.Minute
	analyticsWindowDays     = 30
)

type analyticsOverview struct {
	TotalSeconds  int64        `json:"total_seconds"`
	DistinctUsers int64        `json:"distinct_users"`
	Daily         []dailyPoint `json:"daily"`
}

type dailyPoint struct {
	Day     string `json:"day"`
	Seconds int64  `json:"seconds"`
}

// HandleAnalyticsOverview returns a developer's tracked time summary and a
// 30 day daily series. Results are cached briefly to keep dashboard
// refreshes off the database.
func HandleAnalyticsOverview(c *fiber.Ctx) error {
	dev, err := currentDeveloper(c)
	if err != nil {
		return respondError(c, err)
	}

	cacheKey := fmt.Sprintf(analyticsCacheKeyFormat, dev.ID)
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		var overview analyticsOverview
		if err := json.Unmarshal([]byte(cached), &overview); err == nil {
			return c.JSON(overview)
		}
	}

	repo := repository.GetGlobalFactory().GetTimeTrackingRepository()

	totalSeconds, err := repo.SumDurationByDeveloper(dev.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load tracked time")
	}
	distinctUsers, err := repo.CountDistinctUsersByDeveloper(dev.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load user count")
	}

	since := time.Now().UTC().AddDate(0, 0, -analyticsWindowDays)
	daily, err := repo.DailyTotalsByDeveloper(dev.ID, since)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load daily totals")
	}

	overview := analyticsOverview{
		TotalSeconds:  totalSeconds,
		DistinctUsers: distinctUsers,
		Daily:         make([]dailyPoint, 0, len(daily)),
	}
	for _, d := range daily {
		overview.Daily = append(overview.Daily, dailyPoint{
			Day:     d.Day.Format("2006-01-02"),
			Seconds: d.Seconds,
		})
	}

	if encoded, err := json.Marshal(overview); err == nil {
		if err := cache.Set(cacheKey, string(encoded), analyticsCacheExpiry); err != nil {
			log.Printf("failed to cache analytics overview for developer %d: %v", dev.ID, err)
		}
	}

	return c.JSON(overview)
}

type distributionSlice struct {
	Name    string `json:"name"`
	Seconds int64  `json:"seconds"`
}

// HandleTimeDistribution returns tracked time per website, collapsing
// everything past the top four sites into an "Other" bucket.
func HandleTimeDistribution(c *fiber.Ctx) error {
	dev, err := currentDeveloper(c)
	if err != nil {
		return respondError(c, err)
	}

	totals, err := repository.GetGlobalFactory().GetTimeTrackingRepository().SiteTotalsByDeveloper(dev.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load site totals")
	}

	slices := buildDistributionSlices(totals, 4)
	return c.JSON(fiber.Map{"distribution": slices})
}

func buildDistributionSlices(totals []repository.SiteUsage, topN int) []distributionSlice {
	sort.Slice(totals, func(i, j int) bool { return totals[i].Seconds > totals[j].Seconds })

	slices := make([]distributionSlice, 0, topN+1)
	var other int64
	for i, t := range totals {
		if i < topN {
			slices = append(slices, distributionSlice{Name: t.Name, Seconds: t.Seconds})
			continue
		}
		other += t.Seconds
	}
	if other > 0 {
		slices = append(slices, distributionSlice{Name: "Other", Seconds: other})
	}
	return slices
}
