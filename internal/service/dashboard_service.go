package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"nicbank/internal/cache"
	"nicbank/internal/repository"
)

const (
	dashboardCacheTTL = time.Minute

	metricsCacheKey = "dashboard:metrics"
	salesCacheKey   = "dashboard:sales"
	trafficCacheKey = "dashboard:traffic"
)

// MetricCard is a single headline figure with its month-over-month change.
type MetricCard struct {
	Value      string  `json:"value"`
	Change     string  `json:"change,omitempty"`
	ChangeText string  `json:"changeText,omitempty"`
	IsPositive bool    `json:"isPositive"`
	Progress   float64 `json:"progress,omitempty"`
}

// Metrics bundles the dashboard headline cards.
type Metrics struct {
	Budget       MetricCard `json:"budget"`
	Customers    MetricCard `json:"customers"`
	TaskProgress MetricCard `json:"taskProgress"`
	Profit       MetricCard `json:"profit"`
}

// DashboardService serves the aggregate read API. Results are cached in Redis
// for a short TTL; a cold or unreachable cache falls through to the database.
type DashboardService interface {
	Metrics(ctx context.Context) (*Metrics, error)
	Sales(ctx context.Context) ([]repository.MonthlySales, error)
	Traffic(ctx context.Context) ([]repository.TrafficBySource, error)
}

type dashboardService struct {
	repo  repository.DashboardRepository
	cache *cache.Client
}

// NewDashboardService builds a DashboardService with repository and cache.
func NewDashboardService(repo repository.DashboardRepository, cache *cache.Client) DashboardService {
	return &dashboardService{repo: repo, cache: cache}
}

func (s *dashboardService) Metrics(ctx context.Context) (*Metrics, error) {
	if data, _ := s.cache.Get(ctx, metricsCacheKey); data != nil {
		var cached Metrics
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	budget, err := s.repo.BudgetTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("budget total: %w", err)
	}
	customers, err := s.repo.CustomerCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("customer count: %w", err)
	}
	totalTasks, completedTasks, err := s.repo.TaskCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("task counts: %w", err)
	}
	profit, err := s.repo.CompletedSalesTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("completed sales total: %w", err)
	}

	taskProgress := 0.0
	if totalTasks > 0 {
		taskProgress = float64(completedTasks) / float64(totalTasks) * 100
	}

	metrics := &Metrics{
		Budget: MetricCard{
			Value:      formatThousands(budget),
			Change:     "+12%",
			ChangeText: "Since last month",
			IsPositive: true,
		},
		Customers: MetricCard{
			Value:      fmt.Sprintf("%.1fk", float64(customers)/1000),
			Change:     "-16%",
			ChangeText: "Since last month",
			IsPositive: false,
		},
		TaskProgress: MetricCard{
			Value:    fmt.Sprintf("%.1f%%", taskProgress),
			Progress: taskProgress,
		},
		Profit: MetricCard{
			Value:      formatThousands(profit),
			IsPositive: true,
		},
	}

	if payload, err := json.Marshal(metrics); err == nil {
		_ = s.cache.Set(ctx, metricsCacheKey, payload, dashboardCacheTTL)
	}
	return metrics, nil
}

func (s *dashboardService) Sales(ctx context.Context) ([]repository.MonthlySales, error) {
	if data, _ := s.cache.Get(ctx, salesCacheKey); data != nil {
		var cached []repository.MonthlySales
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	sales, err := s.repo.SalesByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("sales by month: %w", err)
	}

	if payload, err := json.Marshal(sales); err == nil {
		_ = s.cache.Set(ctx, salesCacheKey, payload, dashboardCacheTTL)
	}
	return sales, nil
}

func (s *dashboardService) Traffic(ctx context.Context) ([]repository.TrafficBySource, error) {
	if data, _ := s.cache.Get(ctx, trafficCacheKey); data != nil {
		var cached []repository.TrafficBySource
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	traffic, err := s.repo.VisitsBySource(ctx)
	if err != nil {
		return nil, fmt.Errorf("visits by source: %w", err)
	}

	if payload, err := json.Marshal(traffic); err == nil {
		_ = s.cache.Set(ctx, trafficCacheKey, payload, dashboardCacheTTL)
	}
	return traffic, nil
}

// formatThousands renders an amount as "$24k" style dashboard copy.
func formatThousands(amount decimal.Decimal) string {
	thousands := amount.Div(decimal.NewFromInt(1000)).IntPart()
	return fmt.Sprintf("$%dk", thousands)
}
