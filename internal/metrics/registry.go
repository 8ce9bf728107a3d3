package metrics

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Sender delivers a single cumulative data point to the collector. Delivery
// is fire-and-forget: implementations log failures and never return them.
type Sender interface {
	Send(name string, value int64, attrs map[string]string)
}

// Registry holds the in-process business counters. It is an explicit object
// rather than package globals so tests can inject a recording Sender.
// Counter updates are atomic; a lost race only skews a dashboard number.
type Registry struct {
	sender Sender

	mu       sync.Mutex
	requests map[string]int64 // per HTTP method

	authAttempts    atomic.Int64
	activeUsers     atomic.Int64
	pizzasSold      atomic.Int64
	creationsFailed atomic.Int64
	revenueCents    atomic.Int64
}

// NewRegistry builds a registry pushing through the given sender. A nil
// sender disables pushing but keeps the counters.
func NewRegistry(sender Sender) *Registry {
	return &Registry{sender: sender, requests: make(map[string]int64)}
}

// emit pushes off the request path; the sender swallows delivery failures.
func (r *Registry) emit(name string, value int64, attrs map[string]string) {
	if r.sender == nil {
		return
	}
	go r.sender.Send(name, value, attrs)
}

// RecordRequest counts one finished HTTP request and pushes the cumulative
// per-method total plus the observed latency.
func (r *Registry) RecordRequest(method string, status int, latency time.Duration) {
	r.mu.Lock()
	r.requests[method]++
	total := r.requests[method]
	r.mu.Unlock()

	r.emit("http_request_total", total, map[string]string{
		"method": method,
		"status": strconv.Itoa(status),
	})
	r.emit("request_latency", latency.Milliseconds(), nil)
}

// AuthAttempt counts one login/register attempt.
func (r *Registry) AuthAttempt(success bool) {
	total := r.authAttempts.Add(1)
	r.emit("auth_attempts", total, map[string]string{
		"success": strconv.FormatBool(success),
	})
}

// UserLoggedIn bumps the active-user gauge.
func (r *Registry) UserLoggedIn() {
	r.emit("active_users", r.activeUsers.Add(1), nil)
}

// UserLoggedOut drops the active-user gauge.
func (r *Registry) UserLoggedOut() {
	r.emit("active_users", r.activeUsers.Add(-1), nil)
}

// SellPizzas adds sold pizzas to the running total.
func (r *Registry) SellPizzas(count int64) {
	r.emit("pizzas_sold", r.pizzasSold.Add(count), nil)
}

// AddRevenue adds order revenue. The wire value is integer cents since the
// envelope carries int data points.
func (r *Registry) AddRevenue(amount decimal.Decimal) {
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()
	r.emit("revenue", r.revenueCents.Add(cents), nil)
}

// FailCreation counts one failed order creation.
func (r *Registry) FailCreation() {
	r.emit("creations_failed", r.creationsFailed.Add(1), nil)
}

// PublishSystem pushes a CPU and memory utilization sample.
func (r *Registry) PublishSystem(cpuPct, memPct int64) {
	r.emit("cpu_usage", cpuPct, nil)
	r.emit("memory_usage", memPct, nil)
}

// PublishRequestTotals re-pushes the cumulative per-method request totals,
// one data point per method seen so far.
func (r *Registry) PublishRequestTotals() {
	r.mu.Lock()
	totals := make(map[string]int64, len(r.requests))
	for method, n := range r.requests {
		totals[method] = n
	}
	r.mu.Unlock()

	for method, n := range totals {
		r.emit("requests", n, map[string]string{"endpoint": method})
	}
}

// PizzasSold returns the running sold-pizza total.
func (r *Registry) PizzasSold() int64 { return r.pizzasSold.Load() }

// ActiveUsers returns the current active-user gauge.
func (r *Registry) ActiveUsers() int64 { return r.activeUsers.Load() }

// RequestTotal returns the counted requests for a method (test support and
// health reporting).
func (r *Registry) RequestTotal(method string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[method]
}
