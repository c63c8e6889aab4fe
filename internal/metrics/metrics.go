// Package metrics 提供Prometheus监控指标
package metrics

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Registry 指标注册表
type Registry struct {
	counters   map[string]*Counter
	gauges     map[string]*Gauge
	histograms map[string]*Histogram
	mu         sync.RWMutex
}

// Counter 计数器
type Counter struct {
	Name   string
	Help   string
	Labels []string
	values map[string]float64
	mu     sync.RWMutex
}

// Gauge 仪表盘
type Gauge struct {
	Name   string
	Help   string
	Labels []string
	values map[string]float64
	mu     sync.RWMutex
}

// Histogram 直方图
type Histogram struct {
	Name    string
	Help    string
	Labels  []string
	Buckets []float64
	counts  map[string][]int
	sums    map[string]float64
	mu      sync.RWMutex
}

var (
	registry *Registry
	once     sync.Once
)

// GetRegistry 获取全局注册表
func GetRegistry() *Registry {
	once.Do(func() {
		registry = &Registry{
			counters:   make(map[string]*Counter),
			gauges:     make(map[string]*Gauge),
			histograms: make(map[string]*Histogram),
		}
		initDefaultMetrics()
	})
	return registry
}

// initDefaultMetrics 初始化默认指标
func initDefaultMetrics() {
	// 请求计数器
	registry.NewCounter("renli_http_requests_total", "HTTP请求总数", []string{"method", "path", "status"})

	// 请求延迟直方图
	registry.NewHistogram("renli_http_request_duration_seconds", "HTTP请求延迟",
		[]string{"method", "path"},
		[]float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0})

	// 规划求解计数器
	registry.NewCounter("renli_plan_solve_total", "规划求解次数", []string{"engine", "status"})

	// 规划求解延迟
	registry.NewHistogram("renli_plan_solve_duration_seconds", "规划求解延迟",
		[]string{"engine"},
		[]float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0})

	// 最近一次求解的预算口径总成本
	registry.NewGauge("renli_plan_total_cost", "最近一次求解的总成本", []string{"engine"})

	// 最近一次求解的缺口工时
	registry.NewGauge("renli_plan_unmet_demand_hours", "最近一次求解的缺口工时", []string{"engine"})

	// 当前执行中的求解数
	registry.NewGauge("renli_active_solves", "当前执行中的求解数", []string{})
}

// NewCounter 创建计数器
func (r *Registry) NewCounter(name, help string, labels []string) *Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	counter := &Counter{
		Name:   name,
		Help:   help,
		Labels: labels,
		values: make(map[string]float64),
	}
	r.counters[name] = counter
	return counter
}

// NewGauge 创建仪表盘
func (r *Registry) NewGauge(name, help string, labels []string) *Gauge {
	r.mu.Lock()
	defer r.mu.Unlock()

	gauge := &Gauge{
		Name:   name,
		Help:   help,
		Labels: labels,
		values: make(map[string]float64),
	}
	r.gauges[name] = gauge
	return gauge
}

// NewHistogram 创建直方图
func (r *Registry) NewHistogram(name, help string, labels []string, buckets []float64) *Histogram {
	r.mu.Lock()
	defer r.mu.Unlock()

	histogram := &Histogram{
		Name:    name,
		Help:    help,
		Labels:  labels,
		Buckets: buckets,
		counts:  make(map[string][]int),
		sums:    make(map[string]float64),
	}
	r.histograms[name] = histogram
	return histogram
}

// GetCounter 获取计数器
func (r *Registry) GetCounter(name string) *Counter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.counters[name]
}

// GetGauge 获取仪表盘
func (r *Registry) GetGauge(name string) *Gauge {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gauges[name]
}

// GetHistogram 获取直方图
func (r *Registry) GetHistogram(name string) *Histogram {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.histograms[name]
}

// Inc 计数器加一
func (c *Counter) Inc(labelValues ...string) {
	c.Add(1, labelValues...)
}

// Add 计数器增加指定值
func (c *Counter) Add(value float64, labelValues ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[labelKey(labelValues)] += value
}

// Set 设置仪表盘值
func (g *Gauge) Set(value float64, labelValues ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[labelKey(labelValues)] = value
}

// Add 仪表盘增加指定值
func (g *Gauge) Add(value float64, labelValues ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[labelKey(labelValues)] += value
}

// Observe 记录直方图观测值
func (h *Histogram) Observe(value float64, labelValues ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := labelKey(labelValues)
	if _, ok := h.counts[key]; !ok {
		h.counts[key] = make([]int, len(h.Buckets)+1)
	}

	placed := false
	for i, bucket := range h.Buckets {
		if value <= bucket {
			h.counts[key][i]++
			placed = true
			break
		}
	}
	if !placed {
		h.counts[key][len(h.Buckets)]++
	}
	h.sums[key] += value
}

// labelKey 将标签值拼为内部键
func labelKey(values []string) string {
	return strings.Join(values, ",")
}

// Handler 返回Prometheus格式的指标HTTP处理器
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		reg := GetRegistry()
		reg.mu.RLock()
		defer reg.mu.RUnlock()

		// 输出计数器
		for _, counter := range reg.counters {
			fmt.Fprintf(w, "# HELP %s %s\n", counter.Name, counter.Help)
			fmt.Fprintf(w, "# TYPE %s counter\n", counter.Name)

			counter.mu.RLock()
			for key, value := range counter.values {
				if key == "" {
					fmt.Fprintf(w, "%s %f\n", counter.Name, value)
				} else {
					fmt.Fprintf(w, "%s{%s} %f\n", counter.Name, formatLabels(counter.Labels, key), value)
				}
			}
			counter.mu.RUnlock()
		}

		// 输出仪表盘
		for _, gauge := range reg.gauges {
			fmt.Fprintf(w, "# HELP %s %s\n", gauge.Name, gauge.Help)
			fmt.Fprintf(w, "# TYPE %s gauge\n", gauge.Name)

			gauge.mu.RLock()
			for key, value := range gauge.values {
				if key == "" {
					fmt.Fprintf(w, "%s %f\n", gauge.Name, value)
				} else {
					fmt.Fprintf(w, "%s{%s} %f\n", gauge.Name, formatLabels(gauge.Labels, key), value)
				}
			}
			gauge.mu.RUnlock()
		}

		// 输出直方图
		for _, histogram := range reg.histograms {
			fmt.Fprintf(w, "# HELP %s %s\n", histogram.Name, histogram.Help)
			fmt.Fprintf(w, "# TYPE %s histogram\n", histogram.Name)

			histogram.mu.RLock()
			for key, counts := range histogram.counts {
				cumulative := 0
				for i, bucket := range histogram.Buckets {
					cumulative += counts[i]
					if key == "" {
						fmt.Fprintf(w, "%s_bucket{le=\"%f\"} %d\n", histogram.Name, bucket, cumulative)
					} else {
						fmt.Fprintf(w, "%s_bucket{%s,le=\"%f\"} %d\n", histogram.Name, formatLabels(histogram.Labels, key), bucket, cumulative)
					}
				}
				cumulative += counts[len(histogram.Buckets)]
				if key == "" {
					fmt.Fprintf(w, "%s_bucket{le=\"+Inf\"} %d\n", histogram.Name, cumulative)
					fmt.Fprintf(w, "%s_sum %f\n", histogram.Name, histogram.sums[key])
					fmt.Fprintf(w, "%s_count %d\n", histogram.Name, cumulative)
				} else {
					fmt.Fprintf(w, "%s_bucket{%s,le=\"+Inf\"} %d\n", histogram.Name, formatLabels(histogram.Labels, key), cumulative)
					fmt.Fprintf(w, "%s_sum{%s} %f\n", histogram.Name, formatLabels(histogram.Labels, key), histogram.sums[key])
					fmt.Fprintf(w, "%s_count{%s} %d\n", histogram.Name, formatLabels(histogram.Labels, key), cumulative)
				}
			}
			histogram.mu.RUnlock()
		}
	})
}

// formatLabels 格式化标签
func formatLabels(names []string, key string) string {
	vals := strings.Split(key, ",")
	parts := make([]string, 0, len(names))
	for i, name := range names {
		val := ""
		if i < len(vals) {
			val = vals[i]
		}
		parts = append(parts, fmt.Sprintf("%s=%q", name, val))
	}
	return strings.Join(parts, ",")
}

// RecordRequestMetrics 记录请求指标
func RecordRequestMetrics(method, path string, status int, duration time.Duration) {
	reg := GetRegistry()

	if counter := reg.GetCounter("renli_http_requests_total"); counter != nil {
		counter.Inc(method, path, fmt.Sprintf("%d", status))
	}
	if histogram := reg.GetHistogram("renli_http_request_duration_seconds"); histogram != nil {
		histogram.Observe(duration.Seconds(), method, path)
	}
}

// RecordPlanSolve 记录规划求解指标
func RecordPlanSolve(engine, status string, duration time.Duration) {
	reg := GetRegistry()

	if counter := reg.GetCounter("renli_plan_solve_total"); counter != nil {
		counter.Inc(engine, status)
	}
	if histogram := reg.GetHistogram("renli_plan_solve_duration_seconds"); histogram != nil {
		histogram.Observe(duration.Seconds(), engine)
	}
}

// SetPlanOutcome 记录最近一次求解的结果指标
func SetPlanOutcome(engine string, totalCost, unmetDemand float64) {
	reg := GetRegistry()

	if gauge := reg.GetGauge("renli_plan_total_cost"); gauge != nil {
		gauge.Set(totalCost, engine)
	}
	if gauge := reg.GetGauge("renli_plan_unmet_demand_hours"); gauge != nil {
		gauge.Set(unmetDemand, engine)
	}
}

// TrackActiveSolve 标记一次求解开始，返回结束回调
func TrackActiveSolve() func() {
	gauge := GetRegistry().GetGauge("renli_active_solves")
	if gauge == nil {
		return func() {}
	}
	gauge.Add(1)
	return func() { gauge.Add(-1) }
}
