// Package metrics 基于Prometheus的指标收集
//
// 指标分四组：
//   - HTTP：请求数、耗时、处理中的请求
//   - 借阅：借出/归还次数、失败原因、罚金分布、馆藏规模
//   - 存储：快照保存次数与耗时、熔断器状态
//   - 消息：借阅事件发布次数
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds），
// 标签只使用有限取值（method、reason、result），不要用ISBN或会员ID做标签。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

var (
	initOnce sync.Once

	// HTTP

	// HTTPRequestsTotal 标签：method、path（路由模板）、status
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	HTTPRequestsInProgress prometheus.Gauge

	// 借阅

	BooksIssuedTotal     prometheus.Counter
	BooksReturnedTotal   prometheus.Counter
	LendingFailuresTotal *prometheus.CounterVec // 标签：operation（issue/return）、reason（错误码）
	ReturnFines          prometheus.Histogram   // 每次归还的罚金，0也记录
	CatalogBooks         prometheus.Gauge
	BooksOnLoan          prometheus.Gauge

	// 存储

	// CatalogSavesTotal 标签：driver、result（success/failure）
	CatalogSavesTotal   *prometheus.CounterVec
	CatalogSaveDuration *prometheus.HistogramVec

	// CircuitBreakerState 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// 消息

	// MessagesPublishedTotal 标签：routing_key、result
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry（可重复调用）
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时（秒）",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_progress",
		Help:      "正在处理的HTTP请求数",
	})

	BooksIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_issued_total",
		Help:      "借出图书总数",
	})

	BooksReturnedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_returned_total",
		Help:      "归还图书总数",
	})

	LendingFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lending_failures_total",
			Help:      "借阅操作失败次数",
		},
		[]string{"operation", "reason"},
	)

	// 默认规则每天10元，桶覆盖按时归还到超期一个月
	ReturnFines = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "return_fine_amount",
		Help:      "归还罚金",
		Buckets:   []float64{0, 10, 50, 100, 200, 500},
	})

	CatalogBooks = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_books",
		Help:      "馆藏图书条目数",
	})

	BooksOnLoan = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "books_on_loan",
		Help:      "当前借出的图书数",
	})

	CatalogSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_saves_total",
			Help:      "馆藏快照保存次数",
		},
		[]string{"driver", "result"},
	)

	CatalogSaveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_save_duration_seconds",
			Help:      "馆藏快照保存耗时（秒）",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"driver"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "借阅事件发布次数",
		},
		[]string{"routing_key", "result"},
	)
}

// RecordIssue 记录一次借书结果
// reason为失败时的错误码（字符串形式），成功时忽略
func RecordIssue(reason string, ok bool) {
	InitMetrics()
	if ok {
		BooksIssuedTotal.Inc()
		BooksOnLoan.Inc()
		return
	}
	LendingFailuresTotal.WithLabelValues("issue", reason).Inc()
}

// RecordReturn 记录一次还书结果
func RecordReturn(fine float64, reason string, ok bool) {
	InitMetrics()
	if ok {
		BooksReturnedTotal.Inc()
		BooksOnLoan.Dec()
		ReturnFines.Observe(fine)
		return
	}
	LendingFailuresTotal.WithLabelValues("return", reason).Inc()
}

// SetCatalogSize 设置馆藏规模（加载、增删图书后调用）
func SetCatalogSize(books, onLoan int) {
	InitMetrics()
	CatalogBooks.Set(float64(books))
	BooksOnLoan.Set(float64(onLoan))
}

// RecordSave 记录一次快照保存
func RecordSave(driver string, seconds float64, err error) {
	InitMetrics()
	result := "success"
	if err != nil {
		result = "failure"
	}
	CatalogSavesTotal.WithLabelValues(driver, result).Inc()
	CatalogSaveDuration.WithLabelValues(driver).Observe(seconds)
}

// RecordPublish 记录一次事件发布
func RecordPublish(routingKey string, err error) {
	InitMetrics()
	result := "success"
	if err != nil {
		result = "failure"
	}
	MessagesPublishedTotal.WithLabelValues(routingKey, result).Inc()
}

// SetBreakerState 记录熔断器状态
func SetBreakerState(name string, state int) {
	InitMetrics()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordBreakerRequest 记录经过熔断器的请求
func RecordBreakerRequest(name, result string) {
	InitMetrics()
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}
