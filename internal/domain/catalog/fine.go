package catalog

const (
	// DefaultAllowedDays 免罚借期（天）
	DefaultAllowedDays = 14

	// DefaultDailyFine 超期每天罚金
	DefaultDailyFine = 10.0
)

// FinePolicy 罚金规则
// 罚金 = max(0, 借阅天数 - 免罚借期) * 每日罚金
// 天数由调用方在归还时提供，目录本身不计时
type FinePolicy struct {
	AllowedDays int
	DailyFine   float64
}

// DefaultFinePolicy 14天免罚，超期每天10.0
func DefaultFinePolicy() FinePolicy {
	return FinePolicy{
		AllowedDays: DefaultAllowedDays,
		DailyFine:   DefaultDailyFine,
	}
}

// Calculate 计算罚金
func (p FinePolicy) Calculate(daysKept int) float64 {
	overdue := daysKept - p.AllowedDays
	if overdue <= 0 {
		return 0
	}
	return float64(overdue) * p.DailyFine
}
