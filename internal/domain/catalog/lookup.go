package catalog

// Lookup 查找结果：Found(值) 或 NotFound
// 调用方必须先判断是否找到，避免把零值当成真实数据
type Lookup[T any] struct {
	value T
	found bool
}

// Found 构造命中结果
func Found[T any](value T) Lookup[T] {
	return Lookup[T]{value: value, found: true}
}

// NotFound 构造未命中结果
func NotFound[T any]() Lookup[T] {
	return Lookup[T]{}
}

// Get 返回值和是否命中
func (l Lookup[T]) Get() (T, bool) {
	return l.value, l.found
}

// IsFound 是否命中
func (l Lookup[T]) IsFound() bool {
	return l.found
}

// OrErr 未命中时返回err
func (l Lookup[T]) OrErr(err error) (T, error) {
	if !l.found {
		var zero T
		return zero, err
	}
	return l.value, nil
}
