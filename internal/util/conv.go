package util

import (
	"math"
	"strconv"
)

// Round2 四舍五入到两位小数，质量分统一用这个精度
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MustParseInt 将字符串转换为整数，解析失败时返回 0
func MustParseInt(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
