package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// 开头的数字，后面可以跟一个数量级后缀；第二个小数点及之后的数字忽略
var countPattern = regexp.MustCompile(`^(\d+(?:\.\d*)?|\.\d+)[\d.]*\s*([kKmMbB])?`)

var suffixMultipliers = map[string]float64{
	"K": 1_000,
	"M": 1_000_000,
	"B": 1_000_000_000,
}

// ParseCount 将 "1.2M"、"4,401"、"12.5K" 这类计数字符串转换为整数
// 千分位逗号会被去掉，结果四舍五入；无法解析时返回 false
func ParseCount(raw string) (int64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0, false
	}

	m := countPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return 0, false
	}

	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsNaN(num) {
		return 0, false
	}

	if mul, ok := suffixMultipliers[strings.ToUpper(m[2])]; ok {
		num *= mul
	}

	rounded := math.Round(num)
	if math.IsInf(rounded, 0) || rounded < 0 || rounded >= math.MaxInt64 {
		return 0, false
	}
	return int64(rounded), true
}
